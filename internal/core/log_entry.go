package core

import (
	"fmt"
	"strings"
)

// API 端點識別；批次端點寫入 list_logs，其餘寫入 logs
const (
	EndpointLookup = "/api/lookup"
	EndpointBatch  = "/api/list"
)

// 查詢結果狀態
const (
	LookupStatusOK          = "ok"
	LookupStatusNoLabel     = "no_label"
	LookupStatusErrorPrefix = "error:"
)

// 頁大小上限
const MaxPageSize = 1000

// TableForEndpoint 依端點決定寫入的表
func TableForEndpoint(endpoint string) SqliteTable {
	if endpoint == EndpointBatch {
		return SqliteTableListLogs
	}
	return SqliteTableLogs
}

func (t SqliteTable) Valid() bool {
	switch t {
	case SqliteTableLogs, SqliteTableListLogs:
		return true
	}
	return false
}

// ParseSqliteTable 只接受白名單中的表名
func ParseSqliteTable(s string) (SqliteTable, error) {
	t := SqliteTable(strings.TrimSpace(s))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown table %q", ErrInvalidQueryParam, s)
	}
	return t, nil
}

type LogOrderColumn string

const (
	LogOrderID             LogOrderColumn = "id"
	LogOrderTimestamp      LogOrderColumn = "timestamp"
	LogOrderResponseTime   LogOrderColumn = "response_time"
	LogOrderResponseStatus LogOrderColumn = "response_status"
	LogOrderResponseCount  LogOrderColumn = "response_count"
	LogOrderDateOnly       LogOrderColumn = "date_only"
)

func (c LogOrderColumn) Valid() bool {
	switch c {
	case LogOrderID, LogOrderTimestamp, LogOrderResponseTime,
		LogOrderResponseStatus, LogOrderResponseCount, LogOrderDateOnly:
		return true
	}
	return false
}

func ParseLogOrderColumn(s string) (LogOrderColumn, error) {
	c := LogOrderColumn(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: order_by %q", ErrInvalidQueryParam, s)
	}
	return c, nil
}

type LogOrderDirection string

const (
	LogOrderAsc  LogOrderDirection = "asc"
	LogOrderDesc LogOrderDirection = "desc"
)

func (d LogOrderDirection) Valid() bool {
	return d == LogOrderAsc || d == LogOrderDesc
}

func ParseLogOrderDirection(s string) (LogOrderDirection, error) {
	d := LogOrderDirection(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: order %q", ErrInvalidQueryParam, s)
	}
	return d, nil
}

// ErrorStatus 組出 "error:<msg>" 狀態字串
func ErrorStatus(err error) string {
	return LookupStatusErrorPrefix + err.Error()
}

// StatusGroup 將狀態歸類為 ok / no_label / error
func StatusGroup(status string) string {
	switch {
	case status == LookupStatusOK:
		return LookupStatusOK
	case status == LookupStatusNoLabel:
		return LookupStatusNoLabel
	default:
		return "error"
	}
}

// LogQuery 分頁查詢參數；Status / Like / Day 為選用過濾條件
type LogQuery struct {
	Table    SqliteTable
	Page     int
	PageSize int
	OrderBy  LogOrderColumn
	Order    LogOrderDirection
	Status   string
	Like     string
	Day      string
}

// Validate 在存取資料庫之前檢查所有參數
func (q LogQuery) Validate() error {
	if !q.Table.Valid() {
		return fmt.Errorf("%w: unknown table %q", ErrInvalidQueryParam, q.Table)
	}
	if !q.OrderBy.Valid() {
		return fmt.Errorf("%w: order_by %q", ErrInvalidQueryParam, q.OrderBy)
	}
	if !q.Order.Valid() {
		return fmt.Errorf("%w: order %q", ErrInvalidQueryParam, q.Order)
	}
	if q.Page < 1 {
		return fmt.Errorf("%w: page must be >= 1", ErrInvalidQueryParam)
	}
	if q.PageSize < 1 || q.PageSize > MaxPageSize {
		return fmt.Errorf("%w: page_size must be between 1 and %d", ErrInvalidQueryParam, MaxPageSize)
	}
	if q.Day != "" && !IsDay(q.Day) {
		return fmt.Errorf("%w: day %q is not YYYY-MM-DD", ErrInvalidQueryParam, q.Day)
	}
	return nil
}

// Offset LIMIT/OFFSET 的 OFFSET
func (q LogQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// 單次批次查詢的標題數上限
const MaxBatchTitles = 1000
