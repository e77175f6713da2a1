package dto

import (
	"strings"

	"arwikicats/internal/core"
)

// LogQueryDto GET /api/logs 的查詢參數
type LogQueryDto struct {
	Table    string `form:"table,default=logs"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=10"`
	OrderBy  string `form:"order_by,default=id"`
	Order    string `form:"order,default=desc"`
	Status   string `form:"status"`
	Like     string `form:"like"`
	Day      string `form:"day"`
}

// ToLogQuery 轉成白名單內的型別；page / page_size 範圍由 core.LogQuery.Validate 檢查
func (d LogQueryDto) ToLogQuery() (core.LogQuery, error) {
	table, err := core.ParseSqliteTable(d.Table)
	if err != nil {
		return core.LogQuery{}, err
	}
	orderBy, err := core.ParseLogOrderColumn(d.OrderBy)
	if err != nil {
		return core.LogQuery{}, err
	}
	order, err := core.ParseLogOrderDirection(d.Order)
	if err != nil {
		return core.LogQuery{}, err
	}
	query := core.LogQuery{
		Table:    table,
		Page:     d.Page,
		PageSize: d.PageSize,
		OrderBy:  orderBy,
		Order:    order,
		Status:   strings.TrimSpace(d.Status),
		Like:     strings.TrimSpace(d.Like),
		Day:      strings.TrimSpace(d.Day),
	}
	return query, query.Validate()
}
