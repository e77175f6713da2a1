package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"arwikicats/config"
	"arwikicats/internal/core"
	"arwikicats/internal/database/client"
	"arwikicats/internal/database/sqlite/model"
	"arwikicats/internal/telemetry"
)

// QueryRepository 讀取路徑：白名單表名 / 排序欄位，其餘值一律綁定參數
type QueryRepository struct {
	trace            *telemetry.Trace
	db               *sql.DB
	operationTimeout time.Duration
	retryAttempts    int
}

func NewQueryRepository(trace *telemetry.Trace, config *config.Configuration, sqliteClient *client.SqliteClient) *QueryRepository {
	return &QueryRepository{
		trace:            trace,
		db:               sqliteClient.DB(),
		operationTimeout: operationTimeout(config),
		retryAttempts:    retryAttempts(config),
	}
}

// 舊資料可能有 NULL 或 DATETIME 型別欄位；CAST 讓驅動一律回傳字串
const logColumns = `id,
	COALESCE(endpoint, ''),
	COALESCE(request_data, ''),
	COALESCE(response_status, ''),
	COALESCE(response_time, 0),
	COALESCE(response_count, 0),
	COALESCE(CAST(timestamp AS TEXT), ''),
	COALESCE(CAST(date_only AS TEXT), '')`

// logFilter 組 WHERE 子句；只產生固定片段與 ? 佔位符
type logFilter struct {
	Status string
	Like   string
	Day    string
}

func (filter logFilter) where() (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if filter.Status != "" {
		clauses = append(clauses, "response_status = ?")
		args = append(args, filter.Status)
	}
	if filter.Like != "" {
		clauses = append(clauses, "request_data LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(filter.Like)+"%")
	}
	if filter.Day != "" {
		clauses = append(clauses, "date_only = ?")
		args = append(args, filter.Day)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// GetLogs 分頁列出紀錄並回傳符合條件的總筆數。
// 同值時以 id ASC 排序，頁碼超出範圍時回傳空切片。
func (repository *QueryRepository) GetLogs(
	contextValue context.Context,
	query core.LogQuery,
) (entries []model.LogEntry, totalCount int64, returnedError error) {

	if returnedError = query.Validate(); returnedError != nil {
		return nil, 0, returnedError
	}

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	contextValue, cancel := context.WithTimeout(contextValue, repository.operationTimeout)
	defer cancel()

	where, args := logFilter{Status: query.Status, Like: query.Like, Day: query.Day}.where()

	totalCount, returnedError = retryBusy(contextValue, repository.retryAttempts, func() (int64, error) {
		var count int64
		err := repository.db.QueryRowContext(contextValue,
			fmt.Sprintf("SELECT COUNT(*) FROM %s%s", query.Table, where), args...).Scan(&count)
		return count, err
	})
	if returnedError != nil {
		returnedError = classify(returnedError, nil)
		return nil, 0, returnedError
	}

	statement := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s %s, id ASC LIMIT ? OFFSET ?",
		logColumns, query.Table, where, query.OrderBy, strings.ToUpper(string(query.Order)))
	pageArgs := append(append([]any{}, args...), query.PageSize, query.Offset())

	entries, returnedError = repository.selectEntries(contextValue, statement, pageArgs...)
	if returnedError != nil {
		return nil, 0, returnedError
	}

	repository.trace.ApplyTraceAttributes(span, core.TraceLogQueryMeta{
		Op:       "get_logs",
		Table:    string(query.Table),
		Page:     query.Page,
		PageSize: query.PageSize,
		OrderBy:  string(query.OrderBy),
		Order:    string(query.Order),
		Day:      query.Day,
		Status:   query.Status,
		Like:     query.Like,
		Count:    len(entries),
		Total:    totalCount,
	})
	return entries, totalCount, nil
}

// CountAll 表內總筆數
func (repository *QueryRepository) CountAll(contextValue context.Context, table core.SqliteTable) (int64, error) {
	return repository.scalar(contextValue, "count_all", table, "SELECT COUNT(*) FROM %s")
}

// SumResponseCount response_count 總和（批次表即為處理過的標題數）
func (repository *QueryRepository) SumResponseCount(contextValue context.Context, table core.SqliteTable) (int64, error) {
	return repository.scalar(contextValue, "sum_response_count", table, "SELECT COALESCE(SUM(response_count), 0) FROM %s")
}

// GetLogsForDay date_only 完全相等的紀錄，依 id 排序
func (repository *QueryRepository) GetLogsForDay(
	contextValue context.Context,
	table core.SqliteTable,
	day string,
) (entries []model.LogEntry, returnedError error) {

	if returnedError = validateTableAndDay(table, day, true); returnedError != nil {
		return nil, returnedError
	}

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	contextValue, cancel := context.WithTimeout(contextValue, repository.operationTimeout)
	defer cancel()

	entries, returnedError = repository.selectEntries(contextValue,
		fmt.Sprintf("SELECT %s FROM %s WHERE date_only = ? ORDER BY id ASC", logColumns, table), day)

	repository.trace.ApplyTraceAttributes(span, core.TraceLogQueryMeta{
		Op: "get_logs_for_day", Table: string(table), Day: day, Count: len(entries),
	})
	return entries, returnedError
}

// GetNoResultEntries 狀態為 no_label 的紀錄；day 為空字串時不限日期
func (repository *QueryRepository) GetNoResultEntries(
	contextValue context.Context,
	table core.SqliteTable,
	day string,
) (entries []model.LogEntry, returnedError error) {

	if returnedError = validateTableAndDay(table, day, false); returnedError != nil {
		return nil, returnedError
	}

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	contextValue, cancel := context.WithTimeout(contextValue, repository.operationTimeout)
	defer cancel()

	where, args := logFilter{Status: core.LookupStatusNoLabel, Day: day}.where()
	entries, returnedError = repository.selectEntries(contextValue,
		fmt.Sprintf("SELECT %s FROM %s%s ORDER BY id ASC", logColumns, table, where), args...)

	repository.trace.ApplyTraceAttributes(span, core.TraceLogQueryMeta{
		Op: "get_no_result_entries", Table: string(table), Day: day, Count: len(entries),
	})
	return entries, returnedError
}

// NoResultTitles 最後一次查詢仍為 no_label 的 request_data（去重、依字母排序）
func (repository *QueryRepository) NoResultTitles(
	contextValue context.Context,
	table core.SqliteTable,
	day string,
) (titles []string, returnedError error) {

	if returnedError = validateTableAndDay(table, day, false); returnedError != nil {
		return nil, returnedError
	}

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	contextValue, cancel := context.WithTimeout(contextValue, repository.operationTimeout)
	defer cancel()

	statement := fmt.Sprintf(`SELECT request_data FROM %[1]s
		WHERE id IN (SELECT MAX(id) FROM %[1]s GROUP BY request_data)
		AND response_status = ?`, table)
	args := []any{core.LookupStatusNoLabel}
	if day != "" {
		statement += " AND date_only = ?"
		args = append(args, day)
	}
	statement += " ORDER BY request_data ASC"

	titles, returnedError = retryBusy(contextValue, repository.retryAttempts, func() ([]string, error) {
		rows, err := repository.db.QueryContext(contextValue, statement, args...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		result := []string{}
		for rows.Next() {
			var title string
			if err := rows.Scan(&title); err != nil {
				return nil, err
			}
			result = append(result, title)
		}
		return result, rows.Err()
	})
	returnedError = classify(returnedError, nil)

	repository.trace.ApplyTraceAttributes(span, core.TraceLogQueryMeta{
		Op: "no_result_titles", Table: string(table), Day: day, Count: len(titles),
	})
	return titles, returnedError
}

// TitleTotals 不重複標題中最後一次狀態為 ok / no_label 的數量；錯誤只計入 SumAll
func (repository *QueryRepository) TitleTotals(
	contextValue context.Context,
	table core.SqliteTable,
	day string,
) (totals model.TitleTotals, returnedError error) {

	if returnedError = validateTableAndDay(table, day, false); returnedError != nil {
		return model.TitleTotals{}, returnedError
	}

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	contextValue, cancel := context.WithTimeout(contextValue, repository.operationTimeout)
	defer cancel()

	statement := fmt.Sprintf(`SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN response_status = ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN response_status = ? THEN 1 ELSE 0 END), 0)
		FROM %[1]s WHERE id IN (SELECT MAX(id) FROM %[1]s GROUP BY request_data)`, table)
	args := []any{core.LookupStatusOK, core.LookupStatusNoLabel}
	if day != "" {
		statement += " AND date_only = ?"
		args = append(args, day)
	}

	totals, returnedError = retryBusy(contextValue, repository.retryAttempts, func() (model.TitleTotals, error) {
		var result model.TitleTotals
		err := repository.db.QueryRowContext(contextValue, statement, args...).
			Scan(&result.SumAll, &result.SumDataResult, &result.SumNoResult)
		return result, err
	})
	returnedError = classify(returnedError, nil)

	repository.trace.ApplyTraceAttributes(span, core.TraceLogQueryMeta{
		Op: "title_totals", Table: string(table), Day: day, Total: totals.SumAll,
	})
	return totals, returnedError
}

// GroupCountsByDay 每日筆數，依日期由舊到新
func (repository *QueryRepository) GroupCountsByDay(
	contextValue context.Context,
	table core.SqliteTable,
) (counts []model.DayCount, returnedError error) {

	if !table.Valid() {
		return nil, fmt.Errorf("%w: unknown table %q", core.ErrInvalidQueryParam, table)
	}

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	contextValue, cancel := context.WithTimeout(contextValue, repository.operationTimeout)
	defer cancel()

	statement := fmt.Sprintf(`SELECT date_only AS day, COUNT(*) FROM %s
		GROUP BY day ORDER BY day ASC`, table)

	counts, returnedError = retryBusy(contextValue, repository.retryAttempts, func() ([]model.DayCount, error) {
		rows, err := repository.db.QueryContext(contextValue, statement)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		result := []model.DayCount{}
		for rows.Next() {
			var (
				day   sql.NullString
				count model.DayCount
			)
			if err := rows.Scan(&day, &count.Count); err != nil {
				return nil, err
			}
			count.Day = day.String
			result = append(result, count)
		}
		return result, rows.Err()
	})
	returnedError = classify(returnedError, nil)

	repository.trace.ApplyTraceAttributes(span, core.TraceLogQueryMeta{
		Op: "group_counts_by_day", Table: string(table), Count: len(counts),
	})
	return counts, returnedError
}

// StatusSummary 各 response_status 的筆數
func (repository *QueryRepository) StatusSummary(
	contextValue context.Context,
	table core.SqliteTable,
) (summary map[string]int64, returnedError error) {

	if !table.Valid() {
		return nil, fmt.Errorf("%w: unknown table %q", core.ErrInvalidQueryParam, table)
	}

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	contextValue, cancel := context.WithTimeout(contextValue, repository.operationTimeout)
	defer cancel()

	statement := fmt.Sprintf("SELECT COALESCE(response_status, ''), COUNT(*) FROM %s GROUP BY response_status", table)
	summary, returnedError = retryBusy(contextValue, repository.retryAttempts, func() (map[string]int64, error) {
		rows, err := repository.db.QueryContext(contextValue, statement)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		result := map[string]int64{}
		for rows.Next() {
			var (
				status string
				count  int64
			)
			if err := rows.Scan(&status, &count); err != nil {
				return nil, err
			}
			result[status] += count
		}
		return result, rows.Err()
	})
	returnedError = classify(returnedError, nil)

	repository.trace.ApplyTraceAttributes(span, core.TraceLogQueryMeta{
		Op: "status_summary", Table: string(table), Count: len(summary),
	})
	return summary, returnedError
}

// DailyStatusCounts 每日 × 狀態群組（ok / no_label / error）的筆數與 response_count 總和；
// day 非空時只統計該日
func (repository *QueryRepository) DailyStatusCounts(
	contextValue context.Context,
	table core.SqliteTable,
	day string,
) (counts []model.DailyStatusCount, returnedError error) {

	if returnedError = validateTableAndDay(table, day, false); returnedError != nil {
		return nil, returnedError
	}

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	contextValue, cancel := context.WithTimeout(contextValue, repository.operationTimeout)
	defer cancel()

	where, whereArgs := logFilter{Day: day}.where()
	statement := fmt.Sprintf(`SELECT date_only AS day,
		CASE WHEN response_status = ? THEN ? WHEN response_status = ? THEN ? ELSE 'error' END AS status_group,
		COALESCE(SUM(response_count), 0), COUNT(*)
		FROM %s%s GROUP BY day, status_group ORDER BY day ASC, status_group ASC`, table, where)
	args := append([]any{core.LookupStatusOK, core.LookupStatusOK, core.LookupStatusNoLabel, core.LookupStatusNoLabel}, whereArgs...)

	counts, returnedError = retryBusy(contextValue, repository.retryAttempts, func() ([]model.DailyStatusCount, error) {
		rows, err := repository.db.QueryContext(contextValue, statement, args...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		result := []model.DailyStatusCount{}
		for rows.Next() {
			var (
				day   sql.NullString
				count model.DailyStatusCount
			)
			if err := rows.Scan(&day, &count.StatusGroup, &count.TitleCount, &count.Count); err != nil {
				return nil, err
			}
			count.Day = day.String
			result = append(result, count)
		}
		return result, rows.Err()
	})
	returnedError = classify(returnedError, nil)

	repository.trace.ApplyTraceAttributes(span, core.TraceLogQueryMeta{
		Op: "daily_status_counts", Table: string(table), Day: day, Count: len(counts),
	})
	return counts, returnedError
}

// DistinctStatuses 表內出現過的 response_status
func (repository *QueryRepository) DistinctStatuses(
	contextValue context.Context,
	table core.SqliteTable,
) (statuses []string, returnedError error) {

	if !table.Valid() {
		return nil, fmt.Errorf("%w: unknown table %q", core.ErrInvalidQueryParam, table)
	}

	contextValue, cancel := context.WithTimeout(contextValue, repository.operationTimeout)
	defer cancel()

	statement := fmt.Sprintf("SELECT DISTINCT response_status FROM %s WHERE response_status IS NOT NULL ORDER BY response_status ASC", table)
	statuses, returnedError = retryBusy(contextValue, repository.retryAttempts, func() ([]string, error) {
		rows, err := repository.db.QueryContext(contextValue, statement)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		result := []string{}
		for rows.Next() {
			var status string
			if err := rows.Scan(&status); err != nil {
				return nil, err
			}
			result = append(result, status)
		}
		return result, rows.Err()
	})
	return statuses, classify(returnedError, nil)
}

func (repository *QueryRepository) scalar(
	contextValue context.Context,
	op string,
	table core.SqliteTable,
	format string,
) (value int64, returnedError error) {

	if !table.Valid() {
		return 0, fmt.Errorf("%w: unknown table %q", core.ErrInvalidQueryParam, table)
	}

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue, op)
	defer func() { endSpan(returnedError) }()

	contextValue, cancel := context.WithTimeout(contextValue, repository.operationTimeout)
	defer cancel()

	value, returnedError = retryBusy(contextValue, repository.retryAttempts, func() (int64, error) {
		var result int64
		err := repository.db.QueryRowContext(contextValue, fmt.Sprintf(format, table)).Scan(&result)
		return result, err
	})
	returnedError = classify(returnedError, nil)

	repository.trace.ApplyTraceAttributes(span, core.TraceLogQueryMeta{Op: op, Table: string(table), Total: value})
	return value, returnedError
}

func (repository *QueryRepository) selectEntries(
	contextValue context.Context,
	statement string,
	args ...any,
) ([]model.LogEntry, error) {
	entries, err := retryBusy(contextValue, repository.retryAttempts, func() ([]model.LogEntry, error) {
		rows, err := repository.db.QueryContext(contextValue, statement, args...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		result := []model.LogEntry{}
		for rows.Next() {
			var entry model.LogEntry
			if err := rows.Scan(
				&entry.ID,
				&entry.Endpoint,
				&entry.RequestData,
				&entry.ResponseStatus,
				&entry.ResponseTime,
				&entry.ResponseCount,
				&entry.Timestamp,
				&entry.DateOnly,
			); err != nil {
				return nil, err
			}
			result = append(result, entry)
		}
		return result, rows.Err()
	})
	return entries, classify(err, nil)
}

func validateTableAndDay(table core.SqliteTable, day string, required bool) error {
	if !table.Valid() {
		return fmt.Errorf("%w: unknown table %q", core.ErrInvalidQueryParam, table)
	}
	if day == "" && !required {
		return nil
	}
	if !core.IsDay(day) {
		return fmt.Errorf("%w: day %q is not YYYY-MM-DD", core.ErrInvalidQueryParam, day)
	}
	return nil
}
