package service

import (
	"context"
	"strings"

	"arwikicats/internal/core"
	"arwikicats/internal/database/sqlite/model"
	sqliteRepo "arwikicats/internal/database/sqlite/repository"
	"arwikicats/internal/telemetry"
)

// ViewLogsResult 一頁紀錄與該表的彙總資訊
type ViewLogsResult struct {
	Table            core.SqliteTable `json:"table"`
	Logs             []model.LogEntry `json:"logs"`
	Page             int              `json:"page"`
	PageSize         int              `json:"page_size"`
	Total            int64            `json:"total"`
	TotalPages       int64            `json:"total_pages"`
	SumResponseCount int64            `json:"sum_response_count"`
	Statuses         []string         `json:"statuses"`
}

// DailySummaryRow 某天依狀態群組的筆數
type DailySummaryRow struct {
	Day        string `json:"day"`
	OK         int64  `json:"ok"`
	NoLabel    int64  `json:"no_label"`
	Error      int64  `json:"error"`
	TitleCount int64  `json:"title_count"`
	Total      int64  `json:"total"`
}

// NoResultTitlesResult 無標籤標題清單與統計
type NoResultTitlesResult struct {
	Titles []string `json:"titles"`
	model.TitleTotals
}

type LogQueryService struct {
	trace           *telemetry.Trace
	queryRepository *sqliteRepo.QueryRepository
}

func NewLogQueryService(trace *telemetry.Trace, queryRepository *sqliteRepo.QueryRepository) *LogQueryService {
	return &LogQueryService{trace: trace, queryRepository: queryRepository}
}

// ViewLogs 分頁列出紀錄；request_data 中的底線顯示為空白
func (s *LogQueryService) ViewLogs(ctx context.Context, query core.LogQuery) (result *ViewLogsResult, returnedError error) {
	if returnedError = query.Validate(); returnedError != nil {
		return nil, returnedError
	}

	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	entries, total, err := s.queryRepository.GetLogs(ctx, query)
	if err != nil {
		returnedError = err
		return nil, returnedError
	}
	sum, err := s.queryRepository.SumResponseCount(ctx, query.Table)
	if err != nil {
		returnedError = err
		return nil, returnedError
	}
	statuses, err := s.queryRepository.DistinctStatuses(ctx, query.Table)
	if err != nil {
		returnedError = err
		return nil, returnedError
	}

	return &ViewLogsResult{
		Table:            query.Table,
		Logs:             displayEntries(entries),
		Page:             query.Page,
		PageSize:         query.PageSize,
		Total:            total,
		TotalPages:       totalPages(total, query.PageSize),
		SumResponseCount: sum,
		Statuses:         statuses,
	}, nil
}

func (s *LogQueryService) LogsForDay(ctx context.Context, table core.SqliteTable, day string) ([]model.LogEntry, error) {
	entries, err := s.queryRepository.GetLogsForDay(ctx, table, day)
	if err != nil {
		return nil, err
	}
	return displayEntries(entries), nil
}

// NoResultEntries day 為空字串時回傳全部
func (s *LogQueryService) NoResultEntries(ctx context.Context, table core.SqliteTable, day string) ([]model.LogEntry, error) {
	entries, err := s.queryRepository.GetNoResultEntries(ctx, table, day)
	if err != nil {
		return nil, err
	}
	return displayEntries(entries), nil
}

func (s *LogQueryService) CountsByDay(ctx context.Context, table core.SqliteTable) ([]model.DayCount, error) {
	return s.queryRepository.GroupCountsByDay(ctx, table)
}

func (s *LogQueryService) StatusSummary(ctx context.Context, table core.SqliteTable) (map[string]int64, error) {
	return s.queryRepository.StatusSummary(ctx, table)
}

// NoResultTitles 最後一次仍無標籤的標題，附上不重複標題的各狀態總數
func (s *LogQueryService) NoResultTitles(ctx context.Context, table core.SqliteTable, day string) (result *NoResultTitlesResult, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	titles, err := s.queryRepository.NoResultTitles(ctx, table, day)
	if err != nil {
		returnedError = err
		return nil, returnedError
	}
	totals, err := s.queryRepository.TitleTotals(ctx, table, day)
	if err != nil {
		returnedError = err
		return nil, returnedError
	}
	return &NoResultTitlesResult{Titles: titles, TitleTotals: totals}, nil
}

// DailySummary 每日 ok / no_label / error 筆數，依日期排序
func (s *LogQueryService) DailySummary(ctx context.Context, table core.SqliteTable) (rows []DailySummaryRow, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	counts, err := s.queryRepository.DailyStatusCounts(ctx, table, "")
	if err != nil {
		returnedError = err
		return nil, returnedError
	}
	return groupDailyCounts(counts), nil
}

// SummaryForDay 只統計單一日期；當天沒有紀錄時回傳全 0
func (s *LogQueryService) SummaryForDay(ctx context.Context, table core.SqliteTable, day string) (row DailySummaryRow, returnedError error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	counts, err := s.queryRepository.DailyStatusCounts(ctx, table, day)
	if err != nil {
		returnedError = err
		return DailySummaryRow{}, returnedError
	}
	for _, r := range groupDailyCounts(counts) {
		if r.Day == day {
			return r, nil
		}
	}
	return DailySummaryRow{Day: day}, nil
}

func groupDailyCounts(counts []model.DailyStatusCount) []DailySummaryRow {
	rows := []DailySummaryRow{}
	index := map[string]int{}
	for _, count := range counts {
		i, ok := index[count.Day]
		if !ok {
			i = len(rows)
			index[count.Day] = i
			rows = append(rows, DailySummaryRow{Day: count.Day})
		}
		row := &rows[i]
		switch count.StatusGroup {
		case core.LookupStatusOK:
			row.OK += count.Count
		case core.LookupStatusNoLabel:
			row.NoLabel += count.Count
		default:
			row.Error += count.Count
		}
		row.TitleCount += count.TitleCount
		row.Total += count.Count
	}
	return rows
}

func displayEntries(entries []model.LogEntry) []model.LogEntry {
	for i := range entries {
		entries[i].RequestData = strings.ReplaceAll(entries[i].RequestData, "_", " ")
	}
	return entries
}

func totalPages(total int64, pageSize int) int64 {
	if total == 0 || pageSize <= 0 {
		return 0
	}
	return (total + int64(pageSize) - 1) / int64(pageSize)
}
