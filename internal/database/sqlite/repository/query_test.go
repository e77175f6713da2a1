package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"arwikicats/internal/core"
	"arwikicats/internal/database/sqlite/model"
)

func day(d string) time.Time {
	t, err := time.Parse(core.DayLayout, d)
	if err != nil {
		panic(err)
	}
	return t.Add(12 * time.Hour)
}

func seedLogs(t *testing.T, logRepo *LogRepository, endpoint string, when time.Time, statuses ...string) {
	t.Helper()
	logRepo.now = fixedClock(when)
	for i, status := range statuses {
		title := fmt.Sprintf("Category:%s_%d", when.Format(core.DayLayout), i)
		if _, err := logRepo.LogRequest(context.Background(), endpoint, title, status, float64(i)/10, 1); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func defaultQuery(table core.SqliteTable) core.LogQuery {
	return core.LogQuery{Table: table, Page: 1, PageSize: 100, OrderBy: core.LogOrderID, Order: core.LogOrderAsc}
}

func TestGetLogs_PaginationCoversEveryRowOnce(t *testing.T) {
	logRepo, queryRepo := newTestRepos(t)
	ctx := context.Background()

	statuses := make([]string, 23)
	for i := range statuses {
		statuses[i] = core.LookupStatusOK
	}
	seedLogs(t, logRepo, core.EndpointLookup, day("2025-01-01"), statuses...)

	seen := map[int64]bool{}
	for page := 1; page <= 3; page++ {
		query := defaultQuery(core.SqliteTableLogs)
		query.Page, query.PageSize = page, 10
		entries, total, err := queryRepo.GetLogs(ctx, query)
		if err != nil {
			t.Fatalf("GetLogs page %d: %v", page, err)
		}
		if total != 23 {
			t.Errorf("Expected total 23, got %d", total)
		}
		for _, e := range entries {
			if seen[e.ID] {
				t.Errorf("id %d returned twice", e.ID)
			}
			seen[e.ID] = true
		}
	}
	if len(seen) != 23 {
		t.Errorf("Expected 23 distinct rows across pages, got %d", len(seen))
	}
}

func TestGetLogs_PagePastEnd(t *testing.T) {
	logRepo, queryRepo := newTestRepos(t)
	seedLogs(t, logRepo, core.EndpointLookup, day("2025-01-01"), core.LookupStatusOK, core.LookupStatusOK)

	query := defaultQuery(core.SqliteTableLogs)
	query.Page = 9
	entries, total, err := queryRepo.GetLogs(context.Background(), query)
	if err != nil {
		t.Fatalf("GetLogs failed: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", entries)
	}
	if total != 2 {
		t.Errorf("Expected total 2, got %d", total)
	}
}

func TestGetLogs_OrderingIsDeterministic(t *testing.T) {
	logRepo, queryRepo := newTestRepos(t)
	ctx := context.Background()
	// 同一 status 大量重複，排序需以 id 做次序
	seedLogs(t, logRepo, core.EndpointLookup, day("2025-01-01"),
		core.LookupStatusOK, core.LookupStatusNoLabel, core.LookupStatusOK, core.LookupStatusNoLabel, core.LookupStatusOK)

	query := defaultQuery(core.SqliteTableLogs)
	query.OrderBy, query.Order = core.LogOrderResponseStatus, core.LogOrderDesc

	first, _, err := queryRepo.GetLogs(ctx, query)
	if err != nil {
		t.Fatalf("GetLogs failed: %v", err)
	}
	second, _, err := queryRepo.GetLogs(ctx, query)
	if err != nil {
		t.Fatalf("GetLogs failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Same query returned different orderings")
	}

	var ids []int64
	for _, e := range first {
		ids = append(ids, e.ID)
	}
	// "ok" > "no_label"，同值依 id 遞增
	want := []int64{1, 3, 5, 2, 4}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("Expected ids %v, got %v", want, ids)
	}
}

func TestGetLogs_RejectsInvalidParamsWithoutStorage(t *testing.T) {
	_, queryRepo := newTestRepos(t)
	_ = queryRepo.db.Close()

	cases := map[string]core.LogQuery{
		"table":     {Table: "logs; DROP TABLE logs", Page: 1, PageSize: 10, OrderBy: core.LogOrderID, Order: core.LogOrderAsc},
		"order_by":  {Table: core.SqliteTableLogs, Page: 1, PageSize: 10, OrderBy: "id; DROP TABLE logs", Order: core.LogOrderAsc},
		"order":     {Table: core.SqliteTableLogs, Page: 1, PageSize: 10, OrderBy: core.LogOrderID, Order: "sideways"},
		"page":      {Table: core.SqliteTableLogs, Page: 0, PageSize: 10, OrderBy: core.LogOrderID, Order: core.LogOrderAsc},
		"page_size": {Table: core.SqliteTableLogs, Page: 1, PageSize: 1001, OrderBy: core.LogOrderID, Order: core.LogOrderAsc},
	}
	for name, query := range cases {
		t.Run(name, func(t *testing.T) {
			// 資料庫已關閉；若觸及儲存層會得到不同的錯誤
			_, _, err := queryRepo.GetLogs(context.Background(), query)
			if !errors.Is(err, core.ErrInvalidQueryParam) {
				t.Errorf("Expected ErrInvalidQueryParam, got %v", err)
			}
		})
	}
}

func TestGetLogs_Filters(t *testing.T) {
	logRepo, queryRepo := newTestRepos(t)
	ctx := context.Background()
	seedLogs(t, logRepo, core.EndpointLookup, day("2025-01-01"), core.LookupStatusOK, core.LookupStatusNoLabel)
	seedLogs(t, logRepo, core.EndpointLookup, day("2025-01-02"), core.LookupStatusNoLabel)

	query := defaultQuery(core.SqliteTableLogs)
	query.Status = core.LookupStatusNoLabel
	_, total, err := queryRepo.GetLogs(ctx, query)
	if err != nil || total != 2 {
		t.Errorf("status filter: total=%d err=%v", total, err)
	}

	query.Day = "2025-01-02"
	entries, total, err := queryRepo.GetLogs(ctx, query)
	if err != nil || total != 1 || entries[0].DateOnly != "2025-01-02" {
		t.Errorf("status+day filter: total=%d err=%v", total, err)
	}

	query = defaultQuery(core.SqliteTableLogs)
	query.Like = "2025-01-01_1"
	entries, total, err = queryRepo.GetLogs(ctx, query)
	if err != nil || total != 1 || entries[0].RequestData != "Category:2025-01-01_1" {
		t.Errorf("like filter: total=%d err=%v entries=%v", total, err, entries)
	}

	// % 與 _ 視為字面字元
	query.Like = "%"
	_, total, err = queryRepo.GetLogs(ctx, query)
	if err != nil || total != 0 {
		t.Errorf("like wildcard should be literal: total=%d err=%v", total, err)
	}
}

func TestGetLogsForDay(t *testing.T) {
	logRepo, queryRepo := newTestRepos(t)
	ctx := context.Background()
	seedLogs(t, logRepo, core.EndpointLookup, day("2025-01-01"), core.LookupStatusOK, core.LookupStatusOK)
	seedLogs(t, logRepo, core.EndpointLookup, day("2025-01-02"), core.LookupStatusOK)

	entries, err := queryRepo.GetLogsForDay(ctx, core.SqliteTableLogs, "2025-01-01")
	if err != nil {
		t.Fatalf("GetLogsForDay failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(entries))
	}

	empty, err := queryRepo.GetLogsForDay(ctx, core.SqliteTableLogs, "2024-12-31")
	if err != nil {
		t.Fatalf("GetLogsForDay failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", empty)
	}

	if _, err := queryRepo.GetLogsForDay(ctx, core.SqliteTableLogs, "01/01/2025"); !errors.Is(err, core.ErrInvalidQueryParam) {
		t.Errorf("Expected ErrInvalidQueryParam for bad day, got %v", err)
	}
}

func TestGetNoResultEntries(t *testing.T) {
	logRepo, queryRepo := newTestRepos(t)
	ctx := context.Background()
	seedLogs(t, logRepo, core.EndpointLookup, day("2025-01-01"), core.LookupStatusOK, core.LookupStatusNoLabel)
	seedLogs(t, logRepo, core.EndpointLookup, day("2025-01-02"), core.LookupStatusNoLabel, "error:timeout")

	all, err := queryRepo.GetNoResultEntries(ctx, core.SqliteTableLogs, "")
	if err != nil {
		t.Fatalf("GetNoResultEntries failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 no_label entries, got %d", len(all))
	}

	oneDay, err := queryRepo.GetNoResultEntries(ctx, core.SqliteTableLogs, "2025-01-02")
	if err != nil {
		t.Fatalf("GetNoResultEntries failed: %v", err)
	}
	if len(oneDay) != 1 || oneDay[0].DateOnly != "2025-01-02" {
		t.Errorf("Unexpected entries for day: %v", oneDay)
	}
}

func TestGroupCountsByDay(t *testing.T) {
	logRepo, queryRepo := newTestRepos(t)
	// 先寫較晚的日期，結果仍須依日期排序
	seedLogs(t, logRepo, core.EndpointLookup, day("2025-01-02"), core.LookupStatusOK, core.LookupStatusOK)
	seedLogs(t, logRepo, core.EndpointLookup, day("2025-01-01"), core.LookupStatusOK, core.LookupStatusOK, core.LookupStatusOK)

	counts, err := queryRepo.GroupCountsByDay(context.Background(), core.SqliteTableLogs)
	if err != nil {
		t.Fatalf("GroupCountsByDay failed: %v", err)
	}
	want := []model.DayCount{{Day: "2025-01-01", Count: 3}, {Day: "2025-01-02", Count: 2}}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("Expected %v, got %v", want, counts)
	}
}

func TestStatusSummaryAndDistinct(t *testing.T) {
	logRepo, queryRepo := newTestRepos(t)
	ctx := context.Background()
	seedLogs(t, logRepo, core.EndpointLookup, day("2025-01-01"),
		core.LookupStatusOK, core.LookupStatusOK, core.LookupStatusNoLabel, "error:boom")

	summary, err := queryRepo.StatusSummary(ctx, core.SqliteTableLogs)
	if err != nil {
		t.Fatalf("StatusSummary failed: %v", err)
	}
	want := map[string]int64{core.LookupStatusOK: 2, core.LookupStatusNoLabel: 1, "error:boom": 1}
	if !reflect.DeepEqual(summary, want) {
		t.Errorf("Expected %v, got %v", want, summary)
	}

	statuses, err := queryRepo.DistinctStatuses(ctx, core.SqliteTableLogs)
	if err != nil {
		t.Fatalf("DistinctStatuses failed: %v", err)
	}
	if !reflect.DeepEqual(statuses, []string{"error:boom", core.LookupStatusNoLabel, core.LookupStatusOK}) {
		t.Errorf("Unexpected statuses %v", statuses)
	}

	empty, err := queryRepo.StatusSummary(ctx, core.SqliteTableListLogs)
	if err != nil || len(empty) != 0 {
		t.Errorf("Expected empty summary, got %v err=%v", empty, err)
	}
}

func TestDailyStatusCountsAndSum(t *testing.T) {
	logRepo, queryRepo := newTestRepos(t)
	ctx := context.Background()

	logRepo.now = fixedClock(day("2025-01-01"))
	for _, row := range []struct {
		status string
		count  int
	}{{core.LookupStatusOK, 4}, {core.LookupStatusOK, 2}, {core.LookupStatusNoLabel, 3}, {"error:x", 1}} {
		if _, err := logRepo.LogRequest(ctx, core.EndpointBatch, "[]", row.status, 0.1, row.count); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	counts, err := queryRepo.DailyStatusCounts(ctx, core.SqliteTableListLogs, "")
	if err != nil {
		t.Fatalf("DailyStatusCounts failed: %v", err)
	}
	want := []model.DailyStatusCount{
		{Day: "2025-01-01", StatusGroup: "error", TitleCount: 1, Count: 1},
		{Day: "2025-01-01", StatusGroup: core.LookupStatusNoLabel, TitleCount: 3, Count: 1},
		{Day: "2025-01-01", StatusGroup: core.LookupStatusOK, TitleCount: 6, Count: 2},
	}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("Expected %v, got %v", want, counts)
	}

	sum, err := queryRepo.SumResponseCount(ctx, core.SqliteTableListLogs)
	if err != nil || sum != 10 {
		t.Errorf("Expected sum 10, got %d err=%v", sum, err)
	}
}

func TestDailyStatusCounts_SingleDay(t *testing.T) {
	logRepo, queryRepo := newTestRepos(t)
	ctx := context.Background()
	seedLogs(t, logRepo, core.EndpointLookup, day("2025-01-01"), core.LookupStatusOK, core.LookupStatusOK)
	seedLogs(t, logRepo, core.EndpointLookup, day("2025-01-02"), core.LookupStatusNoLabel)

	counts, err := queryRepo.DailyStatusCounts(ctx, core.SqliteTableLogs, "2025-01-02")
	if err != nil {
		t.Fatalf("DailyStatusCounts failed: %v", err)
	}
	want := []model.DailyStatusCount{{Day: "2025-01-02", StatusGroup: core.LookupStatusNoLabel, TitleCount: 1, Count: 1}}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("Expected %v, got %v", want, counts)
	}

	if _, err := queryRepo.DailyStatusCounts(ctx, core.SqliteTableLogs, "2025/01/02"); !errors.Is(err, core.ErrInvalidQueryParam) {
		t.Errorf("Expected ErrInvalidQueryParam, got %v", err)
	}
}

func TestNoResultTitles_UsesLatestStatus(t *testing.T) {
	logRepo, queryRepo := newTestRepos(t)
	ctx := context.Background()
	logRepo.now = fixedClock(day("2025-01-01"))

	for _, row := range [][2]string{
		{"B", core.LookupStatusNoLabel},
		{"A", core.LookupStatusNoLabel},
		{"C", core.LookupStatusNoLabel},
		{"C", core.LookupStatusOK},
		{"A", core.LookupStatusNoLabel},
	} {
		if _, err := logRepo.LogRequest(ctx, core.EndpointLookup, row[0], row[1], 0.1, 1); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	titles, err := queryRepo.NoResultTitles(ctx, core.SqliteTableLogs, "")
	if err != nil {
		t.Fatalf("NoResultTitles failed: %v", err)
	}
	if !reflect.DeepEqual(titles, []string{"A", "B"}) {
		t.Errorf("Expected [A B], got %v", titles)
	}

	totals, err := queryRepo.TitleTotals(ctx, core.SqliteTableLogs, "")
	if err != nil {
		t.Fatalf("TitleTotals failed: %v", err)
	}
	if want := (model.TitleTotals{SumAll: 3, SumDataResult: 1, SumNoResult: 2}); totals != want {
		t.Errorf("Expected %+v, got %+v", want, totals)
	}

	empty, err := queryRepo.TitleTotals(ctx, core.SqliteTableLogs, "2024-01-01")
	if err != nil || empty != (model.TitleTotals{}) {
		t.Errorf("Expected zero totals for an empty day, got %+v err=%v", empty, err)
	}
}

func TestLegacyRowsAreBackfilledOnOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "new_logs.db")
	ctx := context.Background()

	// 舊版 schema：沒有 date_only，timestamp 為 DATETIME
	legacy, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open legacy db: %v", err)
	}
	for _, stmt := range []string{
		`CREATE TABLE logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			endpoint TEXT, request_data TEXT, response_status TEXT,
			response_time REAL, response_count INTEGER, timestamp DATETIME DEFAULT CURRENT_TIMESTAMP)`,
		`INSERT INTO logs (endpoint, request_data, response_status, response_time, response_count, timestamp)
		VALUES ('/api/lookup', 'Old', 'no_label', 0.2, 1, '2024-05-06 07:08:09')`,
	} {
		if _, err := legacy.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("legacy setup: %v", err)
		}
	}
	if err := legacy.Close(); err != nil {
		t.Fatal(err)
	}

	_, queryRepo := newTestReposAt(t, dbPath)

	entries, _, err := queryRepo.GetLogs(ctx, defaultQuery(core.SqliteTableLogs))
	if err != nil {
		t.Fatalf("GetLogs failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Timestamp != "2024-05-06 07:08:09" || entries[0].DateOnly != "2024-05-06" {
		t.Fatalf("Unexpected legacy entry %+v", entries)
	}

	counts, err := queryRepo.GroupCountsByDay(ctx, core.SqliteTableLogs)
	if err != nil {
		t.Fatalf("GroupCountsByDay failed: %v", err)
	}
	if !reflect.DeepEqual(counts, []model.DayCount{{Day: "2024-05-06", Count: 1}}) {
		t.Fatalf("Unexpected day counts %v", counts)
	}

	// 每個有筆數的日期，以日期查詢都要拿到相同筆數
	for _, count := range counts {
		forDay, err := queryRepo.GetLogsForDay(ctx, core.SqliteTableLogs, count.Day)
		if err != nil {
			t.Fatalf("GetLogsForDay failed: %v", err)
		}
		if int64(len(forDay)) != count.Count {
			t.Errorf("day %s: by-day count %d, GetLogsForDay returned %d", count.Day, count.Count, len(forDay))
		}

		query := defaultQuery(core.SqliteTableLogs)
		query.Day = count.Day
		if _, total, err := queryRepo.GetLogs(ctx, query); err != nil || total != count.Count {
			t.Errorf("day %s: GetLogs total %d err=%v", count.Day, total, err)
		}

		noResult, err := queryRepo.GetNoResultEntries(ctx, core.SqliteTableLogs, count.Day)
		if err != nil || len(noResult) != 1 {
			t.Errorf("day %s: no-result entries %d err=%v", count.Day, len(noResult), err)
		}
	}

	daily, err := queryRepo.DailyStatusCounts(ctx, core.SqliteTableLogs, "")
	if err != nil || len(daily) != 1 || daily[0].Day != "2024-05-06" {
		t.Errorf("Unexpected daily status counts %+v err=%v", daily, err)
	}
}
