package service

import (
	"context"
	"errors"
	"testing"

	"arwikicats/internal/core"
)

func TestViewLogs_DisplaysSpacesAndTotals(t *testing.T) {
	env := newTestEnv(t, map[string]string{"Category:Yemeni_poets": "x"})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := env.lookup.HandleSingle(ctx, "Category:Yemeni_poets"); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	if _, err := env.lookup.HandleSingle(ctx, "Category:Nothing"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	result, err := env.logs.ViewLogs(ctx, core.LogQuery{
		Table: core.SqliteTableLogs, Page: 1, PageSize: 3, OrderBy: core.LogOrderID, Order: core.LogOrderDesc,
	})
	if err != nil {
		t.Fatalf("ViewLogs failed: %v", err)
	}
	if result.Total != 4 || result.TotalPages != 2 || len(result.Logs) != 3 {
		t.Errorf("Unexpected paging %+v", result)
	}
	if result.SumResponseCount != 4 {
		t.Errorf("Expected sum 4, got %d", result.SumResponseCount)
	}
	if len(result.Statuses) != 2 {
		t.Errorf("Expected 2 distinct statuses, got %v", result.Statuses)
	}
	for _, entry := range result.Logs {
		if entry.RequestData == "Category:Yemeni_poets" {
			t.Errorf("Underscores should be displayed as spaces, got %q", entry.RequestData)
		}
	}
}

func TestViewLogs_InvalidTable(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := env.logs.ViewLogs(context.Background(), core.LogQuery{
		Table: "users", Page: 1, PageSize: 10, OrderBy: core.LogOrderID, Order: core.LogOrderAsc,
	})
	if !errors.Is(err, core.ErrInvalidQueryParam) {
		t.Errorf("Expected ErrInvalidQueryParam, got %v", err)
	}
}

func TestDailySummary_GroupsStatuses(t *testing.T) {
	env := newTestEnv(t, map[string]string{"A": "أ"})
	env.resolve.failures["C"] = errors.New("boom")
	ctx := context.Background()

	for _, title := range []string{"A", "A", "B"} {
		if _, err := env.lookup.HandleSingle(ctx, title); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	_, _ = env.lookup.HandleSingle(ctx, "C")

	rows, err := env.logs.DailySummary(ctx, core.SqliteTableLogs)
	if err != nil {
		t.Fatalf("DailySummary failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected one day, got %v", rows)
	}
	row := rows[0]
	if row.OK != 2 || row.NoLabel != 1 || row.Error != 1 || row.Total != 4 || row.TitleCount != 4 {
		t.Errorf("Unexpected summary %+v", row)
	}

	titles, err := env.logs.NoResultTitles(ctx, core.SqliteTableLogs, "")
	if err != nil {
		t.Fatalf("NoResultTitles failed: %v", err)
	}
	if len(titles.Titles) != 1 || titles.Titles[0] != "B" {
		t.Errorf("Expected [B], got %v", titles.Titles)
	}
	// C 最後一次為錯誤，只計入 SumAll
	if titles.SumAll != 3 || titles.SumDataResult != 1 || titles.SumNoResult != 1 {
		t.Errorf("Unexpected totals %+v", titles.TitleTotals)
	}

	single, err := env.logs.SummaryForDay(ctx, core.SqliteTableLogs, row.Day)
	if err != nil || single != row {
		t.Errorf("SummaryForDay(%s) = %+v err=%v, want %+v", row.Day, single, err, row)
	}
	none, err := env.logs.SummaryForDay(ctx, core.SqliteTableLogs, "2000-01-01")
	if err != nil || none != (DailySummaryRow{Day: "2000-01-01"}) {
		t.Errorf("Expected zero row, got %+v err=%v", none, err)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total    int64
		pageSize int
		want     int64
	}{{0, 10, 0}, {1, 10, 1}, {10, 10, 1}, {11, 10, 2}}
	for _, tc := range cases {
		if got := totalPages(tc.total, tc.pageSize); got != tc.want {
			t.Errorf("totalPages(%d,%d) = %d, want %d", tc.total, tc.pageSize, got, tc.want)
		}
	}
}
