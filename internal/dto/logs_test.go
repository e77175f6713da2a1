package dto

import (
	"errors"
	"testing"

	"arwikicats/internal/core"
)

func TestLogQueryDto_ToLogQuery(t *testing.T) {
	valid := LogQueryDto{Table: "list_logs", Page: 2, PageSize: 50, OrderBy: "Timestamp", Order: "ASC", Like: " foo "}
	q, err := valid.ToLogQuery()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Table != core.SqliteTableListLogs || q.OrderBy != core.LogOrderTimestamp || q.Order != core.LogOrderAsc || q.Like != "foo" {
		t.Fatalf("unexpected query %+v", q)
	}

	invalid := []LogQueryDto{
		{Table: "users", Page: 1, PageSize: 10, OrderBy: "id", Order: "desc"},
		{Table: "logs", Page: 1, PageSize: 10, OrderBy: "id; DROP TABLE logs", Order: "desc"},
		{Table: "logs", Page: 1, PageSize: 10, OrderBy: "id", Order: "sideways"},
		{Table: "logs", Page: 0, PageSize: 10, OrderBy: "id", Order: "desc"},
		{Table: "logs", Page: 1, PageSize: 1001, OrderBy: "id", Order: "desc"},
		{Table: "logs", Page: 1, PageSize: 10, OrderBy: "id", Order: "desc", Day: "2025/01/01"},
	}
	for _, d := range invalid {
		if _, err := d.ToLogQuery(); !errors.Is(err, core.ErrInvalidQueryParam) {
			t.Errorf("%+v: err = %v, want ErrInvalidQueryParam", d, err)
		}
	}
}
