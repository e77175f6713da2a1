package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"arwikicats/config"
	"arwikicats/internal/database/client"
	fluentdRepo "arwikicats/internal/database/fluentd/repository"
	redisRepo "arwikicats/internal/database/redis/repository"
	sqliteRepo "arwikicats/internal/database/sqlite/repository"
	"arwikicats/internal/handler"
	"arwikicats/internal/middleware"
	cErr "arwikicats/internal/pkg/error"
	"arwikicats/internal/service"
	"arwikicats/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stubResolver struct {
	labels map[string]string
	fail   map[string]bool
}

func (s *stubResolver) Resolve(ctx context.Context, title string) (string, bool, error) {
	if s.fail[title] {
		return "", false, errors.New("upstream unavailable")
	}
	label, ok := s.labels[title]
	return label, ok, nil
}

type testServer struct {
	engine *gin.Engine
	health *service.HealthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()
	conf := &config.Configuration{
		App: config.App{Name: "arwikicats", Env: "test", Version: "test", AllowOrigins: []string{"*"}},
		Storage: config.Storage{
			Path:             filepath.Join(t.TempDir(), "new_logs.db"),
			BusyTimeout:      2000,
			OperationTimeout: 5000,
			RetryAttempts:    3,
		},
	}
	sqliteClient, err := client.OpenSqlite(logger, conf.Storage)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqliteClient.Close() })
	redisClient, _, err := client.NewRedisClient(logger, conf)
	if err != nil {
		t.Fatal(err)
	}

	trace := &telemetry.Trace{}
	metric := &telemetry.Metric{}
	fluentd := fluentdRepo.NewLogRepository(conf, &client.NoopClient{})
	resolver := &stubResolver{
		labels: map[string]string{
			"Category:Yemeni poets":  "تصنيف:شعراء يمنيون",
			"Category:Saudi writers": "تصنيف:كتاب سعوديون",
		},
		fail: map[string]bool{"Category:Broken": true},
	}

	lookupService := service.NewLookupService(trace, metric, logger, resolver,
		sqliteRepo.NewLogRepository(trace, conf, sqliteClient), fluentd)
	logQueryService := service.NewLogQueryService(trace, sqliteRepo.NewQueryRepository(trace, conf, sqliteClient))
	healthService := service.NewHealthService(sqliteClient)

	apiRouter := NewAPIRouter(
		handler.NewLookupHandler(trace, lookupService),
		handler.NewLogsHandler(trace, logQueryService),
		middleware.NewUserAgent(trace),
		middleware.NewRateLimit(trace, metric, conf, redisRepo.NewRateLimiterRepository(trace, redisClient), logger),
	)
	engine := NewRouter(conf,
		middleware.NewTraceEntry(trace, metric, conf),
		middleware.NewRecovery(logger, trace, conf, fluentd),
		middleware.NewCors(trace, conf),
		middleware.NewLogger(logger, trace, conf, fluentd),
		middleware.NewResponse(logger, trace, conf, fluentd),
		apiRouter,
		NewHealthRouter(handler.NewHealthHandler(healthService)),
	)
	return &testServer{engine: engine, health: healthService}
}

type envelope struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, method, target string, body any) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("User-Agent", "router-test")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, target, w.Body.String(), err)
		}
	}
	return w.Code, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
	return v
}

func TestLookupEndpoints(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodGet, "/api/lookup?title=Category:Yemeni+poets", nil)
	if status != http.StatusOK {
		t.Fatalf("found lookup status = %d", status)
	}
	single := decodeData[service.SingleResult](t, env)
	if !single.Found || single.Result != "تصنيف:شعراء يمنيون" || single.LogID != 1 {
		t.Fatalf("unexpected result %+v", single)
	}

	status, env = s.do(t, http.MethodGet, "/api/lookup?title=Category:Unknown", nil)
	if status != http.StatusOK || decodeData[service.SingleResult](t, env).Found {
		t.Fatalf("no-label lookup: status=%d data=%s", status, env.Data)
	}

	status, env = s.do(t, http.MethodGet, "/api/lookup?title=Category:Broken", nil)
	if status != http.StatusBadGateway || env.Code != cErr.EXTERNAL_REQUEST_ERROR {
		t.Fatalf("resolver failure: status=%d code=%d", status, env.Code)
	}

	status, env = s.do(t, http.MethodGet, "/api/lookup?title=", nil)
	if status != http.StatusBadRequest || env.Code != cErr.BAD_REQUEST_PARAMS {
		t.Fatalf("blank title: status=%d code=%d", status, env.Code)
	}

	// 三次有效查詢（含失敗）都寫入 logs
	status, env = s.do(t, http.MethodGet, "/api/logs?order=asc", nil)
	if status != http.StatusOK {
		t.Fatalf("view logs status = %d", status)
	}
	view := decodeData[service.ViewLogsResult](t, env)
	if view.Total != 3 || len(view.Logs) != 3 {
		t.Fatalf("total=%d logs=%d", view.Total, len(view.Logs))
	}
	wantStatuses := []string{"ok", "no_label", "error:"}
	for i, entry := range view.Logs {
		if len(entry.ResponseStatus) < len(wantStatuses[i]) || entry.ResponseStatus[:len(wantStatuses[i])] != wantStatuses[i] {
			t.Errorf("row %d status = %q, want prefix %q", i, entry.ResponseStatus, wantStatuses[i])
		}
	}
}

func TestBatchEndpoint(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodPost, "/api/list", map[string]any{
		"titles": []string{"Category:Yemeni poets", "Category:Unknown", "Category:Yemeni poets"},
	})
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	batch := decodeData[service.BatchResult](t, env)
	if batch.WithLabs != 1 || batch.NoLabs != 1 || batch.Duplicates != 1 || len(batch.Results) != 2 {
		t.Fatalf("unexpected batch %+v", batch)
	}
	if batch.Results["Category:Unknown"] != nil {
		t.Fatal("unknown title should map to null")
	}

	_, env = s.do(t, http.MethodGet, "/api/logs?table=list_logs", nil)
	view := decodeData[service.ViewLogsResult](t, env)
	if view.Total != 1 || view.Logs[0].ResponseCount != 2 || view.SumResponseCount != 2 {
		t.Fatalf("list_logs view %+v", view)
	}

	status, env = s.do(t, http.MethodPost, "/api/list", map[string]any{"titles": []string{}})
	if status != http.StatusBadRequest || env.Code != cErr.BAD_REQUEST_BODY {
		t.Fatalf("empty titles: status=%d code=%d", status, env.Code)
	}
}

func TestLogsEndpointsRejectInvalidParams(t *testing.T) {
	s := newTestServer(t)
	for _, target := range []string{
		"/api/logs?table=users",
		"/api/logs?page=0",
		"/api/logs?page_size=5000",
		"/api/logs?page=abc",
		"/api/logs?order_by=name",
		"/api/logs/day/2025-13-01",
		"/api/logs/no-result?day=yesterday",
		"/api/logs/by-day?table=sqlite_master",
	} {
		status, env := s.do(t, http.MethodGet, target, nil)
		if status != http.StatusBadRequest || env.Code != cErr.BAD_REQUEST_PARAMS {
			t.Errorf("%s: status=%d code=%d", target, status, env.Code)
		}
	}
}

func TestLogsReportingEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/api/lookup?title=Category:Saudi+writers", nil)
	s.do(t, http.MethodGet, "/api/lookup?title=Category:Unknown", nil)
	s.do(t, http.MethodGet, "/api/lookup?title=Category:Unknown", nil)

	_, env := s.do(t, http.MethodGet, "/api/logs/status", nil)
	summary := decodeData[map[string]int64](t, env)
	if summary["ok"] != 1 || summary["no_label"] != 2 {
		t.Fatalf("status summary %v", summary)
	}

	_, env = s.do(t, http.MethodGet, "/api/logs/no-result/titles", nil)
	titles := decodeData[service.NoResultTitlesResult](t, env)
	if len(titles.Titles) != 1 || titles.Titles[0] != "Category:Unknown" {
		t.Fatalf("no-result titles %v", titles.Titles)
	}
	if titles.SumAll != 2 || titles.SumDataResult != 1 || titles.SumNoResult != 1 {
		t.Fatalf("no-result totals %+v", titles.TitleTotals)
	}

	_, env = s.do(t, http.MethodGet, "/api/logs/daily-summary", nil)
	rows := decodeData[[]service.DailySummaryRow](t, env)
	if len(rows) != 1 || rows[0].Total != 3 || rows[0].OK != 1 || rows[0].NoLabel != 2 {
		t.Fatalf("daily summary %+v", rows)
	}

	status, env := s.do(t, http.MethodGet, "/api/logs/day/"+rows[0].Day, nil)
	if status != http.StatusOK {
		t.Fatalf("day status = %d", status)
	}
	if entries := decodeData[[]map[string]any](t, env); len(entries) != 3 {
		t.Fatalf("day entries = %d", len(entries))
	}

	_, env = s.do(t, http.MethodGet, "/api/logs/day/1999-01-01", nil)
	if entries := decodeData[[]map[string]any](t, env); len(entries) != 0 {
		t.Fatalf("empty day should return [] got %s", env.Data)
	}
}

func TestReadiness(t *testing.T) {
	s := newTestServer(t)
	if status, _ := s.do(t, http.MethodGet, "/health/readiness", nil); status != http.StatusServiceUnavailable {
		t.Fatalf("before ready status = %d", status)
	}
	s.health.SetReady(true)
	if status, _ := s.do(t, http.MethodGet, "/health/readiness", nil); status != http.StatusOK {
		t.Fatalf("after ready status = %d", status)
	}
}
