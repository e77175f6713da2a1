package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"arwikicats/config"
	"arwikicats/internal/core"
	fluentdRepo "arwikicats/internal/database/fluentd/repository"
	redisRepo "arwikicats/internal/database/redis/repository"
	cErr "arwikicats/internal/pkg/error"
	"arwikicats/internal/pkg/response"
	"arwikicats/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type fakePoster struct {
	mu   sync.Mutex
	tags []string
}

func (f *fakePoster) Post(ctx context.Context, tag string, message any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tags = append(f.tags, tag)
	return nil
}

func (f *fakePoster) Close() error { return nil }

type consumeResult struct {
	remaining int
	ttl       int64
	err       error
}

type fakeLimiter struct {
	results []consumeResult
	calls   int
}

func (f *fakeLimiter) Enabled() bool { return true }

func (f *fakeLimiter) Consume(ctx context.Context, clientIdentifier string, scope string, windowSeconds int64, limitCount int) (int, int64, error) {
	r := f.results[min(f.calls, len(f.results)-1)]
	f.calls++
	return r.remaining, r.ttl, r.err
}

type envelope struct {
	RequestID   string          `json:"requestID"`
	Code        int             `json:"code"`
	Data        json.RawMessage `json:"data"`
	Message     string          `json:"message"`
	Description string          `json:"description"`
}

func testConfig() *config.Configuration {
	return &config.Configuration{
		App: config.App{
			Name:         "arwikicats",
			Version:      "test",
			AllowOrigins: []string{"https://ar.wikipedia.org"},
		},
		RateLimit: config.RateLimit{Enabled: true, Window: 60, Limit: 2},
	}
}

func newTestEngine(t *testing.T, limiter quotaConsumer) (*gin.Engine, *fakePoster) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	conf := testConfig()
	trace := &telemetry.Trace{}
	metric := &telemetry.Metric{}
	logger := zap.NewNop()
	poster := &fakePoster{}
	fluentd := fluentdRepo.NewLogRepository(conf, poster)

	rateLimit := &RateLimit{trace: trace, metric: metric, config: conf, limiter: limiter, logger: logger}

	engine := gin.New()
	engine.Use(
		NewTraceEntry(trace, metric, conf).Handler(),
		NewLogger(logger, trace, conf, fluentd).LoggerHandler(),
		NewCors(trace, conf).CorsHandler(),
		NewRecovery(logger, trace, conf, fluentd).ErrorHandler(),
		NewResponse(logger, trace, conf, fluentd).FormatHandler(),
	)
	api := engine.Group("/api", NewUserAgent(trace).Require())
	api.GET("/ok", func(c *gin.Context) {
		response.Success(c, gin.H{"result": "تصنيف:اختبار"})
	})
	api.GET("/invalid", func(c *gin.Context) {
		response.AbortWithError(c, fmt.Errorf("%w: page must be >= 1", core.ErrInvalidQueryParam))
	})
	api.GET("/busy", func(c *gin.Context) {
		response.AbortWithError(c, fmt.Errorf("insert: %w", core.ErrStorageBusy))
	})
	api.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	api.POST("/list", rateLimit.Guard(), func(c *gin.Context) {
		response.Success(c, gin.H{})
	})
	engine.GET("/health-check", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return engine, poster
}

func doRequest(engine *gin.Engine, method, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return env
}

var withUA = map[string]string{"User-Agent": "test-agent"}

func TestSuccessIsWrapped(t *testing.T) {
	engine, poster := newTestEngine(t, nil)
	w := doRequest(engine, http.MethodGet, "/api/ok", withUA)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Code != 0 || env.Message != "OK" || env.RequestID == "" {
		t.Fatalf("unexpected envelope %+v", env)
	}
	var data map[string]string
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data["result"] != "تصنيف:اختبار" {
		t.Fatalf("data = %v", data)
	}
	if len(poster.tags) != 2 || poster.tags[0] != string(core.FluentdRequest) || poster.tags[1] != string(core.FluentdResponse) {
		t.Fatalf("fluentd tags = %v", poster.tags)
	}
}

func TestMissingUserAgent(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	w := doRequest(engine, http.MethodGet, "/api/ok", map[string]string{"User-Agent": ""})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Code != cErr.BAD_REQUEST_HEADERS {
		t.Fatalf("code = %d", env.Code)
	}
}

func TestCoreErrorsAreMapped(t *testing.T) {
	engine, _ := newTestEngine(t, nil)
	cases := []struct {
		path   string
		status int
		code   int
	}{
		{"/api/invalid", http.StatusBadRequest, cErr.BAD_REQUEST_PARAMS},
		{"/api/busy", http.StatusServiceUnavailable, cErr.SERVICE_UNAVAILABLE},
		{"/api/panic", http.StatusInternalServerError, cErr.INTERNAL_ERROR},
		{"/api/missing", http.StatusNotFound, cErr.NOT_FOUND},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			w := doRequest(engine, http.MethodGet, tc.path, withUA)
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tc.status, w.Body.String())
			}
			if env := decodeEnvelope(t, w); env.Code != tc.code {
				t.Fatalf("code = %d, want %d", env.Code, tc.code)
			}
		})
	}
}

func TestSkippedPathsAreNotWrapped(t *testing.T) {
	engine, poster := newTestEngine(t, nil)
	w := doRequest(engine, http.MethodGet, "/health-check", nil)
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
	if len(poster.tags) != 0 {
		t.Fatalf("health-check should not be forwarded, got %v", poster.tags)
	}
}

func TestRateLimitBlocks(t *testing.T) {
	limiter := &fakeLimiter{results: []consumeResult{
		{remaining: 1, ttl: 60},
		{remaining: 0, ttl: 30, err: redisRepo.ErrRateLimitExceeded},
	}}
	engine, _ := newTestEngine(t, limiter)

	first := doRequest(engine, http.MethodPost, "/api/list", withUA)
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}
	if got := first.Header().Get("X-RateLimit-Remaining"); got != "1" {
		t.Fatalf("remaining header = %q", got)
	}

	second := doRequest(engine, http.MethodPost, "/api/list", withUA)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d", second.Code)
	}
	if got := second.Header().Get("Retry-After"); got != "30" {
		t.Fatalf("Retry-After = %q", got)
	}
	if env := decodeEnvelope(t, second); env.Code != cErr.RATE_LIMIT_EXCEEDED {
		t.Fatalf("code = %d", env.Code)
	}
}

func TestRateLimitDegradesOnRedisError(t *testing.T) {
	limiter := &fakeLimiter{results: []consumeResult{{err: errors.New("connection refused")}}}
	engine, _ := newTestEngine(t, limiter)

	w := doRequest(engine, http.MethodPost, "/api/list", withUA)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Header().Get("X-RateLimit-Limit") != "" {
		t.Fatal("degraded path should not set quota headers")
	}
}

func TestCorsPreflight(t *testing.T) {
	engine, _ := newTestEngine(t, nil)

	allowed := doRequest(engine, http.MethodOptions, "/api/ok", map[string]string{
		"Origin":                        "https://ar.wikipedia.org",
		"Access-Control-Request-Method": "GET",
	})
	if allowed.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", allowed.Code)
	}
	if got := allowed.Header().Get("Access-Control-Allow-Origin"); got != "https://ar.wikipedia.org" {
		t.Fatalf("allow origin = %q", got)
	}

	denied := doRequest(engine, http.MethodGet, "/api/ok", map[string]string{
		"Origin":     "https://evil.example",
		"User-Agent": "test-agent",
	})
	if denied.Code != http.StatusForbidden {
		t.Fatalf("foreign origin status = %d", denied.Code)
	}
}

func TestToSafePreviewKeepsRuneBoundary(t *testing.T) {
	got := toSafePreview([]byte("تصنيف"), 3)
	if got != "ت…" {
		t.Fatalf("got %q", got)
	}
	if got := toSafePreview([]byte{0xff, 0xfe}, 10); got != "b64://4=" {
		t.Fatalf("got %q", got)
	}
}
