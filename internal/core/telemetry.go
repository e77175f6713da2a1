package core

const ContextTraceKey = "telemetry_trace_ctx"

// ==== 型別安全 span name ====
type TraceSpanName string

const (
	SpanHttpRequest         TraceSpanName = "http_request"
	SpanLoggerMiddleware    TraceSpanName = "logger_middleware"
	SpanRecoveryMiddleware  TraceSpanName = "recovery_middleware"
	SpanCorsMiddleware      TraceSpanName = "cors_middleware"
	SpanResponseMiddleware  TraceSpanName = "response_middleware"
	SpanUserAgentMiddleware TraceSpanName = "user_agent_middleware"
	SpanRateLimitMiddleware TraceSpanName = "ratelimit_middleware"
)

// 指標名稱常數
type MetricName string

const (
	MetricHttpRequestsTotal     MetricName = "requests_total"
	MetricHttpRequestDuration   MetricName = "request_duration_seconds"
	MetricLookupTotal           MetricName = "lookup_total"
	MetricResolveDuration       MetricName = "resolve_duration_seconds"
	MetricStorageWriteFailTotal MetricName = "storage_write_fail_total"
	MetricRateLimitTotal        MetricName = "rate_limited_total"
)

// label name 常數
type MetricLabelName string

const (
	MetricLabelEndpoint MetricLabelName = "endpoint"
	MetricLabelStatus   MetricLabelName = "status"
	MetricLabelReason   MetricLabelName = "reason"
	MetricLabelTable    MetricLabelName = "table"
)

type LoggerRequestMeta struct {
	Method     string            `trace:"request.method"`
	Path       string            `trace:"request.path"`
	FullPath   string            `trace:"request.full_path"`
	Query      string            `trace:"request.query"`
	Body       string            `trace:"request.body"`
	Scheme     string            `trace:"http.scheme"`
	Host       string            `trace:"http.host"`
	UserAgent  string            `trace:"http.user_agent"`
	ContentLen int64             `trace:"http.request_content_length"`
	Proto      string            `trace:"http.flavor"`
	ClientIP   string            `trace:"net.peer.ip"`
	Headers    map[string]string `trace:"http.request.header"`
	Params     map[string]string `trace:"http.request.param"`
}

// 供 Redis 限流 Consume 使用
type TraceRateLimitMeta struct {
	Client    string `trace:"rl.client"`
	Scope     string `trace:"rl.scope"`
	Limit     int    `trace:"rl.limit_count"`
	WindowSec int64  `trace:"rl.window_sec"`
	Remaining int    `trace:"rl.remaining,omitempty"`
	TTL       int64  `trace:"rl.ttl_sec,omitempty"`
	Op        string `trace:"rl.op"` // "consume" / "get"
}

type TraceRateLimitMiddlewareMeta struct {
	Client      string `trace:"ratelimit.client"`
	Scope       string `trace:"ratelimit.scope"`
	ConfigLimit int    `trace:"ratelimit.config.limit"`
	Remaining   int    `trace:"ratelimit.remaining"`
	TTLSeconds  int64  `trace:"ratelimit.ttl_sec"`
	Blocked     bool   `trace:"ratelimit.blocked"`
	Degraded    bool   `trace:"ratelimit.degraded"`
}

type TraceUserAgentMeta struct {
	Path      string `trace:"http.path"`
	UserAgent string `trace:"http.user_agent"`
	ClientIP  string `trace:"net.peer.ip"`
	Status    string `trace:"ua.status"`
}

// SQLite 寫入
type TraceLogWriteMeta struct {
	Table         string  `trace:"sqlite.table"`
	Endpoint      string  `trace:"log.endpoint"`
	Status        string  `trace:"log.response_status"`
	ResponseTime  float64 `trace:"log.response_time"`
	ResponseCount int     `trace:"log.response_count"`
	InsertedID    int64   `trace:"sqlite.inserted_id,omitempty"`
	Attempts      int     `trace:"sqlite.attempts"`
}

// SQLite 查詢
type TraceLogQueryMeta struct {
	Op       string `trace:"op"`
	Table    string `trace:"sqlite.table"`
	Page     int    `trace:"query.page,omitempty"`
	PageSize int    `trace:"query.page_size,omitempty"`
	OrderBy  string `trace:"query.order_by,omitempty"`
	Order    string `trace:"query.order,omitempty"`
	Day      string `trace:"query.day,omitempty"`
	Status   string `trace:"query.status,omitempty"`
	Like     string `trace:"query.like,omitempty"`
	Count    int    `trace:"result.count"`
	Total    int64  `trace:"result.total,omitempty"`
}

type TraceLookupMeta struct {
	Title     string  `trace:"lookup.title"`
	Found     bool    `trace:"lookup.found"`
	Status    string  `trace:"lookup.status"`
	ElapsedMs float64 `trace:"lookup.elapsed_ms"`
	LogID     int64   `trace:"lookup.log_id,omitempty"`
	CacheHit  bool    `trace:"lookup.cache_hit"`
}

type TraceBatchMeta struct {
	Titles     int     `trace:"batch.titles"`
	Unique     int     `trace:"batch.unique"`
	Duplicates int     `trace:"batch.duplicates"`
	WithLabels int     `trace:"batch.with_labs"`
	NoLabels   int     `trace:"batch.no_labs"`
	Errors     int     `trace:"batch.errors"`
	ElapsedMs  float64 `trace:"batch.elapsed_ms"`
	LogID      int64   `trace:"batch.log_id,omitempty"`
}

type TracePanicMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	ClientIP   string  `trace:"net.peer.ip"`
	UserAgent  string  `trace:"http.user_agent"`
	DurationMs float64 `trace:"response.latency_ms"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"error.message"`
	Stack      string  `trace:"error.stack"`
}

type TraceErrorMeta struct {
	Code       int     `trace:"error.code"`
	Message    string  `trace:"error.message"`
	Detail     string  `trace:"error.detail"`
	Status     int     `trace:"http.status_code"`
	DurationMs float64 `trace:"response.latency_ms"`
}

type TraceResponseMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"response.message"`
	Code       int     `trace:"response.code"`
	DurationMs float64 `trace:"response.latency_ms"`
	Data       string  `trace:"response.data_preview"`
}

type TraceHttpServerMeta struct {
	// request side
	ClientAddr        string `trace:"client.address"`
	HttpRequestMethod string `trace:"http.request.method"`
	HttpRoute         string `trace:"http.route"`
	UrlPath           string `trace:"http.request.path"`
	UrlScheme         string `trace:"http.request.url.scheme"`
	UserAgent         string `trace:"user_agent.original"`
	ServerAddress     string `trace:"server.address"`
	NetworkPeerAddr   string `trace:"network.peer.address"`
	NetworkPeerPort   int    `trace:"network.peer.port"`
	NetworkProtoVer   string `trace:"network.protocol.version"`
	SpanTraceID       string `trace:"span.trace_id"`
	HttpStatusCode    int    `trace:"http.response.status_code"`
}
