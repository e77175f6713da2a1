package core

// ─── Database Types ────────────────────────────────────────────────────────────

type SqliteTable string
type RedisKey string
type FluentdSubTag string

// ─── SQLite ────────────────────────────────────────────────────────────────────

// 兩張僅附加（append-only）的紀錄表
const (
	SqliteTableLogs     SqliteTable = "logs"      // 單筆查詢
	SqliteTableListLogs SqliteTable = "list_logs" // 批次查詢
)

// SqliteTables 所有合法的紀錄表
var SqliteTables = []SqliteTable{SqliteTableLogs, SqliteTableListLogs}

// ─── Redis Keys ────────────────────────────────────────────────────────────────

const (
	RedisKeyServerName RedisKey = "arwikicats" // 伺服器名稱
	RedisKeyLabel      RedisKey = "label"      // 標籤解析快取
	RedisKeyRateLimit  RedisKey = "ratelimit"  // 批次查詢限流
)

// ─── Fluentd ───────────────────────────────────────────────────────────────────

const (
	FluentdRequest  FluentdSubTag = "request_log"
	FluentdResponse FluentdSubTag = "response_log"
	FluentdLookup   FluentdSubTag = "lookup_log"
)
