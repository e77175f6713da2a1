package middleware

import (
	"strings"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewTraceEntry,
	NewCors,
	NewLogger,
	NewRecovery,
	NewResponse,
	NewUserAgent,
	NewRateLimit,
)

// 這些路徑不做 tracing / 紀錄，也不包統一回應格式
var unobservedPrefixes = []string{"/swagger", "/metrics", "/version", "/health", "/debug/pprof"}

func skipObservability(endpoint string) bool {
	for _, prefix := range unobservedPrefixes {
		if strings.HasPrefix(endpoint, prefix) {
			return true
		}
	}
	return false
}
