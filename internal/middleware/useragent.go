package middleware

import (
	"strings"

	"arwikicats/internal/core"
	cErr "arwikicats/internal/pkg/error"
	"arwikicats/internal/pkg/response"
	"arwikicats/internal/telemetry"

	"github.com/gin-gonic/gin"
)

type UserAgent struct {
	trace *telemetry.Trace
}

func NewUserAgent(trace *telemetry.Trace) *UserAgent {
	return &UserAgent{trace: trace}
}

// Require /api/* 必須帶 User-Agent
func (middleware *UserAgent) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanUserAgentMiddleware))
		meta := core.TraceUserAgentMeta{
			Path:      c.Request.URL.Path,
			UserAgent: c.Request.UserAgent(),
			ClientIP:  c.ClientIP(),
			Status:    "ok",
		}
		if strings.TrimSpace(meta.UserAgent) == "" {
			meta.Status = "missing"
			middleware.trace.ApplyTraceAttributes(span, meta)
			appErr := cErr.BadRequestHeaders("User-Agent header is required")
			end(appErr)
			response.AbortWithError(c, appErr)
			return
		}
		middleware.trace.ApplyTraceAttributes(span, meta)
		end(nil)
		c.Next()
	}
}
