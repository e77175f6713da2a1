package middleware

import (
	"context"
	"errors"
	"strconv"

	"arwikicats/config"
	"arwikicats/internal/core"
	"arwikicats/internal/database/redis/repository"
	cErr "arwikicats/internal/pkg/error"
	"arwikicats/internal/pkg/response"
	"arwikicats/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type quotaConsumer interface {
	Enabled() bool
	Consume(ctx context.Context, clientIdentifier string, scope string, windowSeconds int64, limitCount int) (int, int64, error)
}

// RateLimit 以 client IP 為單位的固定視窗限流；Redis 關閉或故障時放行
type RateLimit struct {
	trace   *telemetry.Trace
	metric  *telemetry.Metric
	config  *config.Configuration
	limiter quotaConsumer
	logger  *zap.Logger
}

func NewRateLimit(
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	rateLimiterRepository *repository.RateLimiterRepository,
	logger *zap.Logger,
) *RateLimit {
	return &RateLimit{
		trace:   trace,
		metric:  metric,
		config:  config,
		limiter: rateLimiterRepository,
		logger:  logger,
	}
}

func (middleware *RateLimit) Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		conf := middleware.config.RateLimit
		if !conf.Enabled || middleware.limiter == nil || !middleware.limiter.Enabled() {
			c.Next()
			return
		}

		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRateLimitMiddleware))
		scope := c.FullPath()
		client := c.ClientIP()
		meta := core.TraceRateLimitMiddlewareMeta{
			Client:      client,
			Scope:       scope,
			ConfigLimit: conf.Limit,
		}

		remaining, ttlSec, err := middleware.limiter.Consume(ctx, client, scope, conf.Window, conf.Limit)
		switch {
		case err == nil:
		case errors.Is(err, repository.ErrRateLimitExceeded):
			meta.Blocked = true
		default:
			// Redis 讀寫失敗不阻斷主流程
			meta.Degraded = true
			middleware.trace.ApplyTraceAttributes(span, meta)
			middleware.logger.Warn("rate limiter unavailable", zap.String("scope", scope), zap.Error(err))
			end(nil)
			c.Next()
			return
		}
		meta.Remaining, meta.TTLSeconds = remaining, ttlSec
		middleware.trace.ApplyTraceAttributes(span, meta)

		c.Header("X-RateLimit-Limit", strconv.Itoa(conf.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if ttlSec > 0 {
			c.Header("X-RateLimit-Reset", strconv.FormatInt(ttlSec, 10))
		}

		if meta.Blocked {
			if ttlSec > 0 {
				c.Header("Retry-After", strconv.FormatInt(ttlSec, 10))
			}
			if middleware.metric.RateLimitedTotal != nil {
				middleware.metric.RateLimitedTotal.WithLabelValues(scope).Inc()
			}
			appErr := cErr.RateLimitExceeded("rate limit exceeded")
			end(appErr)
			response.AbortWithError(c, appErr)
			return
		}
		end(nil)
		c.Next()
	}
}
