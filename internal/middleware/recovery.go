package middleware

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"
	"unicode/utf8"

	"arwikicats/config"
	"arwikicats/internal/core"
	"arwikicats/internal/database/fluentd/model"
	"arwikicats/internal/database/fluentd/repository"
	cErr "arwikicats/internal/pkg/error"
	res "arwikicats/internal/pkg/response"
	"arwikicats/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Recovery struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewRecovery(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Recovery {
	return &Recovery{
		logger:            logger,
		trace:             trace,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

// ErrorHandler 統一輸出 c.Errors 與 panic；錯誤格式見 response.Response
func (middleware *Recovery) ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestTime := requestStartTime(c)
		requestID := requestIDFrom(c)

		// panic recover 必須在 c.Next() 之前註冊
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			duration := time.Since(requestTime)
			ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRecoveryMiddleware))

			meta := core.TracePanicMeta{
				Path:       c.Request.URL.Path,
				Method:     c.Request.Method,
				ClientIP:   c.ClientIP(),
				UserAgent:  c.Request.UserAgent(),
				DurationMs: float64(duration.Milliseconds()),
				Message:    toSafeString(fmt.Sprint(rec)),
				Stack:      toSafeStack(debug.Stack()),
				Status:     http.StatusInternalServerError,
			}
			middleware.trace.ApplyTraceAttributes(span, meta)

			middleware.logger.Error("[PANIC] Recovered",
				zap.String("path", meta.Path),
				zap.String("method", meta.Method),
				zap.String("client_ip", meta.ClientIP),
				zap.String("user_agent", meta.UserAgent),
				zap.Duration("duration", duration),
				zap.String("panic", meta.Message),
				zap.String("stacktrace", meta.Stack),
				zap.String("requestId", requestID),
			)

			appErr := cErr.InternalServer("unexpected panic")
			end(appErr)
			// 尚未回寫才輸出
			if !c.Writer.Written() {
				res.FailByErr(c, requestID, appErr)
			}
			middleware.logResponse(ctx, c, requestID, appErr, meta.Message, duration)
			c.Abort()
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		duration := time.Since(requestTime)
		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRecoveryMiddleware))

		// 以最後一個錯誤為準；非 *cErr.Error 依核心錯誤類型轉換
		lastErr := c.Errors.Last().Err
		appErr := cErr.From(lastErr)
		middleware.trace.ApplyTraceAttributes(span, core.TraceErrorMeta{
			Code:       appErr.ErrorCode(),
			Message:    appErr.Error(),
			Detail:     toSafeString(appErr.ErrorDesc()),
			DurationMs: float64(duration.Milliseconds()),
			Status:     appErr.HttpCode(),
		})

		fields := []zap.Field{
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", appErr.HttpCode()),
			zap.Int("code", appErr.ErrorCode()),
			zap.String("data", appErr.ErrorDesc()),
			zap.Duration("duration", duration),
			zap.String("requestId", requestID),
		}
		if appErr.HttpCode() >= http.StatusInternalServerError {
			middleware.logger.Error(appErr.Error(), append(fields, zap.Error(lastErr))...)
		} else {
			middleware.logger.Warn(appErr.Error(), fields...)
		}

		res.FailByErr(c, requestID, appErr)
		middleware.logResponse(ctx, c, requestID, appErr, appErr.ErrorDesc(), duration)
		end(lastErr)
		c.Abort()
	}
}

func (middleware *Recovery) logResponse(ctx context.Context, c *gin.Context, requestID string, appErr *cErr.Error, detail string, duration time.Duration) {
	err := middleware.fluentdRepository.LogResponse(ctx, model.ResponseLog{
		RequestID:  requestID,
		Path:       c.Request.URL.Path,
		Code:       appErr.ErrorCode(),
		StatusCode: appErr.HttpCode(),
		Error:      toSafeString(appErr.Error() + ": " + detail),
		LatencyMs:  float64(duration.Microseconds()) / 1000,
		ResponseTS: time.Now().UTC().Format(requestTSLayout),
	})
	if err != nil {
		middleware.logger.Warn("fluentd response log failed", zap.Error(err))
	}
}

// requestIDFrom 有 trace 時沿用 trace id，否則產生 UUIDv7
func requestIDFrom(c *gin.Context) string {
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	if id, ok := c.Get(requestIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	requestID, err := uuid.NewV7()
	if err != nil {
		requestID = uuid.New()
	}
	c.Set(requestIDKey, requestID.String())
	return requestID.String()
}

const requestIDKey = "requestID"

// ---- helpers ----

func toSafeString(s string) string {
	const max = 8000
	if utf8.ValidString(s) {
		if len(s) > max {
			return s[:max] + "…"
		}
		return s
	}
	b := []byte(s)
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}

func toSafeStack(b []byte) string {
	const max = 16000
	if utf8.Valid(b) {
		if len(b) > max {
			return string(b[:max]) + "…"
		}
		return string(b)
	}
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}
