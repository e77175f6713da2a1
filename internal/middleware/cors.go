package middleware

import (
	"slices"

	"arwikicats/config"
	"arwikicats/internal/core"
	"arwikicats/internal/telemetry"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Cors struct {
	trace  *telemetry.Trace
	config *config.Configuration
}

func NewCors(trace *telemetry.Trace, config *config.Configuration) *Cors {
	return &Cors{trace: trace, config: config}
}

func (m *Cors) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "User-Agent"},
	}
	// "*" 不可搭配 credentials
	if len(m.config.App.AllowOrigins) == 0 || slices.Contains(m.config.App.AllowOrigins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = m.config.App.AllowOrigins
	}
	return cfg
}

// CorsHandler 設定 CORS；跳過 tracing 的路徑仍套用 CORS（避免 preflight 失敗）
func (m *Cors) CorsHandler() gin.HandlerFunc {
	cfg := m.corsConfig()
	corsHandler := cors.New(cfg)

	type corsMeta struct {
		AllowOrigins []string `trace:"http.cors.allow_origins"`
		AllowAll     bool     `trace:"http.cors.allow_all_origins"`
		AllowMethods []string `trace:"http.cors.allow_methods"`
		AllowHeaders []string `trace:"http.cors.allow_headers"`
	}

	return func(c *gin.Context) {
		if skipObservability(c.FullPath()) {
			corsHandler(c)
			return
		}

		_, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanCorsMiddleware))
		m.trace.ApplyTraceAttributes(span, corsMeta{
			AllowOrigins: cfg.AllowOrigins,
			AllowAll:     cfg.AllowAllOrigins,
			AllowMethods: cfg.AllowMethods,
			AllowHeaders: cfg.AllowHeaders,
		})
		end(nil)

		// 內部會呼叫 c.Next()；preflight 直接 204 結束
		corsHandler(c)
	}
}
