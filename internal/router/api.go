package router

import (
	"arwikicats/internal/handler"
	"arwikicats/internal/middleware"

	"github.com/gin-gonic/gin"
)

type APIRouter struct {
	lookupHandler       *handler.LookupHandler
	logsHandler         *handler.LogsHandler
	userAgentMiddleware *middleware.UserAgent
	ratelimitMiddleware *middleware.RateLimit
}

func NewAPIRouter(
	lookupHandler *handler.LookupHandler,
	logsHandler *handler.LogsHandler,
	userAgentMiddleware *middleware.UserAgent,
	ratelimitMiddleware *middleware.RateLimit,
) *APIRouter {
	return &APIRouter{
		lookupHandler:       lookupHandler,
		logsHandler:         logsHandler,
		userAgentMiddleware: userAgentMiddleware,
		ratelimitMiddleware: ratelimitMiddleware,
	}
}

func (apiRouter *APIRouter) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api", apiRouter.userAgentMiddleware.Require())
	{
		api.GET("/lookup", apiRouter.lookupHandler.Lookup)
		api.POST("/list", apiRouter.ratelimitMiddleware.Guard(), apiRouter.lookupHandler.List)
	}
	logs := api.Group("/logs")
	{
		logs.GET("", apiRouter.logsHandler.View)
		logs.GET("/day/:day", apiRouter.logsHandler.ForDay)
		logs.GET("/no-result", apiRouter.logsHandler.NoResult)
		logs.GET("/no-result/titles", apiRouter.logsHandler.NoResultTitles)
		logs.GET("/by-day", apiRouter.logsHandler.ByDay)
		logs.GET("/status", apiRouter.logsHandler.Status)
		logs.GET("/daily-summary", apiRouter.logsHandler.DailySummary)
	}
}
