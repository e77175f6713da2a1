package handler

import (
	"arwikicats/internal/core"
	"arwikicats/internal/dto"
	"arwikicats/internal/pkg/response"
	"arwikicats/internal/service"
	"arwikicats/internal/telemetry"
	"arwikicats/utils/validate"

	"github.com/gin-gonic/gin"
)

type LogsHandler struct {
	trace           *telemetry.Trace
	logQueryService *service.LogQueryService
}

func NewLogsHandler(trace *telemetry.Trace, logQueryService *service.LogQueryService) *LogsHandler {
	return &LogsHandler{trace: trace, logQueryService: logQueryService}
}

// View 分頁瀏覽請求紀錄
// @Summary 請求紀錄列表
// @Tags Logs
// @Produce json
// @Param User-Agent header string true "呼叫端識別"
// @Param table query string false "logs / list_logs" default(logs)
// @Param page query int false "頁碼（從 1 開始）" default(1)
// @Param page_size query int false "每頁筆數（1-1000）" default(10)
// @Param order_by query string false "id / timestamp / response_time / response_status / response_count / date_only" default(id)
// @Param order query string false "asc / desc" default(desc)
// @Param status query string false "完整狀態字串"
// @Param like query string false "request_data 子字串"
// @Param day query string false "YYYY-MM-DD"
// @Success 200 {object} service.ViewLogsResult
// @Failure 400 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /api/logs [get]
func (h *LogsHandler) View(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)

	var req dto.LogQueryDto
	if err := validate.BindQuery(c, &req); err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	query, err := req.ToLogQuery()
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}

	result, err := h.logQueryService.ViewLogs(ctx, query)
	end(err)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, result)
}

// ForDay 指定日期的全部紀錄
// @Summary 單日紀錄
// @Tags Logs
// @Produce json
// @Param User-Agent header string true "呼叫端識別"
// @Param day path string true "YYYY-MM-DD"
// @Param table query string false "logs / list_logs" default(logs)
// @Success 200 {array} model.LogEntry
// @Failure 400 {object} response.Response
// @Router /api/logs/day/{day} [get]
func (h *LogsHandler) ForDay(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)

	table, err := validate.ParseTable(c)
	if err == nil {
		_, err = validate.ParseDayParam(c.Param("day"), true)
	}
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}

	entries, err := h.logQueryService.LogsForDay(ctx, table, c.Param("day"))
	end(err)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, entries)
}

// NoResult 狀態為 no_label 的紀錄
// @Summary 無標籤紀錄
// @Tags Logs
// @Produce json
// @Param User-Agent header string true "呼叫端識別"
// @Param table query string false "logs / list_logs" default(logs)
// @Param day query string false "YYYY-MM-DD，未帶則為全部"
// @Success 200 {array} model.LogEntry
// @Failure 400 {object} response.Response
// @Router /api/logs/no-result [get]
func (h *LogsHandler) NoResult(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)

	table, day, err := tableAndOptionalDay(c)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}

	entries, err := h.logQueryService.NoResultEntries(ctx, table, day)
	end(err)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, entries)
}

// NoResultTitles 最後一次狀態為 no_label 的不重複標題與各狀態標題數
// @Summary 無標籤標題清單
// @Tags Logs
// @Produce json
// @Param User-Agent header string true "呼叫端識別"
// @Param table query string false "logs / list_logs" default(logs)
// @Param day query string false "YYYY-MM-DD，未帶則為全部"
// @Success 200 {object} service.NoResultTitlesResult
// @Failure 400 {object} response.Response
// @Router /api/logs/no-result/titles [get]
func (h *LogsHandler) NoResultTitles(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)

	table, day, err := tableAndOptionalDay(c)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}

	result, err := h.logQueryService.NoResultTitles(ctx, table, day)
	end(err)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, result)
}

// ByDay 每日筆數（依日期排序）
// @Summary 每日筆數
// @Tags Logs
// @Produce json
// @Param User-Agent header string true "呼叫端識別"
// @Param table query string false "logs / list_logs" default(logs)
// @Success 200 {array} model.DayCount
// @Failure 400 {object} response.Response
// @Router /api/logs/by-day [get]
func (h *LogsHandler) ByDay(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)

	table, err := validate.ParseTable(c)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}

	counts, err := h.logQueryService.CountsByDay(ctx, table)
	end(err)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, counts)
}

// Status 各狀態筆數
// @Summary 狀態統計
// @Tags Logs
// @Produce json
// @Param User-Agent header string true "呼叫端識別"
// @Param table query string false "logs / list_logs" default(logs)
// @Success 200 {object} map[string]int64
// @Failure 400 {object} response.Response
// @Router /api/logs/status [get]
func (h *LogsHandler) Status(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)

	table, err := validate.ParseTable(c)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}

	summary, err := h.logQueryService.StatusSummary(ctx, table)
	end(err)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, summary)
}

// DailySummary 每日 ok / no_label / error 分組統計
// @Summary 每日狀態分組統計
// @Tags Logs
// @Produce json
// @Param User-Agent header string true "呼叫端識別"
// @Param table query string false "logs / list_logs" default(logs)
// @Success 200 {array} service.DailySummaryRow
// @Failure 400 {object} response.Response
// @Router /api/logs/daily-summary [get]
func (h *LogsHandler) DailySummary(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)

	table, err := validate.ParseTable(c)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}

	rows, err := h.logQueryService.DailySummary(ctx, table)
	end(err)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, rows)
}

func tableAndOptionalDay(c *gin.Context) (core.SqliteTable, string, error) {
	table, err := validate.ParseTable(c)
	if err != nil {
		return "", "", err
	}
	day, err := validate.ParseDayParam(c.Query("day"), false)
	return table, day, err
}
