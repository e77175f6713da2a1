package handler

import (
	"arwikicats/internal/dto"
	"arwikicats/internal/pkg/response"
	"arwikicats/internal/service"
	"arwikicats/internal/telemetry"
	"arwikicats/utils/validate"

	"github.com/gin-gonic/gin"
)

type LookupHandler struct {
	trace         *telemetry.Trace
	lookupService *service.LookupService
}

func NewLookupHandler(trace *telemetry.Trace, lookupService *service.LookupService) *LookupHandler {
	return &LookupHandler{trace: trace, lookupService: lookupService}
}

// Lookup 解析單一分類標題
// @Summary 單筆標籤查詢
// @Tags Lookup
// @Produce json
// @Param User-Agent header string true "呼叫端識別"
// @Param title query string true "英文分類標題"
// @Success 200 {object} service.SingleResult
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /api/lookup [get]
func (h *LookupHandler) Lookup(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)

	result, err := h.lookupService.HandleSingle(ctx, c.Query("title"))
	end(err)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, result)
}

// List 批次解析，重複標題只解析一次
// @Summary 批次標籤查詢
// @Tags Lookup
// @Accept json
// @Produce json
// @Param User-Agent header string true "呼叫端識別"
// @Param body body dto.BatchLookupDto true "標題清單（最多 1000 筆）"
// @Success 200 {object} service.BatchResult
// @Failure 400 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /api/list [post]
func (h *LookupHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)

	var req dto.BatchLookupDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	result, err := h.lookupService.HandleBatch(ctx, req.Titles)
	end(err)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, result)
}
