package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"arwikicats/internal/core"
	fluentdModel "arwikicats/internal/database/fluentd/model"
	fluentdRepo "arwikicats/internal/database/fluentd/repository"
	sqliteRepo "arwikicats/internal/database/sqlite/repository"
	"arwikicats/internal/service/resolver"
	"arwikicats/internal/telemetry"

	"go.uber.org/zap"
)

// SingleResult handle_single 的回傳；LogError 非空代表紀錄寫入失敗但結果仍有效
type SingleResult struct {
	Title    string `json:"title"`
	Result   string `json:"result"`
	Found    bool   `json:"found"`
	LogID    int64  `json:"log_id"`
	LogError string `json:"log_error,omitempty"`
}

// BatchResult handle_batch 的回傳；Results 中沒有標籤的標題值為 null
type BatchResult struct {
	Results    map[string]*string `json:"results"`
	NoLabs     int                `json:"no_labs"`
	WithLabs   int                `json:"with_labs"`
	Duplicates int                `json:"duplicates"`
	Errors     int                `json:"errors"`
	Time       float64            `json:"time"`
	LogID      int64              `json:"log_id"`
	LogError   string             `json:"log_error,omitempty"`
}

// LookupService 包裝一次標籤解析：計時、寫紀錄、轉送 Fluentd
type LookupService struct {
	trace                *telemetry.Trace
	metric               *telemetry.Metric
	logger               *zap.Logger
	resolver             resolver.Resolver
	logRepository        *sqliteRepo.LogRepository
	fluentdLogRepository *fluentdRepo.LogRepository
	now                  func() time.Time
}

func NewLookupService(
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	logger *zap.Logger,
	resolver resolver.Resolver,
	logRepository *sqliteRepo.LogRepository,
	fluentdLogRepository *fluentdRepo.LogRepository,
) *LookupService {
	return &LookupService{
		trace:                trace,
		metric:               metric,
		logger:               logger,
		resolver:             resolver,
		logRepository:        logRepository,
		fluentdLogRepository: fluentdLogRepository,
		now:                  time.Now,
	}
}

// HandleSingle 解析單一標題並在 logs 寫入一列（不論成功與否）。
// 解析失敗時回傳 core.ErrResolver。
func (s *LookupService) HandleSingle(ctx context.Context, title string) (result *SingleResult, returnedError error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", core.ErrInvalidQueryParam)
	}

	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	start := s.now()
	label, found, resolveErr := s.resolver.Resolve(ctx, title)
	elapsed := s.now().Sub(start)
	s.observeResolve(core.EndpointLookup, elapsed)

	status := core.LookupStatusOK
	switch {
	case resolveErr != nil:
		status = core.ErrorStatus(resolveErr)
	case !found:
		status = core.LookupStatusNoLabel
	}
	s.countLookup(core.EndpointLookup, status, 1)

	logID, logErr := s.writeLog(ctx, core.EndpointLookup, title, status, elapsed, 1)

	s.trace.ApplyTraceAttributes(span, core.TraceLookupMeta{
		Title:     title,
		Found:     found,
		Status:    status,
		ElapsedMs: float64(elapsed.Microseconds()) / 1000,
		LogID:     logID,
	})

	if resolveErr != nil {
		if !errors.Is(resolveErr, core.ErrResolver) {
			resolveErr = fmt.Errorf("%w: %w", core.ErrResolver, resolveErr)
		}
		returnedError = resolveErr
		return nil, returnedError
	}

	result = &SingleResult{Title: title, Result: label, Found: found, LogID: logID}
	if logErr != nil {
		result.LogError = logErr.Error()
	}
	return result, nil
}

// HandleBatch 去重後逐一解析，整批只在 list_logs 寫入一列，response_count 為去重後的標題數。
// 單一標題解析失敗視為無標籤並計入 Errors。
func (s *LookupService) HandleBatch(ctx context.Context, titles []string) (result *BatchResult, returnedError error) {
	if len(titles) == 0 {
		return nil, fmt.Errorf("%w: titles must not be empty", core.ErrInvalidQueryParam)
	}
	if len(titles) > core.MaxBatchTitles {
		return nil, fmt.Errorf("%w: at most %d titles per request", core.ErrInvalidQueryParam, core.MaxBatchTitles)
	}

	unique := make([]string, 0, len(titles))
	seen := make(map[string]struct{}, len(titles))
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			return nil, fmt.Errorf("%w: titles must not contain blank entries", core.ErrInvalidQueryParam)
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		unique = append(unique, title)
	}

	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	result = &BatchResult{
		Results:    make(map[string]*string, len(unique)),
		Duplicates: len(titles) - len(unique),
	}

	var firstErr error
	start := s.now()
	for _, title := range unique {
		label, found, err := s.resolver.Resolve(ctx, title)
		switch {
		case err != nil:
			if firstErr == nil {
				firstErr = err
			}
			result.Errors++
			result.NoLabs++
			result.Results[title] = nil
		case !found:
			result.NoLabs++
			result.Results[title] = nil
		default:
			result.WithLabs++
			result.Results[title] = &label
		}
	}
	elapsed := s.now().Sub(start)
	result.Time = elapsed.Seconds()
	s.observeResolve(core.EndpointBatch, elapsed)

	status := core.LookupStatusOK
	switch {
	case firstErr != nil:
		status = core.ErrorStatus(firstErr)
	case result.WithLabs == 0:
		status = core.LookupStatusNoLabel
	}
	s.countLookup(core.EndpointBatch, core.LookupStatusOK, result.WithLabs)
	s.countLookup(core.EndpointBatch, core.LookupStatusNoLabel, result.NoLabs-result.Errors)
	s.countLookup(core.EndpointBatch, "error", result.Errors)

	requestData, _ := json.Marshal(unique)
	logID, logErr := s.writeLog(ctx, core.EndpointBatch, string(requestData), status, elapsed, len(unique))
	result.LogID = logID
	if logErr != nil {
		result.LogError = logErr.Error()
	}

	s.trace.ApplyTraceAttributes(span, core.TraceBatchMeta{
		Titles:     len(titles),
		Unique:     len(unique),
		Duplicates: result.Duplicates,
		WithLabels: result.WithLabs,
		NoLabels:   result.NoLabs,
		Errors:     result.Errors,
		ElapsedMs:  float64(elapsed.Microseconds()) / 1000,
		LogID:      logID,
	})
	return result, nil
}

// writeLog 盡力寫入：失敗只記錄並回報，不影響解析結果。
// 寫入不隨請求取消，client 中斷時紀錄仍會保留。
func (s *LookupService) writeLog(
	ctx context.Context,
	endpoint string,
	requestData string,
	status string,
	elapsed time.Duration,
	responseCount int,
) (int64, error) {
	ctx = context.WithoutCancel(ctx)
	table := core.TableForEndpoint(endpoint)

	logID, err := s.logRepository.LogRequest(ctx, endpoint, requestData, status, elapsed.Seconds(), responseCount)

	lookupLog := fluentdModel.LookupLog{
		Table:          string(table),
		Endpoint:       endpoint,
		RequestData:    requestData,
		ResponseStatus: status,
		ResponseTime:   elapsed.Seconds(),
		ResponseCount:  responseCount,
		LogID:          logID,
	}
	if err != nil {
		lookupLog.StorageError = err.Error()
		s.logger.Warn("request log write failed",
			zap.String("table", string(table)),
			zap.String("endpoint", endpoint),
			zap.String("status", status),
			zap.Error(err),
		)
		if s.metric.StorageWriteFailTotal != nil {
			reason := "write"
			if errors.Is(err, core.ErrStorageBusy) {
				reason = "busy"
			}
			s.metric.StorageWriteFailTotal.WithLabelValues(string(table), reason).Inc()
		}
	}

	if s.fluentdLogRepository != nil {
		if fluentdErr := s.fluentdLogRepository.LogLookup(ctx, lookupLog); fluentdErr != nil {
			s.logger.Warn("fluentd lookup log failed", zap.Error(fluentdErr))
		}
	}
	return logID, err
}

func (s *LookupService) observeResolve(endpoint string, elapsed time.Duration) {
	if s.metric.ResolveDuration != nil {
		s.metric.ResolveDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	}
}

func (s *LookupService) countLookup(endpoint string, status string, n int) {
	if s.metric.LookupTotal != nil && n > 0 {
		s.metric.LookupTotal.WithLabelValues(endpoint, core.StatusGroup(status)).Add(float64(n))
	}
}
