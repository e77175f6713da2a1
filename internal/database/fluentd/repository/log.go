package repository

import (
	"context"
	"encoding/json"
	"time"

	"arwikicats/config"
	"arwikicats/internal/core"
	"arwikicats/internal/database/client"
	"arwikicats/internal/database/fluentd/model"
)

const loggedAtLayout = "2006-01-02 15:04:05.999999 UTC"

// LogRepository 發送 Request / Response / Lookup 紀錄到 Fluentd
type LogRepository struct {
	fluentdClient client.FluentdPoster
	version       string
	now           func() time.Time
}

func NewLogRepository(config *config.Configuration, fluentdClient client.FluentdPoster) *LogRepository {
	version := "1.0.0"
	if config.App.Version != "" {
		version = config.App.Version
	}
	return &LogRepository{fluentdClient: fluentdClient, version: version, now: time.Now}
}

func (repository *LogRepository) LogRequest(ctx context.Context, req model.RequestLog) error {
	if req.LoggedAt == "" {
		req.LoggedAt = repository.loggedAt()
	}
	if req.Version == "" {
		req.Version = repository.version
	}
	return repository.post(ctx, core.FluentdRequest, req)
}

func (repository *LogRepository) LogResponse(ctx context.Context, resp model.ResponseLog) error {
	if resp.LoggedAt == "" {
		resp.LoggedAt = repository.loggedAt()
	}
	if resp.Version == "" {
		resp.Version = repository.version
	}
	return repository.post(ctx, core.FluentdResponse, resp)
}

func (repository *LogRepository) LogLookup(ctx context.Context, lookup model.LookupLog) error {
	if lookup.LoggedAt == "" {
		lookup.LoggedAt = repository.loggedAt()
	}
	if lookup.Version == "" {
		lookup.Version = repository.version
	}
	return repository.post(ctx, core.FluentdLookup, lookup)
}

func (repository *LogRepository) loggedAt() string {
	return repository.now().UTC().Format(loggedAtLayout)
}

// fluent 以 msgpack 編碼 map，先經 json 轉成 map[string]any 以沿用 json tag
func (repository *LogRepository) post(ctx context.Context, tag core.FluentdSubTag, record any) error {
	b, err := json.Marshal(record)
	if err != nil {
		return err
	}
	var fluentdMessage map[string]any
	if err := json.Unmarshal(b, &fluentdMessage); err != nil {
		return err
	}
	return repository.fluentdClient.Post(ctx, string(tag), fluentdMessage)
}
