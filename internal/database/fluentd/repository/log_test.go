package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"arwikicats/config"
	"arwikicats/internal/core"
	"arwikicats/internal/database/fluentd/model"
)

type recordedPost struct {
	tag     string
	message map[string]any
}

type fakePoster struct {
	posts []recordedPost
	err   error
}

func (f *fakePoster) Post(ctx context.Context, tag string, message any) error {
	if f.err != nil {
		return f.err
	}
	f.posts = append(f.posts, recordedPost{tag: tag, message: message.(map[string]any)})
	return nil
}

func (f *fakePoster) Close() error { return nil }

func TestLogLookup_FillsDefaultsAndUsesLookupTag(t *testing.T) {
	poster := &fakePoster{}
	repo := NewLogRepository(&config.Configuration{App: config.App{Version: "2.1.0"}}, poster)
	repo.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	err := repo.LogLookup(context.Background(), model.LookupLog{
		Table:          string(core.SqliteTableLogs),
		Endpoint:       core.EndpointLookup,
		RequestData:    "Category:Yemeni poets",
		ResponseStatus: core.LookupStatusOK,
		ResponseCount:  1,
	})
	if err != nil {
		t.Fatalf("LogLookup failed: %v", err)
	}
	if len(poster.posts) != 1 {
		t.Fatalf("Expected 1 post, got %d", len(poster.posts))
	}
	post := poster.posts[0]
	if post.tag != string(core.FluentdLookup) {
		t.Errorf("Expected tag %q, got %q", core.FluentdLookup, post.tag)
	}
	if post.message["version"] != "2.1.0" {
		t.Errorf("Expected version 2.1.0, got %v", post.message["version"])
	}
	if post.message["logged_at"] != "2025-01-02 03:04:05 UTC" {
		t.Errorf("Unexpected logged_at %v", post.message["logged_at"])
	}
	if _, ok := post.message["log_id"]; ok {
		t.Error("log_id should be omitted when zero")
	}
}

func TestLogRequest_DefaultVersion(t *testing.T) {
	poster := &fakePoster{}
	repo := NewLogRepository(&config.Configuration{}, poster)

	if err := repo.LogRequest(context.Background(), model.RequestLog{RequestID: "r1", Path: "/api/lookup"}); err != nil {
		t.Fatalf("LogRequest failed: %v", err)
	}
	if poster.posts[0].tag != string(core.FluentdRequest) || poster.posts[0].message["version"] != "1.0.0" {
		t.Errorf("Unexpected post %+v", poster.posts[0])
	}
}

func TestLogResponse_PropagatesPostError(t *testing.T) {
	boom := errors.New("fluentd down")
	repo := NewLogRepository(&config.Configuration{}, &fakePoster{err: boom})

	if err := repo.LogResponse(context.Background(), model.ResponseLog{RequestID: "r1"}); !errors.Is(err, boom) {
		t.Errorf("Expected post error, got %v", err)
	}
}
