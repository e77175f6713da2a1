package service

import (
	"context"
	"errors"
	"testing"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthService_Readiness(t *testing.T) {
	down := errors.New("db down")
	var pingErr error
	s := newHealthService(pingFunc(func(ctx context.Context) error { return pingErr }))

	if !s.IsLive() {
		t.Error("Should be live from the start")
	}
	if err := s.CheckReady(context.Background()); !errors.Is(err, ErrNotReady) {
		t.Errorf("Expected ErrNotReady before SetReady, got %v", err)
	}

	s.SetReady(true)
	if err := s.CheckReady(context.Background()); err != nil {
		t.Errorf("Expected ready, got %v", err)
	}

	pingErr = down
	if err := s.CheckReady(context.Background()); !errors.Is(err, down) {
		t.Errorf("Expected storage error, got %v", err)
	}
}
