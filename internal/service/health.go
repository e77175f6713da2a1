package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"arwikicats/internal/database/client"
)

var ErrNotReady = errors.New("service not ready")

// Pinger readiness 需要確認的相依資源
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthService struct {
	live    atomic.Bool
	ready   atomic.Bool
	storage Pinger
}

func NewHealthService(sqliteClient *client.SqliteClient) *HealthService {
	return newHealthService(sqliteClient)
}

func newHealthService(storage Pinger) *HealthService {
	s := &HealthService{storage: storage}
	s.live.Store(true)
	s.ready.Store(false) // 啟動完成後再打開
	return s
}

func (s *HealthService) SetReady(v bool) {
	s.ready.Store(v)
}

func (s *HealthService) IsLive() bool {
	return s.live.Load()
}

func (s *HealthService) IsReady() bool {
	return s.ready.Load()
}

// CheckReady 除了啟動旗標外，也確認資料庫可連線
func (s *HealthService) CheckReady(ctx context.Context) error {
	if !s.IsReady() {
		return ErrNotReady
	}
	if s.storage == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.storage.Ping(ctx)
}
