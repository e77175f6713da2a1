package cron

import (
	"context"
	"time"

	"arwikicats/internal/database/client"

	"go.uber.org/zap"
)

type storageMaintainer interface {
	Checkpoint(ctx context.Context) error
	Optimize(ctx context.Context) error
}

// MaintenanceJob 定期把 WAL 併回主檔並更新查詢統計
type MaintenanceJob struct {
	logger  *zap.Logger
	storage storageMaintainer
	timeout time.Duration
}

func NewMaintenanceJob(logger *zap.Logger, sqliteClient *client.SqliteClient) *MaintenanceJob {
	return &MaintenanceJob{logger: logger, storage: sqliteClient, timeout: 30 * time.Second}
}

func (job *MaintenanceJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), job.timeout)
	defer cancel()

	start := time.Now()
	if err := job.storage.Checkpoint(ctx); err != nil {
		// 其他連線持有讀鎖時 checkpoint 可能失敗，下一輪再試
		job.logger.Warn("sqlite wal checkpoint failed", zap.Error(err))
	}
	if err := job.storage.Optimize(ctx); err != nil {
		job.logger.Warn("sqlite optimize failed", zap.Error(err))
		return
	}
	job.logger.Info("sqlite maintenance done", zap.Duration("duration", time.Since(start)))
}
