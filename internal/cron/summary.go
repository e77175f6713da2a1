package cron

import (
	"context"
	"time"

	"arwikicats/internal/core"
	"arwikicats/internal/service"

	"go.uber.org/zap"
)

type dailySummarizer interface {
	SummaryForDay(ctx context.Context, table core.SqliteTable, day string) (service.DailySummaryRow, error)
}

// SummaryJob 每天把前一日（UTC）的統計寫進 log
type SummaryJob struct {
	logger  *zap.Logger
	summary dailySummarizer
	now     func() time.Time
	timeout time.Duration
}

func NewSummaryJob(logger *zap.Logger, logQueryService *service.LogQueryService) *SummaryJob {
	return &SummaryJob{logger: logger, summary: logQueryService, now: time.Now, timeout: time.Minute}
}

func (job *SummaryJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), job.timeout)
	defer cancel()

	day := job.now().UTC().AddDate(0, 0, -1).Format(core.DayLayout)
	for _, table := range core.SqliteTables {
		row, err := job.summary.SummaryForDay(ctx, table, day)
		if err != nil {
			job.logger.Warn("daily summary failed", zap.String("table", string(table)), zap.Error(err))
			continue
		}
		job.logger.Info("daily summary",
			zap.String("table", string(table)),
			zap.String("day", row.Day),
			zap.Int64("total", row.Total),
			zap.Int64("ok", row.OK),
			zap.Int64("no_label", row.NoLabel),
			zap.Int64("error", row.Error),
			zap.Int64("title_count", row.TitleCount),
		)
	}
}
