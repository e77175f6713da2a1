package cron

import (
	"context"

	"arwikicats/config"

	"github.com/google/wire"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewCron, NewMaintenanceJob, NewSummaryJob)

type Cron struct {
	logger         *zap.Logger
	config         *config.Configuration
	server         *cron.Cron
	maintenanceJob *MaintenanceJob
	summaryJob     *SummaryJob
}

// NewCron .
func NewCron(
	logger *zap.Logger,
	config *config.Configuration,
	maintenanceJob *MaintenanceJob,
	summaryJob *SummaryJob,
) *Cron {
	server := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	return &Cron{
		logger:         logger,
		config:         config,
		server:         server,
		maintenanceJob: maintenanceJob,
		summaryJob:     summaryJob,
	}
}

func (c *Cron) Run() error {
	if !c.config.Cron.Enabled {
		c.logger.Info("cron disabled")
		return nil
	}
	if _, err := c.server.AddFunc(c.config.Cron.MaintenanceSpec, c.maintenanceJob.Run); err != nil {
		return err
	}
	if _, err := c.server.AddFunc(c.config.Cron.SummarySpec, c.summaryJob.Run); err != nil {
		return err
	}

	c.server.Start()
	return nil
}

func (c *Cron) Stop(ctx context.Context) error {
	// 等待執行中的 job 結束，或 ctx 到期
	select {
	case <-c.server.Stop().Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
