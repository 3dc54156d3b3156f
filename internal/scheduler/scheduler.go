package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"gestock/internal/config"
	"gestock/internal/service/syncsvc"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron    *cron.Cron
	syncSvc *syncsvc.Service
	cfg     config.SyncConfig
	logger  *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.SyncConfig, syncSvc *syncsvc.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:    cron.New(),
		syncSvc: syncSvc,
		cfg:     cfg,
		logger:  logger,
	}
}

// Start registers the periodic cloud sync and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runSync)
	if err != nil {
		s.logger.Error("failed to schedule cloud sync", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runSync() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result := s.syncSvc.SyncNow(ctx)
	if result.Success {
		s.logger.Info("scheduled sync finished", zap.String("message", result.Message))
	} else {
		s.logger.Warn("scheduled sync skipped", zap.String("message", result.Message))
	}
}
