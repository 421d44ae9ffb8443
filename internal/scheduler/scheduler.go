package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/parseldesk/backoffice/internal/config"
	"github.com/parseldesk/backoffice/internal/service/digest"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	digestSvc *digest.Service
	cfg       config.DigestConfig
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance running in the configured
// timezone; an unknown timezone falls back to local time.
func NewScheduler(cfg config.DigestConfig, digestSvc *digest.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to local", zap.String("timezone", cfg.Timezone))
		loc = time.Local
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		digestSvc: digestSvc,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers and starts the scheduled jobs.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runDigest); err != nil {
		s.logger.Error("failed to schedule daily digest", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runDigest() {
	s.logger.Info("running daily collection digest")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.digestSvc.Run(ctx); err != nil {
		s.logger.Error("daily digest failed", zap.Error(err))
	}
}
