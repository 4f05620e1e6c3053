package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/retrocalc/internal/config"
)

// SessionSweeper forgets idle UI sessions.
type SessionSweeper interface {
	SweepSessions(ttl time.Duration) int
}

// HistoryExporter copies new history records somewhere else.
type HistoryExporter interface {
	Export(ctx context.Context) (int, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	sweepers []SessionSweeper
	exporter HistoryExporter
	cfg      config.SchedulerConfig
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. exporter may be nil.
func NewScheduler(cfg config.SchedulerConfig, sweepers []SessionSweeper, exporter HistoryExporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard cron (5 fields) plus @every descriptors.
	c := cron.New()

	return &Scheduler{
		cron:     c,
		sweepers: sweepers,
		exporter: exporter,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler")

	if _, err := s.cron.AddFunc(s.cfg.SessionSweepSchedule, s.sweepSessions); err != nil {
		return err
	}

	if s.exporter != nil {
		if _, err := s.cron.AddFunc(s.cfg.ExportSchedule, s.exportHistory); err != nil {
			return err
		}
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sweepSessions() {
	removed := 0
	for _, sw := range s.sweepers {
		removed += sw.SweepSessions(s.cfg.SessionTTL)
	}
	if removed > 0 {
		s.logger.Info("idle sessions removed", zap.Int("count", removed))
	}
}

func (s *Scheduler) exportHistory() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	n, err := s.exporter.Export(ctx)
	if err != nil {
		s.logger.Error("failed to export history", zap.Error(err))
		return
	}
	s.logger.Debug("history export finished", zap.Int("rows", n))
}
