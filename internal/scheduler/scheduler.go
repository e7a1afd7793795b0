// Package scheduler runs the background maintenance jobs: the daily lead
// export and the periodic sweeps of idle sessions and expired identities.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/chatterloop/widget/internal/config"
	"github.com/chatterloop/widget/internal/service/leadexport"
	"github.com/chatterloop/widget/internal/service/widget"
	"github.com/chatterloop/widget/internal/session"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	exportSvc *leadexport.Service
	widgetSvc widget.Service
	identity  session.Sweeper
	cfg       config.Config
	logger    *zap.Logger

	sweepStop chan struct{}
}

// NewScheduler creates a new scheduler instance. The identity sweeper may be
// nil when the configured store cannot sweep.
func NewScheduler(cfg config.Config, exportSvc *leadexport.Service, widgetSvc widget.Service, identity session.Sweeper, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour, dom, month, dow).
	c := cron.New()

	return &Scheduler{
		cron:      c,
		exportSvc: exportSvc,
		widgetSvc: widgetSvc,
		identity:  identity,
		cfg:       cfg,
		logger:    logger,
		sweepStop: make(chan struct{}),
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler",
		zap.String("lead_export_cron", s.cfg.Scheduler.LeadExportCron),
		zap.Duration("sweep_interval", s.cfg.Scheduler.SweepInterval))

	_, err := s.cron.AddFunc(s.cfg.Scheduler.LeadExportCron, s.runLeadExport)
	if err != nil {
		s.logger.Error("failed to schedule lead export", zap.Error(err))
	}

	go s.sweepLoop()

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	close(s.sweepStop)
	s.cron.Stop()
}

func (s *Scheduler) runLeadExport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	count, err := s.exportSvc.ExportDaily(ctx, time.Now())
	if err != nil {
		s.logger.Error("daily lead export failed", zap.Error(err))
		return
	}
	s.logger.Info("daily lead export finished", zap.Int("exported", count))
}

// sweepLoop periodically drops idle widget sessions and expired identities.
func (s *Scheduler) sweepLoop() {
	interval := s.cfg.Scheduler.SweepInterval
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.sweepStop:
			return
		case <-ticker.C:
			s.runSweep()
		}
	}
}

func (s *Scheduler) runSweep() {
	removed := s.widgetSvc.SweepIdle(s.cfg.Sessions.IdleTimeout)
	if removed > 0 {
		s.logger.Info("idle sessions dropped", zap.Int("count", removed))
	}

	if s.identity == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	purged, err := s.identity.SweepExpired(ctx, time.Now())
	if err != nil {
		s.logger.Warn("identity sweep failed", zap.Error(err))
		return
	}
	if purged > 0 {
		s.logger.Info("expired identities purged", zap.Int("count", purged))
	}
}
