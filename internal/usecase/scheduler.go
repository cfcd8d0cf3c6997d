package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	domrepo "AstroTrade/internal/domain/repository"
	applogger "AstroTrade/pkg/logger"
)

// SchedulerConfig holds six-field cron specs (seconds first). An empty spec
// disables that job.
type SchedulerConfig struct {
	ReloadSpec string
	AlertSpec  string
	JobTimeout time.Duration
}

// Scheduler runs the periodic reload and the daily moon alert job.
type Scheduler struct {
	cron      *cron.Cron
	reloader  *Reloader
	analyzer  *Analyzer
	publisher domrepo.AlertPublisher
	metrics   domrepo.Metrics
	cfg       SchedulerConfig
	now       func() time.Time
	l         *applogger.Logger
}

func NewScheduler(cfg SchedulerConfig, reloader *Reloader, analyzer *Analyzer, publisher domrepo.AlertPublisher, m domrepo.Metrics) *Scheduler {
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 2 * time.Minute
	}
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds(), cron.WithLocation(analyzer.Location())),
		reloader:  reloader,
		analyzer:  analyzer,
		publisher: publisher,
		metrics:   m,
		cfg:       cfg,
		now:       time.Now,
	}
}

// SetLogger injects a structured logger.
func (s *Scheduler) SetLogger(l *applogger.Logger) { s.l = l }

// Start registers the jobs and starts the cron runner.
func (s *Scheduler) Start() error {
	if s.cfg.ReloadSpec != "" {
		if _, err := s.cron.AddFunc(s.cfg.ReloadSpec, s.runReload); err != nil {
			return fmt.Errorf("schedule reload %q: %w", s.cfg.ReloadSpec, err)
		}
	}
	if s.cfg.AlertSpec != "" {
		if _, err := s.cron.AddFunc(s.cfg.AlertSpec, s.runAlerts); err != nil {
			return fmt.Errorf("schedule alerts %q: %w", s.cfg.AlertSpec, err)
		}
	}
	s.cron.Start()
	s.l.Info("scheduler started",
		applogger.String("reload_spec", s.cfg.ReloadSpec),
		applogger.String("alert_spec", s.cfg.AlertSpec))
	return nil
}

// Stop stops scheduling and waits for running jobs.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.l.Warn("scheduler stop timed out")
	}
}

func (s *Scheduler) runReload() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.JobTimeout)
	defer cancel()
	_, _ = s.reloader.Reload(ctx)
}

func (s *Scheduler) runAlerts() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.JobTimeout)
	defer cancel()
	if _, err := s.PublishDay(ctx, s.now()); err != nil {
		s.l.Error("moon alert job failed", applogger.Error(err))
	}
}

// PublishDay scans day for moon opportunities across all stocks and
// publishes them. It returns the number of opportunities sent.
func (s *Scheduler) PublishDay(ctx context.Context, day time.Time) (int, error) {
	scan, err := s.analyzer.MoonDay(ctx, day, "")
	if err != nil {
		return 0, err
	}
	n := scan.Opportunities()
	if err := s.publisher.PublishMoonScan(ctx, scan); err != nil {
		s.metrics.RecordError("alerts")
		return 0, err
	}
	s.metrics.RecordAlerts(n)
	s.l.Info("moon alerts sent", applogger.String("date", scan.Date), applogger.Int("opportunities", n))
	return n, nil
}
