package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"AstroTrade/internal/domain/models"
	domrepo "AstroTrade/internal/domain/repository"
	"AstroTrade/internal/services/astro"
	applogger "AstroTrade/pkg/logger"
)

// Reloader loads fresh reference data and publishes it as a new snapshot.
type Reloader struct {
	source   domrepo.EphemerisSource
	store    domrepo.SnapshotStore
	analyzer *Analyzer
	metrics  domrepo.Metrics
	timeout  time.Duration
	mu       sync.Mutex
	l        *applogger.Logger
}

func NewReloader(source domrepo.EphemerisSource, store domrepo.SnapshotStore, analyzer *Analyzer, m domrepo.Metrics) *Reloader {
	return &Reloader{source: source, store: store, analyzer: analyzer, metrics: m, timeout: 2 * time.Minute}
}

// SetLogger injects a structured logger.
func (r *Reloader) SetLogger(l *applogger.Logger) { r.l = l }

// SetTimeout bounds one load.
func (r *Reloader) SetTimeout(d time.Duration) {
	if d > 0 {
		r.timeout = d
	}
}

// Reload replaces the published snapshot. On failure the previous snapshot
// stays in place. Concurrent calls run one at a time.
func (r *Reloader) Reload(ctx context.Context) (*models.ReloadResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	next, err := r.source.Load(ctx)
	if err != nil {
		r.metrics.RecordReload(false, 0, 0)
		r.metrics.RecordError("reload")
		r.l.Error("reload failed", applogger.Error(err), applogger.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("reload: %w", err)
	}

	snap := r.store.Swap(next)
	r.analyzer.Purge()
	r.metrics.RecordReload(true, len(snap.Natal), len(snap.Transits))
	r.metrics.RecordLatency("reload", time.Since(start).Seconds())

	res := &models.ReloadResult{
		Version:  snap.Version,
		LoadedAt: snap.LoadedAt,
		Natal:    len(snap.Natal),
		Transits: len(snap.Transits),
		Moon:     len(snap.Moon),
		Stocks:   len(astro.StockNames(snap.Natal)),
	}
	r.l.Info("reference data reloaded",
		applogger.Int64("version", int64(res.Version)),
		applogger.Int("natal", res.Natal),
		applogger.Int("transits", res.Transits),
		applogger.Int("moon", res.Moon),
		applogger.Int("stocks", res.Stocks),
		applogger.Duration("elapsed", time.Since(start)))
	return res, nil
}
