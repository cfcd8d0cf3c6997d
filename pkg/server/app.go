package server

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	domrepo "AstroTrade/internal/domain/repository"
	"AstroTrade/internal/usecase"
	pkgch "AstroTrade/pkg/clickhouse"
	"AstroTrade/pkg/config"
	xhttp "AstroTrade/pkg/http"
	applogger "AstroTrade/pkg/logger"
)

// Sweeper drops idle entries from an in-process table.
type Sweeper interface {
	Sweep()
}

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	l          *applogger.Logger
	chClient   *pkgch.Client
	reloader   *usecase.Reloader
	scheduler  *usecase.Scheduler
	publisher  domrepo.AlertPublisher
	closers    []io.Closer
	sweepers   []Sweeper
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	chClient *pkgch.Client,
	reloader *usecase.Reloader,
	scheduler *usecase.Scheduler,
	publisher domrepo.AlertPublisher,
	handler xhttp.Handler,
) *App {
	a := &App{
		cfg:       cfg,
		l:         l,
		chClient:  chClient,
		reloader:  reloader,
		scheduler: scheduler,
		publisher: publisher,
	}
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowRequest(cfg.Server.SlowRequest),
		xhttp.WithLogger(l),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetricsPath(cfg.Metrics.Path))
	} else {
		opts = append(opts, xhttp.WithMetricsPath(""))
	}
	a.httpServer = xhttp.NewServer(handler, opts...)
	return a
}

// ServeHTTP serves one request through the configured HTTP stack.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.httpServer.Echo().ServeHTTP(w, r)
}

// AddCloser registers a resource closed on shutdown.
func (a *App) AddCloser(c io.Closer) { a.closers = append(a.closers, c) }

// AddSweeper registers a table swept once a minute while running.
func (a *App) AddSweeper(s Sweeper) { a.sweepers = append(a.sweepers, s) }

// Run loads the reference data, starts the background jobs and the HTTP
// server, and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A failed first load leaves the service up and answering 503 until a
	// scheduled or admin reload succeeds.
	if res, err := a.reloader.Reload(ctx); err != nil {
		a.l.Error("initial reload failed", applogger.Error(err))
	} else {
		a.l.Info("reference data loaded",
			applogger.Int64("version", int64(res.Version)),
			applogger.Int("stocks", res.Stocks))
	}

	if a.cfg.Scheduler.Enabled {
		if err := a.scheduler.Start(); err != nil {
			a.l.Error("scheduler start error", applogger.Error(err))
			return err
		}
	}

	if len(a.sweepers) > 0 {
		go a.sweep(ctx, time.Minute)
	}

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

func (a *App) sweep(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			for _, s := range a.sweepers {
				s.Sweep()
			}
		}
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}
	if a.cfg.Scheduler.Enabled {
		a.scheduler.Stop(shutdownCtx)
	}

	if err := a.publisher.Close(); err != nil {
		a.l.Warn("alert publisher close error", applogger.Error(err))
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.l.Warn("close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.l.Info("shutdown complete")
	return nil
}
