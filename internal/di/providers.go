package di

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"AstroTrade/internal/domain/repository"
	"AstroTrade/internal/handler/api"
	internalrepo "AstroTrade/internal/repository"
	icache "AstroTrade/internal/service/cache"
	"AstroTrade/internal/service/ratelimit"
	"AstroTrade/internal/services/astro"
	"AstroTrade/internal/services/rating"
	"AstroTrade/internal/usecase"
	pkgch "AstroTrade/pkg/clickhouse"
	"AstroTrade/pkg/config"
	pkgkafka "AstroTrade/pkg/kafka"
	applogger "AstroTrade/pkg/logger"
	"AstroTrade/pkg/metrics"
	"AstroTrade/pkg/server"
)

// ProvideLogger creates the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New(prometheus.DefaultRegisterer)
}

func ephemerisTables(cfg *config.Config) internalrepo.EphemerisTables {
	return internalrepo.EphemerisTables{
		Database:   cfg.ClickHouse.Database,
		Natal:      cfg.ClickHouse.NatalTable,
		Transit:    cfg.ClickHouse.TransitTable,
		Moon:       cfg.ClickHouse.MoonTable,
		MoonColumn: cfg.Astro.MoonColumn,
	}
}

// ProvideClickHouseClient creates a ClickHouse client and ensures the
// reference tables exist.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := pkgch.NewClient(ctx,
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	if err := client.InitSchema(ctx, ephemerisTables(cfg).Schema()); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideEphemerisSource reads the reference tables from ClickHouse behind
// a circuit breaker.
func ProvideEphemerisSource(ch *pkgch.Client, cfg *config.Config, l *applogger.Logger) repository.EphemerisSource {
	src := internalrepo.NewCHEphemerisSource(ch, ephemerisTables(cfg), cfg.Location())
	src.SetLogger(l)
	b := internalrepo.NewBreakerSource(src, "clickhouse", cfg.ClickHouse.BreakerFailures, cfg.ClickHouse.BreakerCooldown)
	b.SetLogger(l)
	return b
}

func ProvideSnapshotStore() repository.SnapshotStore {
	return internalrepo.NewSnapshotStore()
}

// ProvideAnalyzer builds the query engine from the astro section.
func ProvideAnalyzer(store repository.SnapshotStore, m repository.Metrics, cfg *config.Config, l *applogger.Logger) *usecase.Analyzer {
	cat := astro.DefaultCatalog()
	cat.MoonColumn = cfg.Astro.MoonColumn
	a := usecase.NewAnalyzer(store,
		usecase.WithCatalog(cat),
		usecase.WithPlanetSets(rating.NewPlanetSets(cfg.Astro.Benefic, cfg.Astro.Malefic)),
		usecase.WithLocation(cfg.Location()),
		usecase.WithMetrics(m),
		usecase.WithAspectCapacity(cfg.Cache.AspectCapacity),
	)
	a.SetLogger(l)
	return a
}

func ProvideReloader(src repository.EphemerisSource, store repository.SnapshotStore, a *usecase.Analyzer, m repository.Metrics, cfg *config.Config, l *applogger.Logger) *usecase.Reloader {
	r := usecase.NewReloader(src, store, a, m)
	r.SetTimeout(cfg.Scheduler.JobTimeout)
	r.SetLogger(l)
	return r
}

// ProvideAlertPublisher publishes moon alerts to Kafka when enabled.
func ProvideAlertPublisher(cfg *config.Config, l *applogger.Logger) (repository.AlertPublisher, error) {
	if !cfg.Kafka.Enabled {
		l.Info("kafka alerts disabled")
		return internalrepo.NopAlertPublisher{}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithBatching(cfg.Kafka.Producer.BatchSize, cfg.Kafka.Producer.BatchBytes, cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	pub := internalrepo.NewKafkaAlertPublisher(producer, cfg.Kafka.Topic)
	pub.SetLogger(l)
	l.Info("kafka alerts enabled", applogger.Strings("brokers", cfg.Kafka.Brokers), applogger.String("topic", cfg.Kafka.Topic))
	return pub, nil
}

func ProvideScheduler(cfg *config.Config, r *usecase.Reloader, a *usecase.Analyzer, pub repository.AlertPublisher, m repository.Metrics, l *applogger.Logger) *usecase.Scheduler {
	s := usecase.NewScheduler(usecase.SchedulerConfig{
		ReloadSpec: cfg.Scheduler.ReloadSpec,
		AlertSpec:  cfg.Scheduler.AlertSpec,
		JobTimeout: cfg.Scheduler.JobTimeout,
	}, r, a, pub, m)
	s.SetLogger(l)
	return s
}

// ProvideResponseCache uses Redis when enabled and an in-process TTL map
// otherwise.
func ProvideResponseCache(cfg *config.Config, l *applogger.Logger) (icache.BytesCache, error) {
	if !cfg.Redis.Enabled {
		return icache.NewTTLCache(), nil
	}
	rc := icache.NewRedisCache(icache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Prefix:   cfg.Redis.Prefix,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	l.Info("redis response cache enabled", applogger.String("addr", cfg.Redis.Addr))
	return rc, nil
}

func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
}

// ProvideAstroHandler creates the HTTP handler.
func ProvideAstroHandler(a *usecase.Analyzer, r *usecase.Reloader, rl *ratelimit.Limiter, c icache.BytesCache, cfg *config.Config, l *applogger.Logger) *api.AstroEchoHandler {
	h := api.NewAstroEchoHandler(a, r, rl)
	h.SetCache(c, cfg.Cache.ResponseTTL)
	h.SetAdminToken(cfg.Server.AdminToken)
	h.SetLogger(l)
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	ch *pkgch.Client,
	r *usecase.Reloader,
	s *usecase.Scheduler,
	pub repository.AlertPublisher,
	h *api.AstroEchoHandler,
	c icache.BytesCache,
	rl *ratelimit.Limiter,
) *server.App {
	app := server.New(cfg, l, ch, r, s, pub, h)
	app.AddSweeper(rl)
	switch v := c.(type) {
	case *icache.RedisCache:
		app.AddCloser(v)
	case *icache.TTLCache:
		app.AddSweeper(v)
	}
	return app
}
