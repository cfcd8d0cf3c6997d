package main

import (
	"flag"
	"log"
	"os"

	"AstroTrade/internal/di"
	"AstroTrade/pkg/config"
	applogger "AstroTrade/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	l, err := di.ProvideLogger(cfg)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	l.Info("starting astrotrade",
		applogger.String("timezone", cfg.Timezone),
		applogger.String("ephemeris_db", cfg.ClickHouse.Database),
		applogger.Bool("redis", cfg.Redis.Enabled),
		applogger.Bool("kafka", cfg.Kafka.Enabled),
		applogger.Bool("scheduler", cfg.Scheduler.Enabled),
	)

	app, err := di.InitializeApp(cfg)
	if err != nil {
		l.Error("app initialization failed", applogger.Error(err))
		os.Exit(1)
	}

	// Blocks until SIGINT/SIGTERM.
	if err := app.Run(); err != nil {
		l.Error("app stopped", applogger.Error(err))
		os.Exit(1)
	}
}
