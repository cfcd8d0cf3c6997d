//go:build wireinject
// +build wireinject

package di

import (
	"AstroTrade/pkg/config"
	"AstroTrade/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideAlertPublisher,
		ProvideResponseCache,
		ProvideRateLimiter,

		// Repositories
		ProvideEphemerisSource,
		ProvideSnapshotStore,

		// Use cases
		ProvideAnalyzer,
		ProvideReloader,
		ProvideScheduler,

		// HTTP
		ProvideAstroHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
