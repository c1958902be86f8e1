//go:build wireinject
// +build wireinject

package di

import (
	"FinCompare/internal/services/presentation"
	"FinCompare/pkg/config"
	"FinCompare/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideCache,
		ProvideSnapshotStore,
		ProvideFMPClient,
		ProvideRatioProvider,
		ProvideEventPublisher,
		ProvideKafkaConsumer,
		ProvideRateLimiter,

		// Use cases
		ProvideComparisonService,
		ProvideSnapshotIngestHandler,
		presentation.NewDescriber,

		// Transport
		ProvideHTTPHandler,
		ProvideHTTPServer,

		ProvideApp,
	)
	return &server.App{}, nil
}
