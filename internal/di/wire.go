//go:build wireinject
// +build wireinject

package di

import (
	"StockPulse/pkg/config"
	"StockPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient services
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		// Market data and prediction
		ProvideMarketData,
		ProvideForecaster,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Repositories
		ProvideTickStorage,
		ProvideTickPublisher,
		ProvideTickStream,

		// Use cases
		ProvideAnalysisUseCase,
		ProvideForecastUseCase,
		ProvideTickProcessor,
		ProvideTickCollector,
		ProvideKafkaTicksHandler,
		ProvideWarmup,

		// HTTP handler and application server
		ProvideStocksHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
