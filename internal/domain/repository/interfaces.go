package repository

import (
	"context"
	"time"

	"StockPulse/internal/domain/models"
)

// MarketData supplies historical candles and descriptive metadata for a
// ticker symbol from the external market-data provider.
type MarketData interface {
	GetHistory(ctx context.Context, symbol string, r Range) (*models.History, error)
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)
	GetProfile(ctx context.Context, symbol string) (*models.CompanyProfile, error)
}

// TickStream is a live feed of trade events for the tracked symbols.
type TickStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.Tick, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// Publisher forwards ticks to the streaming backend.
type Publisher interface {
	Publish(ctx context.Context, t *models.Tick) error
	PublishBatch(ctx context.Context, ticks []*models.Tick) error
	Close() error
}

// Storage archives ticks for later intraday queries.
type Storage interface {
	Init(ctx context.Context) error
	Store(ctx context.Context, t *models.Tick) error
	StoreBatch(ctx context.Context, ticks []*models.Tick) error
	Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.Tick, error)
	Health(ctx context.Context) error
	Close() error
}

// Metrics records operational counters and gauges.
type Metrics interface {
	RecordMessageSent(backend, symbol string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
	RecordForecast(symbol, outcome string)
}
