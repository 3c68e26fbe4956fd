package service

import (
	"context"

	"StockPulse/internal/domain/models"
)

// Forecaster turns a historical candle series into a next-period price
// prediction with evaluation metrics. Implementations are stateless across
// invocations and safe for concurrent use.
type Forecaster interface {
	Forecast(ctx context.Context, symbol string, candles []models.Candle) (*models.Forecast, error)
}
