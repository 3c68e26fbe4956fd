package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	domservice "StockPulse/internal/domain/service"
	"StockPulse/internal/services/forecast"
	"StockPulse/pkg/cache"
	xlogger "StockPulse/pkg/logger"
	"StockPulse/pkg/util"
)

// Reasons reported when a forecast cannot be produced. These are part of
// the API response contract, not internal error text.
const (
	ReasonInsufficientData = "insufficient_data"
	ReasonModelFit         = "model_fit_failed"
	ReasonComputation      = "computation_failed"
)

// ForecastUseCase fetches history, runs the prediction pipeline and maps
// recoverable pipeline failures into an explicit "unavailable" response
// instead of an HTTP error.
type ForecastUseCase struct {
	analysis   *AnalysisUseCase
	forecaster domservice.Forecaster
	cache      cache.Service
	metrics    domrepo.Metrics
	logger     *xlogger.Logger
	ttl        time.Duration
}

func NewForecastUseCase(
	analysis *AnalysisUseCase,
	forecaster domservice.Forecaster,
	c cache.Service,
	metrics domrepo.Metrics,
	logger *xlogger.Logger,
	ttl time.Duration,
) *ForecastUseCase {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &ForecastUseCase{
		analysis:   analysis,
		forecaster: forecaster,
		cache:      c,
		metrics:    metrics,
		logger:     logger,
		ttl:        ttl,
	}
}

// GetForecast predicts the next-period close for a symbol from its candle
// history over the given range. Short, degenerate or non-finite series
// produce Available=false with a reason rather than an error; only
// upstream or infrastructure failures return err != nil.
func (uc *ForecastUseCase) GetForecast(ctx context.Context, symbol, rng string) (*models.ForecastResponse, error) {
	symbol = util.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	r := domrepo.NormalizeRange(rng)

	key := cache.ForecastKey(symbol, string(r))
	var cached models.ForecastResponse
	if err := uc.cache.Get(ctx, key, &cached); err == nil && (cached.Available || cached.Reason != "") {
		return &cached, nil
	}

	h, err := uc.analysis.GetHistory(ctx, symbol, string(r))
	if err != nil {
		return nil, err
	}

	start := time.Now()
	fc, err := uc.forecaster.Forecast(ctx, symbol, h.Candles)
	uc.metrics.RecordLatency("forecast", time.Since(start).Seconds())

	if err != nil {
		if forecast.IsUnavailable(err) {
			resp := &models.ForecastResponse{Available: false, Reason: reasonFor(err)}
			uc.metrics.RecordForecast(symbol, resp.Reason)
			uc.logger.Info("forecast unavailable",
				xlogger.String("symbol", symbol),
				xlogger.String("reason", resp.Reason),
				xlogger.Int("candles", len(h.Candles)))
			if cerr := uc.cache.Set(ctx, key, resp, uc.ttl); cerr != nil {
				uc.logger.Warn("forecast cache set failed", xlogger.Error(cerr))
			}
			return resp, nil
		}
		uc.metrics.RecordError("forecast")
		return nil, err
	}

	resp := &models.ForecastResponse{Available: true, Forecast: fc}
	uc.metrics.RecordForecast(symbol, "ok")
	uc.logger.Debug("forecast computed",
		xlogger.String("symbol", symbol),
		xlogger.Float64("predicted", fc.PredictedPrice),
		xlogger.Float64("rmse", fc.RMSE))
	if cerr := uc.cache.Set(ctx, key, resp, uc.ttl); cerr != nil {
		uc.logger.Warn("forecast cache set failed", xlogger.Error(cerr))
	}
	return resp, nil
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, forecast.ErrInsufficientData):
		return ReasonInsufficientData
	case errors.Is(err, forecast.ErrModelFit):
		return ReasonModelFit
	default:
		return ReasonComputation
	}
}
