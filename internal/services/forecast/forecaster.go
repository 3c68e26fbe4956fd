package forecast

import (
	"context"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	domsvc "StockPulse/internal/domain/service"
	applogger "StockPulse/pkg/logger"
)

// Config holds the model policy knobs. Zero values fall back to the
// package defaults.
type Config struct {
	Lookback      int
	TrainFraction float64
}

// Engine runs the prediction pipeline: features, chronological split,
// least-squares fit, evaluation, and single-step inference. It holds no
// state between invocations and is safe for concurrent use; the input
// series is borrowed read-only and never retained.
type Engine struct {
	cfg Config
	l   *applogger.Logger
}

// New creates a forecast engine with the given policy.
func New(cfg Config) *Engine {
	if cfg.Lookback < 2 {
		cfg.Lookback = DefaultLookback
	}
	if cfg.TrainFraction <= 0 || cfg.TrainFraction >= 1 {
		cfg.TrainFraction = DefaultTrainFraction
	}
	return &Engine{cfg: cfg}
}

// SetLogger injects a structured logger.
func (e *Engine) SetLogger(l *applogger.Logger) { e.l = l }

// MinCandles is the shortest series the engine accepts under its
// configured lookback.
func (e *Engine) MinCandles() int { return e.cfg.Lookback + 2 }

// Forecast produces the next-period price prediction for symbol from its
// candle series. Failures of the pipeline stages come back as
// ErrInsufficientData, ErrModelFit or ErrComputation; callers surface
// those as "forecast unavailable", never as a partial result. The symbol
// is used for logging only.
func (e *Engine) Forecast(ctx context.Context, symbol string, candles []models.Candle) (*models.Forecast, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	if len(candles) < e.MinCandles() {
		return nil, fmt.Errorf("%w: have %d candles, need at least %d", ErrInsufficientData, len(candles), e.MinCandles())
	}

	for i := 1; i < len(candles); i++ {
		if !candles[i].Timestamp.After(candles[i-1].Timestamp) {
			return nil, fmt.Errorf("%w: series not strictly ascending at %d", ErrComputation, i)
		}
	}

	rows, err := BuildFeatures(candles, e.cfg.Lookback)
	if err != nil {
		return nil, err
	}
	ds, err := Split(rows, models.Closes(candles), e.cfg.Lookback, e.cfg.TrainFraction)
	if err != nil {
		return nil, err
	}
	model, err := Fit(ds.TrainX, ds.TrainY)
	if err != nil {
		return nil, err
	}

	evalPred := model.PredictBatch(ds.EvalX)
	mae := MAE(evalPred, ds.EvalY)
	rmse := RMSE(evalPred, ds.EvalY)
	r2 := R2(evalPred, ds.EvalY)
	predicted := model.Predict(ds.Latest)

	if !isFinite(predicted) || !isFinite(mae) || !isFinite(rmse) || !isFinite(r2) {
		return nil, fmt.Errorf("%w: non-finite prediction or metrics", ErrComputation)
	}

	if e.l != nil {
		e.l.Info("forecast computed",
			applogger.String("symbol", symbol),
			applogger.Int("candles", len(candles)),
			applogger.Int("train", len(ds.TrainY)),
			applogger.Int("eval", len(ds.EvalY)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}

	return &models.Forecast{
		Symbol:         symbol,
		GeneratedAt:    time.Now().UTC(),
		PredictedPrice: predicted,
		LastClose:      candles[len(candles)-1].Close,
		MAE:            mae,
		RMSE:           rmse,
		R2:             r2,
		TrainSize:      len(ds.TrainY),
		EvalSize:       len(ds.EvalY),
	}, nil
}

var _ domsvc.Forecaster = (*Engine)(nil)
