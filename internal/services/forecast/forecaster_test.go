package forecast

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
)

func dailyCandles(closes []float64, volume float64) []models.Candle {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	candles := make([]models.Candle, len(closes))
	for i, c := range closes {
		candles[i] = models.Candle{
			Timestamp: base.AddDate(0, 0, i),
			Open:      c,
			High:      c,
			Low:       c,
			Close:     c,
			Volume:    volume,
		}
	}
	return candles
}

func TestForecastLinearTrend(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	candles := dailyCandles(closes, 1_000_000)

	engine := New(Config{})
	fc, err := engine.Forecast(context.Background(), "AAPL", candles)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}

	want := closes[len(closes)-1] + 1.0
	if math.Abs(fc.PredictedPrice-want) > 0.05 {
		t.Errorf("predicted %.4f, want ~%.4f", fc.PredictedPrice, want)
	}
	if fc.MAE > 0.01 {
		t.Errorf("MAE = %.6f, want near 0 on a perfectly linear series", fc.MAE)
	}
	if fc.RMSE > 0.01 {
		t.Errorf("RMSE = %.6f, want near 0 on a perfectly linear series", fc.RMSE)
	}
	if fc.LastClose != closes[len(closes)-1] {
		t.Errorf("LastClose = %v, want %v", fc.LastClose, closes[len(closes)-1])
	}
}

func TestForecastTooFewCandles(t *testing.T) {
	candles := dailyCandles([]float64{100, 101, 102}, 1000)

	engine := New(Config{})
	_, err := engine.Forecast(context.Background(), "AAPL", candles)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
	if !IsUnavailable(err) {
		t.Error("insufficient data should map to an unavailable forecast")
	}
}

func TestForecastAlternatingSeries(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		if i%2 == 0 {
			closes[i] = 100
		} else {
			closes[i] = 102
		}
	}
	candles := dailyCandles(closes, 5000)

	engine := New(Config{})
	fc, err := engine.Forecast(context.Background(), "MSFT", candles)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}

	// closes[24] == 100, so the next value in the pattern is 102. The
	// alternation is an exact linear function of the last lag, so the fit
	// recovers it almost perfectly.
	if math.Abs(fc.PredictedPrice-102) > 0.1 {
		t.Errorf("predicted %.4f, want ~102", fc.PredictedPrice)
	}
	if fc.MAE < 0 || fc.RMSE < 0 {
		t.Errorf("negative error metrics: MAE=%v RMSE=%v", fc.MAE, fc.RMSE)
	}
	if fc.R2 > 1 {
		t.Errorf("R2 = %v, want <= 1", fc.R2)
	}
}

func TestForecastDeterministic(t *testing.T) {
	closes := []float64{
		100.2, 101.7, 99.8, 102.3, 103.1, 101.9, 104.2, 105.0, 103.8, 106.1,
		107.3, 105.9, 108.4, 109.2, 107.8, 110.5, 111.1, 109.6, 112.3, 113.0,
	}
	candles := dailyCandles(closes, 7500)

	engine := New(Config{})
	first, err := engine.Forecast(context.Background(), "GOOG", candles)
	if err != nil {
		t.Fatalf("first Forecast failed: %v", err)
	}
	second, err := engine.Forecast(context.Background(), "GOOG", candles)
	if err != nil {
		t.Fatalf("second Forecast failed: %v", err)
	}

	if first.PredictedPrice != second.PredictedPrice {
		t.Errorf("prediction not deterministic: %v vs %v", first.PredictedPrice, second.PredictedPrice)
	}
	if first.MAE != second.MAE || first.RMSE != second.RMSE || first.R2 != second.R2 {
		t.Errorf("metrics not deterministic: %+v vs %+v", first, second)
	}
}

func TestForecastRejectsNonFiniteInput(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	candles := dailyCandles(closes, 1000)
	candles[10].Close = math.NaN()

	engine := New(Config{})
	_, err := engine.Forecast(context.Background(), "TSLA", candles)
	if !errors.Is(err, ErrComputation) {
		t.Fatalf("err = %v, want ErrComputation", err)
	}
}

func TestForecastRejectsUnorderedSeries(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	candles := dailyCandles(closes, 1000)
	candles[5].Timestamp = candles[4].Timestamp

	engine := New(Config{})
	_, err := engine.Forecast(context.Background(), "TSLA", candles)
	if !errors.Is(err, ErrComputation) {
		t.Fatalf("err = %v, want ErrComputation", err)
	}
}

func TestForecastHonorsContext(t *testing.T) {
	candles := dailyCandles(make([]float64, 20), 1000)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := New(Config{})
	_, err := engine.Forecast(ctx, "AAPL", candles)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestForecastTrainEvalSizes(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 50 + math.Sin(float64(i))*3
	}
	candles := dailyCandles(closes, 2000)

	engine := New(Config{Lookback: 5, TrainFraction: 0.8})
	fc, err := engine.Forecast(context.Background(), "NVDA", candles)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}

	// 30 candles, lookback 5: 26 rows, 25 labeled, last row held for
	// inference. 80% of 25 trains, the rest evaluates.
	if fc.TrainSize != 20 {
		t.Errorf("TrainSize = %d, want 20", fc.TrainSize)
	}
	if fc.EvalSize != 5 {
		t.Errorf("EvalSize = %d, want 5", fc.EvalSize)
	}
	if fc.TrainSize+fc.EvalSize != 25 {
		t.Errorf("train+eval = %d, want 25 (inference row excluded)", fc.TrainSize+fc.EvalSize)
	}
}

func TestForecastVolumeScaleInvariant(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	engine := New(Config{})

	thin, err := engine.Forecast(context.Background(), "AAPL", dailyCandles(closes, 1))
	if err != nil {
		t.Fatalf("Forecast at volume 1 failed: %v", err)
	}
	heavy, err := engine.Forecast(context.Background(), "AAPL", dailyCandles(closes, 1_000_000))
	if err != nil {
		t.Fatalf("Forecast at volume 1e6 failed: %v", err)
	}

	// The ridge is relative to each column's own diagonal, so raising the
	// volume column by six orders of magnitude must not shrink the price
	// coefficients.
	if math.Abs(thin.PredictedPrice-heavy.PredictedPrice) > 0.01 {
		t.Errorf("predicted %.4f at volume 1 vs %.4f at volume 1e6", thin.PredictedPrice, heavy.PredictedPrice)
	}
	if heavy.MAE > 0.01 {
		t.Errorf("MAE = %.6f at volume 1e6, want near 0 on a perfectly linear series", heavy.MAE)
	}
}
