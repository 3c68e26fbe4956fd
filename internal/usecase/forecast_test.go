package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/services/forecast"
	"StockPulse/pkg/cache"
	xlogger "StockPulse/pkg/logger"
)

type fakeMarket struct {
	candles []models.Candle
	calls   int
	err     error
}

func (f *fakeMarket) GetHistory(_ context.Context, symbol string, r domrepo.Range) (*models.History, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.History{
		Symbol:   symbol,
		Range:    string(r),
		Interval: domrepo.IntervalFor(r),
		Candles:  f.candles,
	}, nil
}

func (f *fakeMarket) GetQuote(_ context.Context, symbol string) (*models.Quote, error) {
	f.calls++
	return &models.Quote{Symbol: symbol, Price: 101.5, PreviousClose: 100}, nil
}

func (f *fakeMarket) GetProfile(_ context.Context, symbol string) (*models.CompanyProfile, error) {
	f.calls++
	return &models.CompanyProfile{Symbol: symbol, Name: "Test Corp"}, nil
}

type noopMetrics struct{}

func (noopMetrics) RecordMessageSent(string, string) {}
func (noopMetrics) RecordError(string)               {}
func (noopMetrics) RecordLastPrice(string, float64)  {}
func (noopMetrics) RecordLatency(string, float64)    {}
func (noopMetrics) RecordForecast(string, string)    {}

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func trendCandles(n int) []models.Candle {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	out := make([]models.Candle, n)
	for i := 0; i < n; i++ {
		close := 100.0 + float64(i)
		out[i] = models.Candle{
			Timestamp: base.AddDate(0, 0, i),
			Open:      close - 0.5,
			High:      close + 1,
			Low:       close - 1,
			Close:     close,
			Volume:    1_000_000,
		}
	}
	return out
}

func newForecastUC(t *testing.T, market *fakeMarket) *ForecastUseCase {
	t.Helper()
	l := testLogger(t)
	mc := cache.NewMemoryCache()
	analysis := NewAnalysisUseCase(market, mc, noopMetrics{}, l, AnalysisTTLs{})
	eng := forecast.New(forecast.Config{})
	return NewForecastUseCase(analysis, eng, mc, noopMetrics{}, l, time.Minute)
}

func TestGetForecastAvailable(t *testing.T) {
	market := &fakeMarket{candles: trendCandles(30)}
	uc := newForecastUC(t, market)

	resp, err := uc.GetForecast(context.Background(), "aapl", "6mo")
	if err != nil {
		t.Fatalf("GetForecast: %v", err)
	}
	if !resp.Available {
		t.Fatalf("expected available forecast, got reason %q", resp.Reason)
	}
	if resp.Forecast == nil {
		t.Fatalf("available response missing forecast")
	}
	if resp.Forecast.Symbol != "AAPL" {
		t.Errorf("symbol = %q, want AAPL", resp.Forecast.Symbol)
	}
	want := 130.0 // last close 129, trend +1 per day
	if diff := resp.Forecast.PredictedPrice - want; diff < -0.1 || diff > 0.1 {
		t.Errorf("predicted %v, want ~%v", resp.Forecast.PredictedPrice, want)
	}
}

func TestGetForecastInsufficientData(t *testing.T) {
	market := &fakeMarket{candles: trendCandles(3)}
	uc := newForecastUC(t, market)

	resp, err := uc.GetForecast(context.Background(), "MSFT", "6mo")
	if err != nil {
		t.Fatalf("short series must not be an error: %v", err)
	}
	if resp.Available {
		t.Fatalf("expected unavailable forecast")
	}
	if resp.Reason != ReasonInsufficientData {
		t.Errorf("reason = %q, want %q", resp.Reason, ReasonInsufficientData)
	}
	if resp.Forecast != nil {
		t.Errorf("unavailable response must not carry a forecast")
	}
}

func TestGetForecastCached(t *testing.T) {
	market := &fakeMarket{candles: trendCandles(30)}
	uc := newForecastUC(t, market)

	if _, err := uc.GetForecast(context.Background(), "TSLA", "1y"); err != nil {
		t.Fatalf("first call: %v", err)
	}
	callsAfterFirst := market.calls
	if _, err := uc.GetForecast(context.Background(), "TSLA", "1y"); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if market.calls != callsAfterFirst {
		t.Errorf("second call hit upstream: %d -> %d calls", callsAfterFirst, market.calls)
	}
}

func TestGetForecastUpstreamError(t *testing.T) {
	market := &fakeMarket{err: fmt.Errorf("upstream down")}
	uc := newForecastUC(t, market)

	if _, err := uc.GetForecast(context.Background(), "NVDA", "6mo"); err == nil {
		t.Fatalf("expected upstream error to propagate")
	}
}

func TestGetForecastEmptySymbol(t *testing.T) {
	uc := newForecastUC(t, &fakeMarket{candles: trendCandles(30)})
	if _, err := uc.GetForecast(context.Background(), "  ", "6mo"); err == nil {
		t.Fatalf("expected error for blank symbol")
	}
}
