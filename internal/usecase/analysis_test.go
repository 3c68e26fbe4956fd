package usecase

import (
	"context"
	"math"
	"testing"
	"time"

	"StockPulse/pkg/cache"
)

func newAnalysisUC(t *testing.T, market *fakeMarket) *AnalysisUseCase {
	t.Helper()
	return NewAnalysisUseCase(market, cache.NewMemoryCache(), noopMetrics{}, testLogger(t), AnalysisTTLs{
		History: time.Minute,
		Quote:   time.Minute,
		Profile: time.Minute,
	})
}

func TestGetHistoryCached(t *testing.T) {
	market := &fakeMarket{candles: trendCandles(10)}
	uc := newAnalysisUC(t, market)

	h1, err := uc.GetHistory(context.Background(), "aapl", "6mo")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if h1.Symbol != "AAPL" {
		t.Errorf("symbol = %q, want AAPL", h1.Symbol)
	}
	h2, err := uc.GetHistory(context.Background(), "AAPL", "6mo")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if market.calls != 1 {
		t.Errorf("upstream called %d times, want 1", market.calls)
	}
	if len(h2.Candles) != len(h1.Candles) {
		t.Errorf("cached history has %d candles, want %d", len(h2.Candles), len(h1.Candles))
	}
}

func TestGetHistoryRangeIsolation(t *testing.T) {
	market := &fakeMarket{candles: trendCandles(10)}
	uc := newAnalysisUC(t, market)

	if _, err := uc.GetHistory(context.Background(), "AAPL", "1mo"); err != nil {
		t.Fatalf("1mo: %v", err)
	}
	if _, err := uc.GetHistory(context.Background(), "AAPL", "1y"); err != nil {
		t.Fatalf("1y: %v", err)
	}
	if market.calls != 2 {
		t.Errorf("distinct ranges must not share cache entries: %d calls, want 2", market.calls)
	}
}

func TestGetQuote(t *testing.T) {
	market := &fakeMarket{}
	uc := newAnalysisUC(t, market)

	q, err := uc.GetQuote(context.Background(), " msft ")
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}
	if q.Symbol != "MSFT" {
		t.Errorf("symbol = %q, want MSFT", q.Symbol)
	}
	if _, err := uc.GetQuote(context.Background(), "MSFT"); err != nil {
		t.Fatalf("cached GetQuote: %v", err)
	}
	if market.calls != 1 {
		t.Errorf("upstream called %d times, want 1", market.calls)
	}
}

func TestGetIndicators(t *testing.T) {
	market := &fakeMarket{candles: trendCandles(30)}
	uc := newAnalysisUC(t, market)

	res, err := uc.GetIndicators(context.Background(), "AAPL", "6mo")
	if err != nil {
		t.Fatalf("GetIndicators: %v", err)
	}
	if len(res.Close) != 30 || len(res.SMA20) != 30 || len(res.RSI14) != 30 {
		t.Fatalf("series lengths = %d/%d/%d, want 30", len(res.Close), len(res.SMA20), len(res.RSI14))
	}
	if !math.IsNaN(res.SMA20[18]) {
		t.Errorf("SMA20[18] should be NaN before the window fills")
	}
	// closes 100..129; SMA20 at the end averages 110..129
	if got, want := res.SMA20[29], 119.5; math.Abs(got-want) > 1e-9 {
		t.Errorf("SMA20[29] = %v, want %v", got, want)
	}
	// strictly rising series pins RSI at 100
	if got := res.RSI14[29]; math.Abs(got-100) > 1e-9 {
		t.Errorf("RSI14[29] = %v, want 100", got)
	}
	if len(res.Timestamps) != 30 {
		t.Errorf("timestamps length = %d, want 30", len(res.Timestamps))
	}
}

func TestGetProfileBlankSymbol(t *testing.T) {
	uc := newAnalysisUC(t, &fakeMarket{})
	if _, err := uc.GetProfile(context.Background(), ""); err == nil {
		t.Fatalf("expected error for blank symbol")
	}
}
