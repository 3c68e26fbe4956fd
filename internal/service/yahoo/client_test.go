package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	drepo "StockPulse/internal/domain/repository"
)

const chartFixture = `{
  "chart": {
    "result": [{
      "meta": {
        "symbol": "AAPL",
        "currency": "USD",
        "exchangeName": "NMS",
        "regularMarketPrice": 104.5,
        "chartPreviousClose": 100.0,
        "regularMarketTime": 1717430400
      },
      "timestamp": [1717171200, 1717257600, 1717344000, 1717430400],
      "indicators": {
        "quote": [{
          "open":   [100.0, 101.0, null, 103.0],
          "high":   [101.5, 102.5, null, 104.5],
          "low":    [99.5, 100.5, null, 102.5],
          "close":  [101.0, 102.0, null, 104.0],
          "volume": [1000, 1100, null, 1300]
        }]
      }
    }],
    "error": null
  }
}`

const missingFixture = `{
  "chart": {
    "result": null,
    "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}
  }
}`

func TestGetHistorySkipsNullBars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v8/finance/chart/AAPL") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("range"); got != "6mo" {
			t.Errorf("range = %q, want 6mo", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chartFixture))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	h, err := c.GetHistory(context.Background(), "AAPL", drepo.Range6M)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}

	// Fixture has 4 bars, one all-null.
	if len(h.Candles) != 3 {
		t.Fatalf("got %d candles, want 3", len(h.Candles))
	}
	if h.Candles[0].Close != 101.0 || h.Candles[2].Close != 104.0 {
		t.Errorf("unexpected closes: %v, %v", h.Candles[0].Close, h.Candles[2].Close)
	}
	for i := 1; i < len(h.Candles); i++ {
		if !h.Candles[i].Timestamp.After(h.Candles[i-1].Timestamp) {
			t.Fatalf("candles not ascending at %d", i)
		}
	}
	if h.Interval != "1d" {
		t.Errorf("interval = %q, want 1d for 6mo", h.Interval)
	}
}

func TestGetHistoryUnknownSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(missingFixture))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	_, err := c.GetHistory(context.Background(), "NOPE", drepo.Range6M)
	if err == nil {
		t.Fatal("expected error for unknown symbol")
	}
}

func TestGetQuoteFromChartMeta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chartFixture))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	q, err := c.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetQuote failed: %v", err)
	}
	if q.Price != 104.5 {
		t.Errorf("price = %v, want 104.5", q.Price)
	}
	if q.PreviousClose != 100.0 {
		t.Errorf("previous close = %v, want 100", q.PreviousClose)
	}
	if q.Change != 4.5 {
		t.Errorf("change = %v, want 4.5", q.Change)
	}
	if q.DayHigh != 104.5 {
		t.Errorf("day high = %v, want 104.5", q.DayHigh)
	}
	if q.DayLow != 99.5 {
		t.Errorf("day low = %v, want 99.5", q.DayLow)
	}
}

func TestGetHistoryTruncatedArrays(t *testing.T) {
	// Close runs four bars but open/high/low/volume stop short; the short
	// entries read as null instead of panicking.
	const truncated = `{
	  "chart": {
	    "result": [{
	      "meta": {"symbol": "AAPL", "currency": "USD"},
	      "timestamp": [1717171200, 1717257600, 1717344000, 1717430400],
	      "indicators": {
	        "quote": [{
	          "open":   [100.0, 101.0],
	          "high":   [101.5],
	          "low":    [99.5, 100.5],
	          "close":  [101.0, 102.0, 103.0, 104.0],
	          "volume": [1000]
	        }]
	      }
	    }],
	    "error": null
	  }
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(truncated))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	h, err := c.GetHistory(context.Background(), "AAPL", drepo.Range6M)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(h.Candles) != 4 {
		t.Fatalf("got %d candles, want 4", len(h.Candles))
	}
	if h.Candles[2].Open != 0 || h.Candles[2].High != 0 {
		t.Errorf("bar past open/high length should read as null, got open=%v high=%v", h.Candles[2].Open, h.Candles[2].High)
	}
	if h.Candles[3].Close != 104.0 {
		t.Errorf("close[3] = %v, want 104", h.Candles[3].Close)
	}
	if h.Candles[1].Volume != 0 {
		t.Errorf("volume past array length should be 0, got %v", h.Candles[1].Volume)
	}
}
