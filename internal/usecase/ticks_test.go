package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"StockPulse/internal/domain/models"
)

type fakeTickStore struct {
	ticks  []*models.Tick
	symbol string
	limit  int
	err    error
}

func (f *fakeTickStore) Init(_ context.Context) error                         { return nil }
func (f *fakeTickStore) Store(_ context.Context, _ *models.Tick) error        { return nil }
func (f *fakeTickStore) StoreBatch(_ context.Context, _ []*models.Tick) error { return nil }
func (f *fakeTickStore) Health(_ context.Context) error                       { return nil }
func (f *fakeTickStore) Close() error                                         { return nil }

func (f *fakeTickStore) Query(_ context.Context, symbol string, from, to time.Time, limit int) ([]*models.Tick, error) {
	f.symbol = symbol
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.ticks, nil
}

func TestGetTicks(t *testing.T) {
	store := &fakeTickStore{ticks: []*models.Tick{
		{Symbol: "AAPL", Timestamp: 1700000000, Price: 190.1, Volume: 100},
		{Symbol: "AAPL", Timestamp: 1700000001, Price: 190.2, Volume: 50},
	}}
	uc := NewTicksUseCase(store)

	res, err := uc.GetTicks(context.Background(), GetTicksParams{Symbol: " aapl "})
	if err != nil {
		t.Fatalf("GetTicks failed: %v", err)
	}
	if store.symbol != "AAPL" {
		t.Errorf("queried symbol = %q, want AAPL", store.symbol)
	}
	if res.Count != 2 || len(res.Ticks) != 2 {
		t.Errorf("count = %d, ticks = %d, want 2", res.Count, len(res.Ticks))
	}
	if store.limit != 1000 {
		t.Errorf("default limit = %d, want 1000", store.limit)
	}
	if got := res.To.Sub(res.From); got != 24*time.Hour {
		t.Errorf("default window = %v, want 24h", got)
	}
}

func TestGetTicksLimitClamp(t *testing.T) {
	store := &fakeTickStore{}
	uc := NewTicksUseCase(store)

	if _, err := uc.GetTicks(context.Background(), GetTicksParams{Symbol: "AAPL", Limit: 50000}); err != nil {
		t.Fatalf("GetTicks failed: %v", err)
	}
	if store.limit != 10000 {
		t.Errorf("limit = %d, want clamp to 10000", store.limit)
	}
}

func TestGetTicksInvalidWindow(t *testing.T) {
	uc := NewTicksUseCase(&fakeTickStore{})
	now := time.Now()

	_, err := uc.GetTicks(context.Background(), GetTicksParams{
		Symbol: "AAPL",
		From:   now,
		To:     now.Add(-time.Hour),
	})
	if err == nil {
		t.Fatal("expected error for from after to")
	}
}

func TestGetTicksStoreError(t *testing.T) {
	boom := errors.New("clickhouse down")
	uc := NewTicksUseCase(&fakeTickStore{err: boom})

	_, err := uc.GetTicks(context.Background(), GetTicksParams{Symbol: "AAPL"})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped store error", err)
	}
}
