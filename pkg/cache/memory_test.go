package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type payload struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	in := payload{Symbol: "AAPL", Price: 187.5}
	if err := mc.Set(ctx, QuoteKey("AAPL"), in, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var out payload
	if err := mc.Get(ctx, QuoteKey("AAPL"), &out); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	var out payload
	err := mc.Get(context.Background(), "missing", &out)
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("err = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	var out string
	if err := mc.Get(ctx, "k", &out); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("err = %v, want ErrCacheMiss after expiry", err)
	}
}

func TestMemoryCacheLRUEviction(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "a", "1", time.Minute)
	time.Sleep(time.Millisecond)
	_ = mc.Set(ctx, "b", "2", time.Minute)
	time.Sleep(time.Millisecond)

	// Touch "a" so "b" becomes least recently used.
	var s string
	_ = mc.Get(ctx, "a", &s)
	time.Sleep(time.Millisecond)

	_ = mc.Set(ctx, "c", "3", time.Minute)

	if err := mc.Get(ctx, "b", &s); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected b evicted, got err=%v", err)
	}
	if err := mc.Get(ctx, "a", &s); err != nil {
		t.Errorf("a should survive eviction: %v", err)
	}
}

func TestMemoryCacheTryLock(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	ok, err := mc.TryLock(ctx, "lock", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first TryLock = (%v, %v), want (true, nil)", ok, err)
	}
	ok, err = mc.TryLock(ctx, "lock", time.Minute)
	if err != nil || ok {
		t.Fatalf("second TryLock = (%v, %v), want (false, nil)", ok, err)
	}
	if err := mc.Unlock(ctx, "lock"); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	ok, _ = mc.TryLock(ctx, "lock", time.Minute)
	if !ok {
		t.Error("lock should be free after Unlock")
	}
}
