package usecase

import (
	"context"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/pkg/cache"
	xlogger "StockPulse/pkg/logger"
	"StockPulse/pkg/queue"
)

// WarmupMessageType identifies forecast precompute messages on the queue.
const WarmupMessageType = "forecast_warmup"

// WarmupPayload asks a worker to precompute one symbol's forecast so the
// first API hit lands on a warm cache.
type WarmupPayload struct {
	Symbol string `json:"symbol"`
	Range  string `json:"range"`
}

// WarmupJob consumes warmup messages and runs the forecast pipeline.
type WarmupJob struct {
	forecasts *ForecastUseCase
	logger    *xlogger.Logger
}

func NewWarmupJob(forecasts *ForecastUseCase, logger *xlogger.Logger) *WarmupJob {
	return &WarmupJob{forecasts: forecasts, logger: logger}
}

func (j *WarmupJob) Name() string { return "forecast-warmup" }

func (j *WarmupJob) Type() string { return WarmupMessageType }

func (j *WarmupJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[WarmupPayload](payload)
	if err != nil {
		return fmt.Errorf("warmup payload: %w", err)
	}

	resp, err := j.forecasts.GetForecast(ctx, p.Symbol, p.Range)
	if err != nil {
		return fmt.Errorf("warmup forecast %s: %w", p.Symbol, err)
	}
	if !resp.Available {
		// cached as unavailable; nothing to retry
		j.logger.Debug("warmup forecast unavailable",
			xlogger.String("symbol", p.Symbol),
			xlogger.String("reason", resp.Reason))
	}
	return nil
}

var _ queue.Job = (*WarmupJob)(nil)

// WarmupScheduler periodically enqueues warmup messages for the tracked
// symbols, skipping those whose forecast is still cached.
type WarmupScheduler struct {
	queue    queue.QueueService
	cache    cache.Service
	symbols  []string
	rng      string
	interval time.Duration
	logger   *xlogger.Logger
	stopCh   chan struct{}
}

func NewWarmupScheduler(q queue.QueueService, c cache.Service, symbols []string, rng string, interval time.Duration, logger *xlogger.Logger) *WarmupScheduler {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	if rng == "" {
		rng = "6mo"
	}
	return &WarmupScheduler{
		queue:    q,
		cache:    c,
		symbols:  symbols,
		rng:      rng,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Start enqueues one round immediately, then on every tick.
func (s *WarmupScheduler) Start(ctx context.Context) {
	go func() {
		s.enqueueAll(ctx)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.enqueueAll(ctx)
			}
		}
	}()
}

func (s *WarmupScheduler) Stop() {
	close(s.stopCh)
}

const warmupLockKey = "lock:forecast_warmup"

func (s *WarmupScheduler) enqueueAll(ctx context.Context) {
	if s.cache != nil {
		// one instance per interval enqueues the round
		ok, err := s.cache.TryLock(ctx, warmupLockKey, s.interval/2)
		if err != nil {
			s.logger.Warn("warmup lock failed", xlogger.Error(err))
		} else if !ok {
			s.logger.Debug("warmup round held by another instance")
			return
		}
	}

	warm := s.warmSymbols(ctx)
	enqueued := 0
	for _, sym := range s.symbols {
		if _, ok := warm[cache.ForecastKey(sym, s.rng)]; ok {
			continue
		}
		payload := WarmupPayload{Symbol: sym, Range: s.rng}
		if err := s.queue.PublishMessage(ctx, WarmupMessageType, payload); err != nil {
			s.logger.Warn("warmup enqueue failed",
				xlogger.String("symbol", sym), xlogger.Error(err))
			continue
		}
		enqueued++
	}
	s.logger.Debug("warmup round enqueued",
		xlogger.Int("cold", enqueued), xlogger.Int("tracked", len(s.symbols)))
}

// warmSymbols returns the cache keys of forecasts that are still fresh.
func (s *WarmupScheduler) warmSymbols(ctx context.Context) map[string]models.ForecastResponse {
	if s.cache == nil {
		return nil
	}
	keys := make([]string, len(s.symbols))
	for i, sym := range s.symbols {
		keys[i] = cache.ForecastKey(sym, s.rng)
	}
	warm, err := cache.MGetTyped[models.ForecastResponse](ctx, s.cache, keys...)
	if err != nil {
		s.logger.Warn("warmup cache probe failed", xlogger.Error(err))
		return nil
	}
	return warm
}
