package usecase

import (
	"context"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/services/indicators"
	"StockPulse/pkg/cache"
	xlogger "StockPulse/pkg/logger"
	"StockPulse/pkg/util"
)

// AnalysisTTLs controls how long each read-path response stays cached.
type AnalysisTTLs struct {
	History time.Duration
	Quote   time.Duration
	Profile time.Duration
}

// AnalysisUseCase serves the read endpoints: history, quote, company
// profile and technical indicators. Everything goes through the cache so
// the upstream provider is hit at most once per TTL window.
type AnalysisUseCase struct {
	market  domrepo.MarketData
	cache   cache.Service
	metrics domrepo.Metrics
	logger  *xlogger.Logger
	ttl     AnalysisTTLs
}

func NewAnalysisUseCase(
	market domrepo.MarketData,
	c cache.Service,
	metrics domrepo.Metrics,
	logger *xlogger.Logger,
	ttl AnalysisTTLs,
) *AnalysisUseCase {
	if ttl.History <= 0 {
		ttl.History = 5 * time.Minute
	}
	if ttl.Quote <= 0 {
		ttl.Quote = 30 * time.Second
	}
	if ttl.Profile <= 0 {
		ttl.Profile = 24 * time.Hour
	}
	return &AnalysisUseCase{market: market, cache: c, metrics: metrics, logger: logger, ttl: ttl}
}

// GetHistory returns the candle history for a symbol over a range.
func (uc *AnalysisUseCase) GetHistory(ctx context.Context, symbol, rng string) (*models.History, error) {
	symbol = util.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	r := domrepo.NormalizeRange(rng)

	key := cache.HistoryKey(symbol, string(r))
	var cached models.History
	if err := uc.cache.Get(ctx, key, &cached); err == nil && len(cached.Candles) > 0 {
		return &cached, nil
	}

	start := time.Now()
	h, err := uc.market.GetHistory(ctx, symbol, r)
	if err != nil {
		uc.metrics.RecordError("history_fetch")
		return nil, err
	}
	uc.metrics.RecordLatency("history_fetch", time.Since(start).Seconds())

	if err := uc.cache.Set(ctx, key, h, uc.ttl.History); err != nil {
		uc.logger.Warn("history cache set failed", xlogger.String("key", key), xlogger.Error(err))
	}
	return h, nil
}

// GetQuote returns the latest quote for a symbol.
func (uc *AnalysisUseCase) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	symbol = util.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}

	key := cache.QuoteKey(symbol)
	var cached models.Quote
	if err := uc.cache.Get(ctx, key, &cached); err == nil && cached.Symbol != "" {
		return &cached, nil
	}

	start := time.Now()
	q, err := uc.market.GetQuote(ctx, symbol)
	if err != nil {
		uc.metrics.RecordError("quote_fetch")
		return nil, err
	}
	uc.metrics.RecordLatency("quote_fetch", time.Since(start).Seconds())
	uc.metrics.RecordLastPrice(symbol, q.Price)

	if err := uc.cache.Set(ctx, key, q, uc.ttl.Quote); err != nil {
		uc.logger.Warn("quote cache set failed", xlogger.String("key", key), xlogger.Error(err))
	}
	return q, nil
}

// GetProfile returns the company profile for a symbol.
func (uc *AnalysisUseCase) GetProfile(ctx context.Context, symbol string) (*models.CompanyProfile, error) {
	symbol = util.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}

	key := cache.ProfileKey(symbol)
	var cached models.CompanyProfile
	if err := uc.cache.Get(ctx, key, &cached); err == nil && cached.Symbol != "" {
		return &cached, nil
	}

	start := time.Now()
	p, err := uc.market.GetProfile(ctx, symbol)
	if err != nil {
		uc.metrics.RecordError("profile_fetch")
		return nil, err
	}
	uc.metrics.RecordLatency("profile_fetch", time.Since(start).Seconds())

	if err := uc.cache.Set(ctx, key, p, uc.ttl.Profile); err != nil {
		uc.logger.Warn("profile cache set failed", xlogger.String("key", key), xlogger.Error(err))
	}
	return p, nil
}

// IndicatorsResult bundles the computed technical indicators for a range.
// Each series is aligned to the candle timestamps; positions where the
// indicator window is incomplete hold NaN and serialize as null.
type IndicatorsResult struct {
	Symbol     string            `json:"symbol"`
	Range      string            `json:"range"`
	Interval   string            `json:"interval"`
	Timestamps []int64           `json:"timestamps"`
	Close      indicators.Series `json:"close"`
	SMA20      indicators.Series `json:"sma_20"`
	EMA12      indicators.Series `json:"ema_12"`
	EMA26      indicators.Series `json:"ema_26"`
	RSI14      indicators.Series `json:"rsi_14"`
	Bollinger  indicators.Bands  `json:"bollinger"`
}

// GetIndicators computes SMA, EMA, RSI and Bollinger bands over the
// symbol's close series for the requested range.
func (uc *AnalysisUseCase) GetIndicators(ctx context.Context, symbol, rng string) (*IndicatorsResult, error) {
	h, err := uc.GetHistory(ctx, symbol, rng)
	if err != nil {
		return nil, err
	}

	closes := models.Closes(h.Candles)
	ts := make([]int64, len(h.Candles))
	for i, c := range h.Candles {
		ts[i] = c.Timestamp.Unix()
	}

	return &IndicatorsResult{
		Symbol:     h.Symbol,
		Range:      h.Range,
		Interval:   h.Interval,
		Timestamps: ts,
		Close:      closes,
		SMA20:      indicators.SMA(closes, 20),
		EMA12:      indicators.EMA(closes, 12),
		EMA26:      indicators.EMA(closes, 26),
		RSI14:      indicators.RSI(closes, 14),
		Bollinger:  indicators.Bollinger(closes, 20, 2),
	}, nil
}
