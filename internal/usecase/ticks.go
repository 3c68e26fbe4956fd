package usecase

import (
	"context"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	domrepo "StockPulse/internal/domain/repository"
	xhttp "StockPulse/pkg/http"
	"StockPulse/pkg/util"
)

// TicksUseCase reads archived intraday ticks back out of storage.
type TicksUseCase struct {
	store domrepo.Storage
}

func NewTicksUseCase(store domrepo.Storage) *TicksUseCase {
	return &TicksUseCase{store: store}
}

type GetTicksParams struct {
	Symbol string
	From   time.Time
	To     time.Time
	Limit  int
}

type GetTicksResult struct {
	Symbol string         `json:"symbol"`
	From   time.Time      `json:"from"`
	To     time.Time      `json:"to"`
	Count  int            `json:"count"`
	Ticks  []*models.Tick `json:"ticks"`
}

func (uc *TicksUseCase) GetTicks(ctx context.Context, p GetTicksParams) (*GetTicksResult, error) {
	p.Symbol = util.NormalizeSymbol(p.Symbol)
	if p.Symbol == "" {
		return nil, xhttp.BadRequestError("symbol required")
	}
	if p.To.IsZero() {
		p.To = time.Now()
	}
	if p.From.IsZero() {
		p.From = p.To.Add(-24 * time.Hour)
	}
	if p.From.After(p.To) {
		return nil, xhttp.BadRequestError("from must not be after to")
	}
	if p.Limit <= 0 {
		p.Limit = 1000
	}
	if p.Limit > 10000 {
		p.Limit = 10000
	}

	ticks, err := uc.store.Query(ctx, p.Symbol, p.From, p.To, p.Limit)
	if err != nil {
		return nil, fmt.Errorf("query ticks: %w", err)
	}

	return &GetTicksResult{
		Symbol: p.Symbol,
		From:   p.From,
		To:     p.To,
		Count:  len(ticks),
		Ticks:  ticks,
	}, nil
}
