package models

// Requests for the stock API endpoints. Defined in domain for consistency and reuse.

type HistoryRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,max=16"`
	Range  string `query:"range" json:"range" default:"6mo" validate:"oneof=1d 5d 1mo 3mo 6mo 1y 2y 5y 10y ytd max"`
}

type QuoteRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,max=16"`
}

type ProfileRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,max=16"`
}

type IndicatorsRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,max=16"`
	Range  string `query:"range" json:"range" default:"6mo" validate:"oneof=1d 5d 1mo 3mo 6mo 1y 2y 5y 10y ytd max"`
}

type ForecastRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,max=16"`
	Range  string `query:"range" json:"range" default:"6mo" validate:"oneof=1mo 3mo 6mo 1y 2y 5y 10y ytd max"`
}

// TicksRequest queries the raw tick archive. From/to accept RFC3339 or
// unix seconds; an empty window defaults to the trailing 24 hours.
type TicksRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,max=16"`
	From   string `query:"from" json:"from" validate:"omitempty,max=40"`
	To     string `query:"to" json:"to" validate:"omitempty,max=40"`
	Limit  string `query:"limit" json:"limit" validate:"omitempty,max=8"`
}
