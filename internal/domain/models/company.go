package models

import "time"

// Quote is the latest traded price snapshot for a symbol.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	PreviousClose float64   `json:"previous_close"`
	Change        float64   `json:"change"`
	ChangePct     float64   `json:"change_pct"`
	DayHigh       float64   `json:"day_high"`
	DayLow        float64   `json:"day_low"`
	Volume        float64   `json:"volume"`
	Timestamp     time.Time `json:"timestamp"`
}

// CompanyProfile holds descriptive metadata about the listed company.
type CompanyProfile struct {
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	Exchange         string  `json:"exchange"`
	Currency         string  `json:"currency"`
	Sector           string  `json:"sector,omitempty"`
	Industry         string  `json:"industry,omitempty"`
	Website          string  `json:"website,omitempty"`
	Country          string  `json:"country,omitempty"`
	Summary          string  `json:"summary,omitempty"`
	MarketCap        float64 `json:"market_cap,omitempty"`
	FiftyTwoWeekHigh float64 `json:"fifty_two_week_high,omitempty"`
	FiftyTwoWeekLow  float64 `json:"fifty_two_week_low,omitempty"`
}
