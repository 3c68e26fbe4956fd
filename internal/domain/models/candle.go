package models

import "time"

// Candle represents one OHLCV period of a ticker's price history.
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// History is an ascending, timestamp-unique candle series for one symbol.
type History struct {
	Symbol   string   `json:"symbol"`
	Range    string   `json:"range"`
	Interval string   `json:"interval"`
	Candles  []Candle `json:"candles"`
}

// Closes extracts the close prices in series order.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}
