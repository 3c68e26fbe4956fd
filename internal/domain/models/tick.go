package models

// Tick is a single real-time trade event from the live price stream.
// Timestamp is unix seconds.
type Tick struct {
	Symbol    string  `json:"symbol"`
	Timestamp int64   `json:"timestamp"`
	Price     float64 `json:"price"`
	Volume    float64 `json:"volume"`
}
