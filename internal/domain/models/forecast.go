package models

import "time"

// Forecast is the result of one prediction pipeline run for a symbol:
// the predicted next-period close plus accuracy metrics measured on the
// held-out evaluation window. It is created fresh per invocation and never
// persisted.
type Forecast struct {
	Symbol         string    `json:"symbol"`
	GeneratedAt    time.Time `json:"generated_at"`
	PredictedPrice float64   `json:"predicted_price"`
	LastClose      float64   `json:"last_close"`
	MAE            float64   `json:"mae"`
	RMSE           float64   `json:"rmse"`
	R2             float64   `json:"r2"`
	TrainSize      int       `json:"train_size"`
	EvalSize       int       `json:"eval_size"`
}

// ForecastResponse is what the HTTP layer hands to the presentation side.
// When the pipeline cannot produce a prediction, Available is false and
// Reason explains why; the numeric fields must then be ignored.
type ForecastResponse struct {
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
	Forecast  *Forecast `json:"forecast,omitempty"`
}
