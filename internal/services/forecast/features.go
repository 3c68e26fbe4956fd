package forecast

import (
	"fmt"
	"math"

	"StockPulse/internal/domain/models"
)

// DefaultLookback is the number of trailing closes used per feature row.
const DefaultLookback = 5

// FeatureWidth returns the width of a feature row for a lookback window:
// the lagged closes, their rolling mean and population standard deviation,
// and the period's volume.
func FeatureWidth(lookback int) int { return lookback + 3 }

// BuildFeatures turns an ascending candle series into one feature row per
// period that has a full lookback window behind it. Row i corresponds to
// candle lookback-1+i; earlier periods produce no row and are dropped, not
// padded.
func BuildFeatures(candles []models.Candle, lookback int) ([][]float64, error) {
	if lookback < 2 {
		return nil, fmt.Errorf("%w: lookback %d", ErrInsufficientData, lookback)
	}
	// The pipeline needs at least one labeled example on top of the
	// reserved inference row.
	if len(candles) < lookback+2 {
		return nil, fmt.Errorf("%w: %d candles, need at least %d", ErrInsufficientData, len(candles), lookback+2)
	}
	for i, c := range candles {
		if !isFinite(c.Close) || !isFinite(c.Volume) {
			return nil, fmt.Errorf("%w: candle %d", ErrComputation, i)
		}
	}

	rows := make([][]float64, 0, len(candles)-lookback+1)
	for i := lookback - 1; i < len(candles); i++ {
		row := make([]float64, 0, FeatureWidth(lookback))
		sum := 0.0
		for j := i - lookback + 1; j <= i; j++ {
			row = append(row, candles[j].Close)
			sum += candles[j].Close
		}
		mean := sum / float64(lookback)
		variance := 0.0
		for j := i - lookback + 1; j <= i; j++ {
			d := candles[j].Close - mean
			variance += d * d
		}
		row = append(row, mean, math.Sqrt(variance/float64(lookback)), candles[i].Volume)
		rows = append(rows, row)
	}
	return rows, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
