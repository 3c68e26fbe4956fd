package forecast

import "fmt"

// Dataset is a chronological train/evaluation partition of labeled feature
// rows, plus the most recent row reserved for inference. The inference row
// has no label (its successor does not exist yet) and must never enter
// either partition.
type Dataset struct {
	TrainX [][]float64
	TrainY []float64
	EvalX  [][]float64
	EvalY  []float64
	Latest []float64
}

// DefaultTrainFraction is the leading share of labeled examples used for
// fitting; the trailing remainder is held out for evaluation.
const DefaultTrainFraction = 0.8

// Split pairs each feature row with the next period's close and partitions
// the labeled examples chronologically. rows[i] describes candle
// lookback-1+i, so its label is closes[lookback+i]. Order is preserved;
// shuffling would leak future information into training.
func Split(rows [][]float64, closes []float64, lookback int, trainFraction float64) (*Dataset, error) {
	if len(rows) < 3 {
		return nil, fmt.Errorf("%w: %d feature rows", ErrInsufficientData, len(rows))
	}
	labeled := len(rows) - 1
	if labeled < 2 {
		return nil, fmt.Errorf("%w: %d labeled examples", ErrInsufficientData, labeled)
	}
	if trainFraction <= 0 || trainFraction >= 1 {
		trainFraction = DefaultTrainFraction
	}

	y := make([]float64, labeled)
	for i := 0; i < labeled; i++ {
		y[i] = closes[lookback+i]
	}

	trainN := int(trainFraction * float64(labeled))
	if trainN < 1 {
		trainN = 1
	}
	if trainN > labeled-1 {
		trainN = labeled - 1
	}

	return &Dataset{
		TrainX: rows[:trainN],
		TrainY: y[:trainN],
		EvalX:  rows[trainN:labeled],
		EvalY:  y[trainN:],
		Latest: rows[labeled],
	}, nil
}
