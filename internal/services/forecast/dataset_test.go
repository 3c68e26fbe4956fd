package forecast

import (
	"errors"
	"testing"

	"StockPulse/internal/domain/models"
)

func TestSplitChronological(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = float64(100 + i)
	}
	candles := dailyCandles(closes, 100)
	rows, err := BuildFeatures(candles, 5)
	if err != nil {
		t.Fatalf("BuildFeatures failed: %v", err)
	}

	ds, err := Split(rows, models.Closes(candles), 5, 0.8)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	// 16 rows, 15 labeled: 12 train, 3 eval, 1 inference.
	if len(ds.TrainX) != 12 || len(ds.TrainY) != 12 {
		t.Errorf("train sizes = %d/%d, want 12/12", len(ds.TrainX), len(ds.TrainY))
	}
	if len(ds.EvalX) != 3 || len(ds.EvalY) != 3 {
		t.Errorf("eval sizes = %d/%d, want 3/3", len(ds.EvalX), len(ds.EvalY))
	}

	// Label of row i is the close one period after the row's candle.
	if ds.TrainY[0] != closes[5] {
		t.Errorf("first label = %v, want %v", ds.TrainY[0], closes[5])
	}
	if ds.EvalY[len(ds.EvalY)-1] != closes[19] {
		t.Errorf("last label = %v, want %v", ds.EvalY[len(ds.EvalY)-1], closes[19])
	}

	// Every train label predates every eval label when the series rises.
	for _, tr := range ds.TrainY {
		for _, ev := range ds.EvalY {
			if tr >= ev {
				t.Fatalf("train label %v not before eval label %v", tr, ev)
			}
		}
	}
}

func TestSplitLatestExcluded(t *testing.T) {
	closes := make([]float64, 12)
	for i := range closes {
		closes[i] = float64(i)
	}
	candles := dailyCandles(closes, 100)
	rows, _ := BuildFeatures(candles, 5)

	ds, err := Split(rows, models.Closes(candles), 5, 0.8)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(ds.TrainX)+len(ds.EvalX) != len(rows)-1 {
		t.Errorf("train+eval = %d rows, want %d", len(ds.TrainX)+len(ds.EvalX), len(rows)-1)
	}
	last := rows[len(rows)-1]
	for i := range last {
		if ds.Latest[i] != last[i] {
			t.Fatalf("Latest is not the final feature row")
		}
	}
}

func TestSplitTooFewRows(t *testing.T) {
	rows := [][]float64{{1, 2}, {3, 4}}
	_, err := Split(rows, []float64{1, 2, 3, 4, 5, 6, 7}, 5, 0.8)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}

func TestSplitTinyLabeledSet(t *testing.T) {
	// 8 candles, lookback 5: 4 rows, 3 labeled. Both partitions must stay
	// non-empty even when the fraction would round one of them to zero.
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	candles := dailyCandles(closes, 10)
	rows, _ := BuildFeatures(candles, 5)

	ds, err := Split(rows, models.Closes(candles), 5, 0.8)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(ds.TrainY) == 0 || len(ds.EvalY) == 0 {
		t.Fatalf("empty partition: train=%d eval=%d", len(ds.TrainY), len(ds.EvalY))
	}
}
