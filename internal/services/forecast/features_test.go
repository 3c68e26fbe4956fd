package forecast

import (
	"errors"
	"math"
	"testing"
)

func TestBuildFeaturesShape(t *testing.T) {
	closes := []float64{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}
	candles := dailyCandles(closes, 500)

	rows, err := BuildFeatures(candles, 5)
	if err != nil {
		t.Fatalf("BuildFeatures failed: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("got %d rows, want 6", len(rows))
	}
	for i, row := range rows {
		if len(row) != FeatureWidth(5) {
			t.Errorf("row %d has width %d, want %d", i, len(row), FeatureWidth(5))
		}
	}
}

func TestBuildFeaturesValues(t *testing.T) {
	closes := []float64{10, 20, 30, 40, 50, 60, 70}
	candles := dailyCandles(closes, 900)

	rows, err := BuildFeatures(candles, 5)
	if err != nil {
		t.Fatalf("BuildFeatures failed: %v", err)
	}

	// First row covers closes[0..4].
	row := rows[0]
	for i := 0; i < 5; i++ {
		if row[i] != closes[i] {
			t.Errorf("lag %d = %v, want %v", i, row[i], closes[i])
		}
	}
	if row[5] != 30 {
		t.Errorf("mean = %v, want 30", row[5])
	}
	wantStd := math.Sqrt(200) // population stddev of 10..50 step 10
	if math.Abs(row[6]-wantStd) > 1e-9 {
		t.Errorf("stddev = %v, want %v", row[6], wantStd)
	}
	if row[7] != 900 {
		t.Errorf("volume = %v, want 900", row[7])
	}
}

func TestBuildFeaturesTooShort(t *testing.T) {
	candles := dailyCandles([]float64{1, 2, 3, 4, 5, 6}, 100)
	_, err := BuildFeatures(candles, 5)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}

func TestBuildFeaturesNonFinite(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	candles := dailyCandles(closes, 100)
	candles[3].Volume = math.Inf(1)

	_, err := BuildFeatures(candles, 5)
	if !errors.Is(err, ErrComputation) {
		t.Fatalf("err = %v, want ErrComputation", err)
	}
}
