package forecast

import (
	"math"
	"testing"
)

func TestMAE(t *testing.T) {
	got := MAE([]float64{1, 2, 3}, []float64{2, 2, 5})
	if math.Abs(got-1) > 1e-12 {
		t.Errorf("MAE = %v, want 1", got)
	}
	if v := MAE([]float64{5}, []float64{5}); v != 0 {
		t.Errorf("MAE on exact predictions = %v, want 0", v)
	}
	if !math.IsNaN(MAE(nil, nil)) {
		t.Error("MAE of empty input should be NaN")
	}
}

func TestRMSE(t *testing.T) {
	got := RMSE([]float64{0, 0}, []float64{3, 4})
	want := math.Sqrt(12.5)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("RMSE = %v, want %v", got, want)
	}
	if !math.IsNaN(RMSE([]float64{1}, []float64{1, 2})) {
		t.Error("RMSE of mismatched lengths should be NaN")
	}
}

func TestRMSEAtLeastMAE(t *testing.T) {
	pred := []float64{1.2, 3.4, 2.2, 8.0, 4.4}
	actual := []float64{1.0, 3.0, 2.5, 7.1, 5.0}
	if RMSE(pred, actual) < MAE(pred, actual) {
		t.Error("RMSE must dominate MAE")
	}
}

func TestR2(t *testing.T) {
	actual := []float64{1, 2, 3, 4}
	if v := R2(actual, actual); math.Abs(v-1) > 1e-12 {
		t.Errorf("perfect R2 = %v, want 1", v)
	}

	// Predicting the mean everywhere gives R2 of exactly 0.
	mean := []float64{2.5, 2.5, 2.5, 2.5}
	if v := R2(mean, actual); math.Abs(v) > 1e-12 {
		t.Errorf("mean-prediction R2 = %v, want 0", v)
	}
}

func TestR2ZeroVariance(t *testing.T) {
	if v := R2([]float64{4, 5}, []float64{7, 7}); v != 0 {
		t.Errorf("R2 with constant actuals = %v, want 0", v)
	}
}
