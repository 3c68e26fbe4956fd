package forecast

import (
	"errors"
	"math"
	"testing"
)

func TestFitRecoversKnownCoefficients(t *testing.T) {
	// y = 2 + 3*a - 1.5*b
	x := [][]float64{
		{1, 2}, {2, 1}, {3, 5}, {4, 2}, {5, 0},
		{0, 3}, {6, 4}, {7, 1}, {2, 6}, {8, 3},
	}
	y := make([]float64, len(x))
	for i, row := range x {
		y[i] = 2 + 3*row[0] - 1.5*row[1]
	}

	m, err := Fit(x, y)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if math.Abs(m.Intercept-2) > 1e-6 {
		t.Errorf("intercept = %v, want 2", m.Intercept)
	}
	if math.Abs(m.Weights[0]-3) > 1e-6 {
		t.Errorf("w0 = %v, want 3", m.Weights[0])
	}
	if math.Abs(m.Weights[1]+1.5) > 1e-6 {
		t.Errorf("w1 = %v, want -1.5", m.Weights[1])
	}
}

func TestFitCollinearColumns(t *testing.T) {
	// Second column is exactly twice the first. Plain normal equations
	// are singular here; the ridge term must keep the solve stable.
	x := [][]float64{
		{1, 2}, {2, 4}, {3, 6}, {4, 8}, {5, 10}, {6, 12},
	}
	y := []float64{3, 5, 7, 9, 11, 13}

	m, err := Fit(x, y)
	if err != nil {
		t.Fatalf("Fit failed on collinear design: %v", err)
	}
	for i, row := range x {
		got := m.Predict(row)
		if math.Abs(got-y[i]) > 1e-3 {
			t.Errorf("predict(%v) = %v, want %v", row, got, y[i])
		}
	}
}

func TestFitMixedColumnScales(t *testing.T) {
	// One column at unit scale, one at volume scale. Shrinkage is relative
	// to each column's own diagonal, so the big column must not bias the
	// unit-scale coefficients.
	x := [][]float64{
		{1, 2e6}, {2, 1e6}, {3, 5e6}, {4, 2e6}, {5, 9e6},
		{0, 3e6}, {6, 4e6}, {7, 1e6}, {2, 6e6}, {8, 3e6},
	}
	y := make([]float64, len(x))
	for i, row := range x {
		y[i] = 2 + 3*row[0] + 4e-6*row[1]
	}

	m, err := Fit(x, y)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if math.Abs(m.Intercept-2) > 1e-4 {
		t.Errorf("intercept = %v, want 2", m.Intercept)
	}
	if math.Abs(m.Weights[0]-3) > 1e-4 {
		t.Errorf("w0 = %v, want 3", m.Weights[0])
	}
	if math.Abs(m.Weights[1]-4e-6) > 1e-9 {
		t.Errorf("w1 = %v, want 4e-6", m.Weights[1])
	}
}

func TestFitEmptyInput(t *testing.T) {
	_, err := Fit(nil, nil)
	if !errors.Is(err, ErrModelFit) {
		t.Fatalf("err = %v, want ErrModelFit", err)
	}
}

func TestFitMismatchedLengths(t *testing.T) {
	_, err := Fit([][]float64{{1}, {2}}, []float64{1})
	if !errors.Is(err, ErrModelFit) {
		t.Fatalf("err = %v, want ErrModelFit", err)
	}
}

func TestFitDeterministic(t *testing.T) {
	x := [][]float64{{1, 4}, {2, 3}, {3, 7}, {4, 1}, {5, 5}}
	y := []float64{10, 12, 19, 9, 17}

	a, err := Fit(x, y)
	if err != nil {
		t.Fatalf("first Fit failed: %v", err)
	}
	b, err := Fit(x, y)
	if err != nil {
		t.Fatalf("second Fit failed: %v", err)
	}
	if a.Intercept != b.Intercept {
		t.Errorf("intercepts differ: %v vs %v", a.Intercept, b.Intercept)
	}
	for i := range a.Weights {
		if a.Weights[i] != b.Weights[i] {
			t.Errorf("weight %d differs: %v vs %v", i, a.Weights[i], b.Weights[i])
		}
	}
}

func TestPredictBatch(t *testing.T) {
	m := &Model{Intercept: 1, Weights: []float64{2, -1}}
	got := m.PredictBatch([][]float64{{1, 1}, {3, 2}})
	want := []float64{2, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("batch[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
