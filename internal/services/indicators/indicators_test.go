package indicators

import (
	"math"
	"testing"
)

func TestSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	got := SMA(values, 3)

	if !math.IsNaN(got[0]) || !math.IsNaN(got[1]) {
		t.Error("positions before the first full window must be NaN")
	}
	want := []float64{2, 3, 4}
	for i, w := range want {
		if math.Abs(got[i+2]-w) > 1e-12 {
			t.Errorf("sma[%d] = %v, want %v", i+2, got[i+2], w)
		}
	}
}

func TestSMATooShort(t *testing.T) {
	got := SMA([]float64{1, 2}, 5)
	for i, v := range got {
		if !math.IsNaN(v) {
			t.Errorf("sma[%d] = %v, want NaN", i, v)
		}
	}
}

func TestEMAConvergesToConstant(t *testing.T) {
	values := make([]float64, 50)
	for i := range values {
		values[i] = 10
	}
	got := EMA(values, 10)
	if math.Abs(got[49]-10) > 1e-9 {
		t.Errorf("ema of constant series = %v, want 10", got[49])
	}
}

func TestRSIAllGains(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	got := RSI(values, 14)
	last := got[len(got)-1]
	if math.Abs(last-100) > 1e-9 {
		t.Errorf("RSI of monotonic gains = %v, want 100", last)
	}
}

func TestRSIAllLosses(t *testing.T) {
	values := make([]float64, 16)
	for i := range values {
		values[i] = float64(100 - i)
	}
	got := RSI(values, 14)
	last := got[len(got)-1]
	if math.Abs(last) > 1e-9 {
		t.Errorf("RSI of monotonic losses = %v, want 0", last)
	}
}

func TestBollinger(t *testing.T) {
	values := []float64{2, 4, 6, 8, 10, 12}
	b := Bollinger(values, 5, 2)

	i := 4 // first full window: 2..10, mean 6, population sd sqrt(8)
	sd := math.Sqrt(8)
	if math.Abs(b.Middle[i]-6) > 1e-12 {
		t.Errorf("middle = %v, want 6", b.Middle[i])
	}
	if math.Abs(b.Upper[i]-(6+2*sd)) > 1e-12 {
		t.Errorf("upper = %v, want %v", b.Upper[i], 6+2*sd)
	}
	if math.Abs(b.Lower[i]-(6-2*sd)) > 1e-12 {
		t.Errorf("lower = %v, want %v", b.Lower[i], 6-2*sd)
	}
	if !math.IsNaN(b.Upper[0]) {
		t.Error("incomplete window must be NaN")
	}
}
