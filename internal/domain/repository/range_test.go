package repository

import "testing"

func TestNormalizeRange(t *testing.T) {
	cases := []struct {
		in   string
		want Range
	}{
		{"1d", Range1D},
		{"6mo", Range6M},
		{"max", RangeMax},
		{"", Range6M},
		{"bogus", Range6M},
		{"42y", Range6M},
	}
	for _, c := range cases {
		if got := NormalizeRange(c.in); got != c.want {
			t.Errorf("NormalizeRange(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIntervalFor(t *testing.T) {
	cases := []struct {
		r    Range
		want string
	}{
		{Range1D, "5m"},
		{Range5D, "15m"},
		{Range1M, "1h"},
		{Range6M, "1d"},
		{Range1Y, "1d"},
		{Range5Y, "1wk"},
		{RangeMax, "1mo"},
	}
	for _, c := range cases {
		if got := IntervalFor(c.r); got != c.want {
			t.Errorf("IntervalFor(%q) = %q, want %q", c.r, got, c.want)
		}
	}
}

func TestIsValidRange(t *testing.T) {
	if !IsValidRange(Range1Y) {
		t.Errorf("expected 1y to be valid")
	}
	if IsValidRange(Range("7w")) {
		t.Errorf("expected 7w to be invalid")
	}
}
