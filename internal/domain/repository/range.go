package repository

// Range is a named lookback window for historical candle queries, using the
// provider's range vocabulary.
type Range string

const (
	Range1D  Range = "1d"
	Range5D  Range = "5d"
	Range1M  Range = "1mo"
	Range3M  Range = "3mo"
	Range6M  Range = "6mo"
	Range1Y  Range = "1y"
	Range2Y  Range = "2y"
	Range5Y  Range = "5y"
	Range10Y Range = "10y"
	RangeYTD Range = "ytd"
	RangeMax Range = "max"
)

// IsValidRange returns true if r is a supported range.
func IsValidRange(r Range) bool {
	switch r {
	case Range1D, Range5D, Range1M, Range3M, Range6M, Range1Y, Range2Y, Range5Y, Range10Y, RangeYTD, RangeMax:
		return true
	default:
		return false
	}
}

// DefaultRange returns the default lookback window.
func DefaultRange() Range { return Range6M }

// NormalizeRange converts a raw string to a valid range (or default).
func NormalizeRange(s string) Range {
	if s == "" {
		return DefaultRange()
	}
	r := Range(s)
	if IsValidRange(r) {
		return r
	}
	return DefaultRange()
}

// IntervalFor picks the candle interval matching a range so that a chart
// over that range has a sensible number of points.
func IntervalFor(r Range) string {
	switch r {
	case Range1D:
		return "5m"
	case Range5D:
		return "15m"
	case Range1M:
		return "1h"
	case Range5Y:
		return "1wk"
	case Range10Y, RangeMax:
		return "1mo"
	default:
		return "1d"
	}
}
