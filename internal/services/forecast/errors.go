package forecast

import "errors"

var (
	// ErrInsufficientData means the series is too short to build the
	// lookback features, at least one labeled example per partition, and
	// the reserved inference row.
	ErrInsufficientData = errors.New("forecast: insufficient data")

	// ErrModelFit means the training partition was too degenerate for a
	// stable least-squares solution.
	ErrModelFit = errors.New("forecast: model fit failed")

	// ErrComputation means NaN or Inf showed up in the inputs or the
	// pipeline outputs; the result would be numeric garbage.
	ErrComputation = errors.New("forecast: non-finite computation")
)

// IsUnavailable reports whether err is one of the pipeline's recoverable
// failures, i.e. the caller should render "forecast unavailable" rather
// than treat it as a fault.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrModelFit) ||
		errors.Is(err, ErrComputation)
}
