package forecast

import (
	"fmt"
	"math"
)

// ridgeScale is the relative Tikhonov term added to each normal-equation
// diagonal entry. Strongly trending series make the lagged closes exactly
// collinear; the tiny ridge keeps the system solvable and the solution
// deterministic. It is applied per column, relative to that column's own
// diagonal, because the columns span wildly different scales (volume runs
// orders of magnitude above price) and a shared trace-based term would
// drown the price coefficients. ridgeFloor covers all-zero columns.
const (
	ridgeScale = 1e-9
	ridgeFloor = 1e-12
)

// Model is a fitted linear regression over feature rows. Immutable once
// produced; owned by a single forecast invocation.
type Model struct {
	Intercept float64
	Weights   []float64
}

// Fit solves ordinary least squares with intercept on the training
// partition via the normal equations. It is deterministic for identical
// inputs and returns ErrModelFit when the system is too degenerate to
// solve.
func Fit(x [][]float64, y []float64) (*Model, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d rows, %d targets", ErrModelFit, len(x), len(y))
	}
	width := len(x[0])
	p := width + 1 // intercept column first

	// a = X'X, b = X'y over the intercept-augmented design matrix.
	a := make([][]float64, p)
	for i := range a {
		a[i] = make([]float64, p)
	}
	b := make([]float64, p)
	for r, row := range x {
		if len(row) != width {
			return nil, fmt.Errorf("%w: ragged row %d", ErrModelFit, r)
		}
		for i := 0; i < p; i++ {
			xi := 1.0
			if i > 0 {
				xi = row[i-1]
			}
			b[i] += xi * y[r]
			for j := i; j < p; j++ {
				xj := 1.0
				if j > 0 {
					xj = row[j-1]
				}
				a[i][j] += xi * xj
			}
		}
	}
	for i := 0; i < p; i++ {
		for j := 0; j < i; j++ {
			a[i][j] = a[j][i]
		}
	}

	for i := 0; i < p; i++ {
		d := a[i][i]
		if !isFinite(d) {
			return nil, fmt.Errorf("%w: degenerate design matrix", ErrModelFit)
		}
		a[i][i] = d + ridgeScale*d + ridgeFloor
	}

	w, err := solve(a, b)
	if err != nil {
		return nil, err
	}
	for _, v := range w {
		if !isFinite(v) {
			return nil, fmt.Errorf("%w: non-finite coefficients", ErrModelFit)
		}
	}
	return &Model{Intercept: w[0], Weights: w[1:]}, nil
}

// Predict applies the model to one feature row.
func (m *Model) Predict(row []float64) float64 {
	v := m.Intercept
	for i, w := range m.Weights {
		v += w * row[i]
	}
	return v
}

// PredictBatch applies the model to every row.
func (m *Model) PredictBatch(rows [][]float64) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = m.Predict(row)
	}
	return out
}

// solve runs Gaussian elimination with partial pivoting on a copy of the
// inputs.
func solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	m := make([][]float64, n)
	for i := range a {
		m[i] = append([]float64(nil), a[i]...)
	}
	v := append([]float64(nil), b...)

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) < 1e-300 {
			return nil, fmt.Errorf("%w: singular system at column %d", ErrModelFit, col)
		}
		m[col], m[pivot] = m[pivot], m[col]
		v[col], v[pivot] = v[pivot], v[col]

		for r := col + 1; r < n; r++ {
			f := m[r][col] / m[col][col]
			if f == 0 {
				continue
			}
			for c := col; c < n; c++ {
				m[r][c] -= f * m[col][c]
			}
			v[r] -= f * v[col]
		}
	}

	out := make([]float64, n)
	for r := n - 1; r >= 0; r-- {
		sum := v[r]
		for c := r + 1; c < n; c++ {
			sum -= m[r][c] * out[c]
		}
		out[r] = sum / m[r][r]
	}
	return out, nil
}
