package indicators

import (
	"math"
	"strconv"
)

// Series is a float slice whose JSON form renders NaN entries as null.
// Incomplete indicator windows are NaN internally, but encoding/json
// rejects non-finite values outright.
type Series []float64

func (s Series) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	b := make([]byte, 0, len(s)*8+2)
	b = append(b, '[')
	for i, v := range s {
		if i > 0 {
			b = append(b, ',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			b = append(b, "null"...)
			continue
		}
		b = strconv.AppendFloat(b, v, 'f', -1, 64)
	}
	b = append(b, ']')
	return b, nil
}
