package indicators

import "math"

// SMA computes the simple moving average over the trailing period. The
// first period-1 positions are NaN since the window is incomplete.
func SMA(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMA computes the exponential moving average seeded with the SMA of the
// first period values.
func EMA(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	seed := 0.0
	for _, v := range values[:period] {
		seed += v
	}
	seed /= float64(period)
	out[period-1] = seed

	k := 2.0 / float64(period+1)
	prev := seed
	for i := period; i < len(values); i++ {
		prev = values[i]*k + prev*(1-k)
		out[i] = prev
	}
	return out
}

// RSI computes the relative strength index with Wilder smoothing. An
// all-gain window yields 100, an all-loss window 0.
func RSI(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) <= period {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		d := values[i] - values[i-1]
		if d > 0 {
			avgGain += d
		} else {
			avgLoss -= d
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(values); i++ {
		d := values[i] - values[i-1]
		gain, loss := 0.0, 0.0
		if d > 0 {
			gain = d
		} else {
			loss = -d
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// Bands holds Bollinger band series.
type Bands struct {
	Middle Series `json:"middle"`
	Upper  Series `json:"upper"`
	Lower  Series `json:"lower"`
}

// Bollinger computes bands at width stddevs around the SMA, using the
// population standard deviation of each window.
func Bollinger(values []float64, period int, width float64) Bands {
	b := Bands{
		Middle: SMA(values, period),
		Upper:  nanSlice(len(values)),
		Lower:  nanSlice(len(values)),
	}
	if period <= 0 || len(values) < period {
		return b
	}
	for i := period - 1; i < len(values); i++ {
		mean := b.Middle[i]
		variance := 0.0
		for j := i - period + 1; j <= i; j++ {
			d := values[j] - mean
			variance += d * d
		}
		sd := math.Sqrt(variance / float64(period))
		b.Upper[i] = mean + width*sd
		b.Lower[i] = mean - width*sd
	}
	return b
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
