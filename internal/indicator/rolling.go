package indicator

import "math"

// RollingMean computes the simple moving average over a sliding window.
// The result is aligned to the input; the leading window-1 entries are NaN
// because there is not enough history to define them.
func RollingMean(values []float64, window int) []float64 {
	out := undefined(len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// RollingStd computes the rolling sample standard deviation (N-1 denominator)
// over a sliding window, aligned to the input with a NaN prefix like
// RollingMean. Windows shorter than 2 yield an all-NaN series.
func RollingStd(values []float64, window int) []float64 {
	out := undefined(len(values))
	if window < 2 || len(values) < window {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += values[j]
		}
		mean := sum / float64(window)

		variance := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := values[j] - mean
			variance += d * d
		}
		out[i] = math.Sqrt(variance / float64(window-1))
	}
	return out
}

// IsDefined reports whether an indicator value carries data. Undefined
// leading values are NaN, never zero, so downstream rendering can skip them.
func IsDefined(v float64) bool {
	return !math.IsNaN(v)
}

func undefined(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
