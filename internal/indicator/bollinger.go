package indicator

// Bands holds Bollinger band series aligned to the input closes.
type Bands struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// Bollinger computes rolling-mean ± width·rolling-std bands over the closes.
// All three series carry the usual window-1 NaN prefix.
func Bollinger(closes []float64, window int, width float64) Bands {
	mean := RollingMean(closes, window)
	std := RollingStd(closes, window)

	upper := undefined(len(closes))
	lower := undefined(len(closes))
	for i := range closes {
		if IsDefined(mean[i]) && IsDefined(std[i]) {
			upper[i] = mean[i] + width*std[i]
			lower[i] = mean[i] - width*std[i]
		}
	}
	return Bands{Upper: upper, Middle: mean, Lower: lower}
}
