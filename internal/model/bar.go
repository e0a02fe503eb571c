package model

import "time"

// Bar represents a single daily candlestick bar.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Closes extracts the close prices from a bar series.
func Closes(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

// Dates extracts the bar timestamps from a bar series.
func Dates(bars []Bar) []time.Time {
	dates := make([]time.Time, len(bars))
	for i, b := range bars {
		dates[i] = b.Time
	}
	return dates
}

// PriceRange returns the lowest Low and highest High across the series.
// Both are zero for an empty series.
func PriceRange(bars []Bar) (low, high float64) {
	if len(bars) == 0 {
		return 0, 0
	}
	low = bars[0].Low
	high = bars[0].High
	for _, b := range bars[1:] {
		if b.Low < low {
			low = b.Low
		}
		if b.High > high {
			high = b.High
		}
	}
	return low, high
}

// TotalVolume sums the traded volume across the series.
func TotalVolume(bars []Bar) float64 {
	total := 0.0
	for _, b := range bars {
		total += b.Volume
	}
	return total
}
