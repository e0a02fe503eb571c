package profile

import (
	"sort"

	"chipchart/internal/model"
)

// Distribute allocates each bar's volume across the grid buckets its
// [Low, High] range touches, split evenly across the touched buckets. The
// even split models a day's volume as equally likely to have traded at any
// price the day's range covered.
//
// The histogram is aligned index-for-index with the grid's buckets. Bars
// with zero volume contribute nothing. When the grid spans every bar's
// range, the histogram sums to the series' total volume.
func Distribute(bars []model.Bar, grid Grid) []float64 {
	n := grid.Buckets()
	hist := make([]float64, n)
	if n == 0 {
		return hist
	}

	for _, b := range bars {
		if b.Volume <= 0 {
			continue
		}

		lo := bucketOf(grid.Edges, b.Low)
		// Last bucket reached by the high: the bucket below the first edge
		// at or above it.
		hi := sort.SearchFloat64s(grid.Edges, b.High) - 1

		// Clamp at the grid extremes; a capped tick grid or rounding can
		// push either index out of range.
		lo = clamp(lo, 0, n-1)
		hi = clamp(hi, 0, n-1)
		if hi < lo {
			hi = lo // always touch at least one bucket
		}

		share := b.Volume / float64(hi-lo+1)
		for i := lo; i <= hi; i++ {
			hist[i] += share
		}
	}
	return hist
}

// bucketOf returns the index of the bucket containing price: the bucket
// whose left edge is the last edge not exceeding it.
func bucketOf(edges []float64, price float64) int {
	i := sort.SearchFloat64s(edges, price) // first edge >= price
	if i < len(edges) && edges[i] == price {
		return i
	}
	return i - 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
