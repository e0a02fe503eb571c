package profile

import "errors"

// ErrEmptyHistogram is returned when there are no buckets to summarize.
// An empty bar series must be rejected before reaching this point.
var ErrEmptyHistogram = errors.New("profile: empty histogram")

// PointOfControl returns the midpoint price and index of the bucket with the
// maximum volume. Ties resolve to the lowest-priced bucket.
func PointOfControl(hist []float64, grid Grid) (price float64, bucket int, err error) {
	if len(hist) == 0 || grid.Buckets() < len(hist) {
		return 0, 0, ErrEmptyHistogram
	}
	maxIdx := 0
	for i, v := range hist {
		if v > hist[maxIdx] {
			maxIdx = i
		}
	}
	return grid.BucketMid(maxIdx), maxIdx, nil
}
