package model

import "time"

// MASeries is one rolling moving-average series aligned to the input bars.
// Leading entries without enough history are NaN.
type MASeries struct {
	Window int
	Values []float64
}

// Indicators holds the per-date indicator series computed alongside a profile.
type Indicators struct {
	MovingAverages []MASeries
	BollingerUpper []float64
	BollingerLower []float64
}

// Result is the complete analysis output consumed by the rendering layer.
// Histogram[i] is the volume allocated to the price bucket
// [Edges[i], Edges[i+1]); it carries no formatting or layout information.
type Result struct {
	Symbol     string
	Dates      []time.Time
	Edges      []float64
	Histogram  []float64
	GridCapped bool // tick grid generation stopped at the step cap
	POCPrice   float64
	POCBucket  int
	Indicators Indicators
}
