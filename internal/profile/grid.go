package profile

import "math"

// DefaultStepCap bounds tick grid generation so a bad tick table or an
// extreme price range cannot loop forever.
const DefaultStepCap = 12000

// DefaultBucketCount is the fixed-grid bucket count when none is given.
const DefaultBucketCount = 100

// Grid is an ordered, strictly increasing sequence of price bucket edges.
// Bucket i spans [Edges[i], Edges[i+1]); the last bucket is closed on both
// ends so the series maximum is always contained.
type Grid struct {
	Edges []float64
	// Capped reports that tick generation hit the step cap before reaching
	// the series high. The grid is still valid, but under-covers the top of
	// the range.
	Capped bool
}

// Buckets returns the number of price buckets.
func (g Grid) Buckets() int {
	if len(g.Edges) < 2 {
		return 0
	}
	return len(g.Edges) - 1
}

// BucketMid returns the midpoint price of bucket i.
func (g Grid) BucketMid(i int) float64 {
	return (g.Edges[i] + g.Edges[i+1]) / 2
}

// TickGrid builds edges from low to high using the exchange tick schedule:
// starting at low, each edge advances by the tick size at the current price,
// rounded to two decimals. Buckets are variable-width and match real
// order-book price levels.
func TickGrid(low, high float64, table TickTable, stepCap int) Grid {
	if stepCap <= 0 {
		stepCap = DefaultStepCap
	}
	if low >= high {
		return degenerateGrid(low, table.TickSize(low))
	}

	edges := make([]float64, 1, 256)
	edges[0] = low
	cur := low
	capped := false
	for steps := 0; cur < high; steps++ {
		if steps >= stepCap {
			capped = true
			break
		}
		cur = round2(cur + table.TickSize(cur))
		edges = append(edges, cur)
	}
	return Grid{Edges: edges, Capped: capped}
}

// FixedGrid builds n+1 equally spaced edges from low to high. Buckets are
// uniform-width; smoother than a tick grid but without price-level fidelity.
func FixedGrid(low, high float64, n int) Grid {
	if n <= 0 {
		n = DefaultBucketCount
	}
	if low >= high {
		return degenerateGrid(low, low*0.001)
	}

	edges := make([]float64, n+1)
	width := (high - low) / float64(n)
	for i := 0; i <= n; i++ {
		edges[i] = low + width*float64(i)
	}
	edges[n] = high // pin the top edge against float drift
	return Grid{Edges: edges}
}

// degenerateGrid frames a flat series (low == high) with a single bucket
// centered on the price, so the profile still has somewhere to put volume
// and the POC resolves to the price itself.
func degenerateGrid(price, step float64) Grid {
	half := step / 2
	if half <= 0 {
		half = 0.005
	}
	return Grid{Edges: []float64{price - half, price + half}}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
