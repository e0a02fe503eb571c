package profile

import (
	"math"
	"testing"
)

func TestTickGrid_Spans(t *testing.T) {
	g := TickGrid(95.5, 112.3, TWSE, 0)
	if g.Capped {
		t.Fatal("unexpected cap on a small range")
	}
	if g.Buckets() < 1 {
		t.Fatal("expected at least one bucket")
	}
	if g.Edges[0] > 95.5 {
		t.Errorf("first edge %.2f above series low", g.Edges[0])
	}
	if last := g.Edges[len(g.Edges)-1]; last < 112.3 {
		t.Errorf("last edge %.2f below series high", last)
	}
}

func TestTickGrid_StrictlyIncreasing(t *testing.T) {
	g := TickGrid(8.7, 1205, TWSE, 0)
	for i := 1; i < len(g.Edges); i++ {
		if g.Edges[i] <= g.Edges[i-1] {
			t.Fatalf("edges not strictly increasing at %d: %v <= %v", i, g.Edges[i], g.Edges[i-1])
		}
	}
}

func TestTickGrid_VariableWidth(t *testing.T) {
	// Crossing the 100 threshold the tick steps from 0.1 to 0.5.
	g := TickGrid(99.5, 101, TWSE, 0)
	wantEdges := []float64{99.5, 99.6, 99.7, 99.8, 99.9, 100, 100.5, 101}
	if len(g.Edges) != len(wantEdges) {
		t.Fatalf("got %d edges %v, want %d", len(g.Edges), g.Edges, len(wantEdges))
	}
	for i, want := range wantEdges {
		if math.Abs(g.Edges[i]-want) > 1e-9 {
			t.Errorf("edge %d = %v, want %v", i, g.Edges[i], want)
		}
	}
}

func TestTickGrid_StepCap(t *testing.T) {
	g := TickGrid(1, 1e9, TWSE, 50)
	if !g.Capped {
		t.Fatal("expected capped grid")
	}
	if got := len(g.Edges); got != 51 {
		t.Errorf("expected 51 edges under a 50 step cap, got %d", got)
	}
	if last := g.Edges[len(g.Edges)-1]; last >= 1e9 {
		t.Errorf("capped grid should stop short of the high, last edge %v", last)
	}
}

func TestTickGrid_Degenerate(t *testing.T) {
	g := TickGrid(100, 100, TWSE, 0)
	if g.Buckets() != 1 {
		t.Fatalf("expected one bucket, got %d", g.Buckets())
	}
	if mid := g.BucketMid(0); math.Abs(mid-100) > 1e-9 {
		t.Errorf("degenerate bucket midpoint = %v, want 100", mid)
	}
	if g.Edges[0] > 100 || g.Edges[1] < 100 {
		t.Errorf("degenerate bucket %v does not contain the price", g.Edges)
	}
}

func TestFixedGrid(t *testing.T) {
	g := FixedGrid(10, 20, 50)
	if g.Buckets() != 50 {
		t.Fatalf("expected 50 buckets, got %d", g.Buckets())
	}
	if g.Edges[0] != 10 || g.Edges[50] != 20 {
		t.Errorf("grid bounds = [%v, %v], want [10, 20]", g.Edges[0], g.Edges[50])
	}
	for i := 1; i < len(g.Edges); i++ {
		if g.Edges[i] <= g.Edges[i-1] {
			t.Fatalf("edges not strictly increasing at %d", i)
		}
	}
}

func TestFixedGrid_DefaultCount(t *testing.T) {
	g := FixedGrid(10, 20, 0)
	if g.Buckets() != DefaultBucketCount {
		t.Errorf("expected %d buckets, got %d", DefaultBucketCount, g.Buckets())
	}
}

func TestFixedGrid_Degenerate(t *testing.T) {
	g := FixedGrid(55, 55, 100)
	if g.Buckets() != 1 {
		t.Fatalf("expected one bucket, got %d", g.Buckets())
	}
	if mid := g.BucketMid(0); math.Abs(mid-55) > 1e-9 {
		t.Errorf("degenerate bucket midpoint = %v, want 55", mid)
	}
}
