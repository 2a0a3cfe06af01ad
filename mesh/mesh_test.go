package mesh

import (
	"math"
	"testing"
)

type neartest struct {
	Step       float64
	Point, Exp []float64
}

var neartests = []neartest{
	{
		Step:  1.3,
		Point: []float64{0.1, 0.1},
		Exp:   []float64{0.0, 0.0},
	},
	{
		Step:  1.3,
		Point: []float64{1.0, 1.0},
		Exp:   []float64{1.3, 1.3},
	},
	{
		Step:  1.3,
		Point: []float64{1.9, 1.9},
		Exp:   []float64{1.3, 1.3},
	},
	{
		Step:  1.3,
		Point: []float64{-1.0, 2.1},
		Exp:   []float64{-1.3, 2.6},
	},
}

func TestInfiniteNearest(t *testing.T) {
	maxulps := uint64(4)

	for i, prob := range neartests {
		sm := &Infinite{Step: prob.Step}
		got := sm.Nearest(prob.Point)
		t.Logf("prob %v:", i)
		for j := range got {
			if diff := diffInUlps(got[j], prob.Exp[j]); diff > maxulps {
				t.Errorf("    v[%v]=%v: got %v, expected %v", j, prob.Point[j], got[j], prob.Exp[j])
			} else {
				t.Logf("    v[%v]=%v: got %v", j, prob.Point[j], got[j])
			}
		}
	}
}

func TestInfiniteContinuous(t *testing.T) {
	sm := &Infinite{}
	p := []float64{1.234, -9.87, 0}
	got := sm.Nearest(p)
	for i := range p {
		if got[i] != p[i] {
			t.Errorf("v[%v]: got %v, expected %v", i, got[i], p[i])
		}
	}
}

func TestBoundedNearest(t *testing.T) {
	low := []float64{-1, -1}
	up := []float64{1, 1}
	m := NewBounded(&Infinite{}, low, up)

	p := []float64{-3.5, 0.25}
	exp := []float64{-1, 0.25}
	got := m.Nearest(p)
	for i := range got {
		if got[i] != exp[i] {
			t.Errorf("v[%v]=%v: got %v, expected %v", i, p[i], got[i], exp[i])
		}
	}
}

func diffInUlps(x, y float64) uint64 {
	switch {
	case math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0):
		return math.MaxInt64
	case x == y:
		return 0
	default:
		xi := math.Float64bits(x)
		yi := math.Float64bits(y)
		if xi > yi {
			return xi - yi
		}
		return yi - xi
	}
}
