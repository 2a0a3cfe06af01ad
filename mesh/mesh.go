package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Mesh is an interface for projecting arbitrary dimensional points onto some
// kind of (potentially discrete) mesh.
type Mesh interface {
	// Nearest returns the nearest mesh point to p.
	Nearest(p []float64) []float64
}

// Infinite is a grid-based, linear-axis mesh that extends in all dimensions
// without bounds.  The length of Origin defines the dimensionality of the
// mesh.  If Origin == nil, the dimensionality is set by the first call to
// Nearest.  If Basis == nil, a unit basis (the identity matrix) is used.  If
// Step == 0, then the mesh represents continuous space and the Nearest
// method just returns the point passed to it.
type Infinite struct {
	Origin []float64
	// Basis contains a set of row vectors defining the directions of each
	// mesh axis.
	Basis *mat.Dense
	// Step represents the discretization or grid size of the mesh.
	Step     float64
	inverter *mat.Dense
}

// Nearest returns the nearest grid point to p by rounding each dimensional
// position to the nearest grid point.  If the mesh basis is not the identity
// matrix, then p is transformed to the mesh basis before rounding and then
// retransformed back.
func (sm *Infinite) Nearest(p []float64) []float64 {
	if sm.Step == 0 {
		return append([]float64{}, p...)
	} else if l := len(sm.Origin); l != 0 && l != len(p) {
		panic(fmt.Sprintf("origin len %v incompatible with point len %v", l, len(p)))
	}

	// set up origin and inverter matrix if necessary
	if len(sm.Origin) == 0 {
		sm.Origin = make([]float64, len(p))
	}
	if sm.Basis != nil && sm.inverter == nil {
		sm.inverter = &mat.Dense{}
		if err := sm.inverter.Inverse(sm.Basis); err != nil {
			panic(err.Error())
		}
	}

	// translate p based on origin and transform to new vector space
	newp := make([]float64, len(p))
	for i := range newp {
		newp[i] = p[i] - sm.Origin[i]
	}
	rotv := mat.NewDense(len(p), 1, newp)
	if sm.inverter != nil {
		tmp := &mat.Dense{}
		tmp.Mul(sm.inverter, rotv)
		rotv = tmp
	}

	// calculate nearest point
	nearest := mat.NewDense(len(p), 1, nil)
	for i := range sm.Origin {
		n, rem := math.Modf(rotv.At(i, 0) / sm.Step)
		if math.Abs(rem) > 0.5 {
			n += math.Copysign(1, rem)
		}
		nearest.Set(i, 0, n*sm.Step)
	}

	// transform back to standard space
	if sm.Basis != nil {
		tmp := &mat.Dense{}
		tmp.Mul(sm.Basis, nearest)
		nearest = tmp
	}

	out := make([]float64, len(p))
	mat.Col(out, 0, nearest)
	for i := range out {
		out[i] += sm.Origin[i]
	}
	return out
}

// Bounded wraps another mesh and slides projections inside box bounds.  It
// only ever affects where objective evaluations occur - nothing in this
// library moves an agent back inside bounds once it has wandered out.
type Bounded struct {
	Lower []float64
	Upper []float64
	core  Mesh
}

func NewBounded(m Mesh, lower, upper []float64) *Bounded {
	if len(lower) != len(upper) {
		panic("mesh lower and upper bound vectors have different lengths")
	} else { // force panic if bounds lengths don't match mesh m's # dims
		m.Nearest(lower)
	}
	return &Bounded{
		Lower: lower,
		Upper: upper,
		core:  m,
	}
}

// Nearest returns the nearest bounded mesh point to p by sliding each
// dimensional position to the nearest value inside bounds and then
// projecting onto the wrapped mesh.
func (m *Bounded) Nearest(p []float64) []float64 {
	pdup := make([]float64, len(p))
	copy(pdup, p)
	for i := range pdup {
		pdup[i] = math.Max(m.Lower[i], pdup[i])
		pdup[i] = math.Min(m.Upper[i], pdup[i])
	}
	return m.core.Nearest(pdup)
}
