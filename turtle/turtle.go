// Package turtle implements the swarm core of the turtle swarm optimizer.
//
// Turtles are similar to particles in particle swarm optimization
// strategies: each tracks a position, a velocity, and its personal best.
// Unlike particles, turtles deviate from Kennedy and Eberhart in that the
// velocity update carries no social or personal motivation constants and no
// random jitter - every pull has the same fixed magnitude.  We aren't sure
// exactly what motivates turtles, so we favor neither in any sense.
package turtle

import (
	"math"

	"gonum.org/v1/gonum/mat"

	tso "github.com/caseykneale/turtleswarmoptimization"
	"github.com/caseykneale/turtleswarmoptimization/pop"
)

// DefaultVelocity is the magnitude of every velocity adjustment: the IEEE
// 754 double-precision machine epsilon.  Turtles move slowly and
// methodically - whatever you do, don't change this parameter.  Especially
// do not raise its value, or you will lose all of the advantages of the
// turtle swarm optimizer.  The Velocity option exists for callers who have
// discussed the matter and accept the consequences.
const DefaultVelocity = 0x1p-52

type Turtle struct {
	Id int
	tso.Point
	Vel  []float64
	Best tso.Point
}

// Pull returns the velocity adjustment for one dimension: a fixed-magnitude
// pull toward the personal best plus a fixed-magnitude pull toward the
// global best.  Each term contributes exactly +/-vconst depending only on
// the sign of the corresponding difference; the magnitude is never scaled
// by distance.  A zero difference contributes nothing, so a turtle sitting
// exactly on both bests keeps its current velocity unchanged - it coasts
// through and gets pulled back on the far side.
func Pull(x, pbest, gbest, vconst float64) float64 {
	return vconst*sign(pbest-x) + vconst*sign(gbest-x)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Move updates the turtle's velocity against the given global best snapshot
// and then advances its position by the new velocity.  Positions are not
// clamped; bounds only ever constrain initial placement.
func (t *Turtle) Move(gbest tso.Point, vconst float64) {
	for i := range t.Vel {
		t.Vel[i] += Pull(t.At(i), t.Best.At(i), gbest.At(i), vconst)
	}

	pos := make([]float64, t.Len())
	for i := range pos {
		pos[i] = t.At(i) + t.Vel[i]
	}
	t.Point = tso.NewPoint(pos, math.Inf(1))
}

// Update records the objective value for the turtle's current position,
// improving its personal best on strictly better values.
func (t *Turtle) Update(newp tso.Point) {
	// DO NOT update t's position with newp's position - it may have been
	// projected onto a mesh and be different.
	t.Val = newp.Val
	if t.Val < t.Best.Val {
		t.Best = newp
	}
}

type Population []*Turtle

// NewPopulation initializes a population of turtles at the given points.
// Every velocity component is set to vconst with an arbitrary (random)
// sign.  Personal bests start at +infinity so the first evaluation always
// claims them.
func NewPopulation(points []tso.Point, vconst float64) (Population, error) {
	if err := checkVelocity(vconst); err != nil {
		return nil, err
	}
	if len(points) < 1 {
		return nil, &tso.ConfigError{Field: "population size", Reason: "must be at least 1"}
	}

	ndims := points[0].Len()
	popn := make(Population, len(points))
	for i, p := range points {
		if p.Len() != ndims {
			return nil, &tso.ConfigError{Field: "points", Reason: "mixed dimensionality"}
		}
		popn[i] = &Turtle{
			Id:    i,
			Point: tso.NewPoint(p.Pos(), math.Inf(1)),
			Best:  tso.NewPoint(p.Pos(), math.Inf(1)),
			Vel:   make([]float64, ndims),
		}
		for j := range popn[i].Vel {
			if tso.RandFloat() < 0.5 {
				popn[i].Vel[j] = -vconst
			} else {
				popn[i].Vel[j] = vconst
			}
		}
	}
	return popn, nil
}

// NewPopulationRand creates a population of n turtles uniformly distributed
// in the box-bounds described by low and up.
func NewPopulationRand(n int, low, up []float64, vconst float64) (Population, error) {
	if n < 1 {
		return nil, &tso.ConfigError{Field: "population size", Reason: "must be at least 1"}
	}
	if err := checkBounds(low, up); err != nil {
		return nil, err
	}
	return NewPopulation(pop.New(n, low, up), vconst)
}

// NewPopulationConstr creates a population of n turtles placed inside the
// box bounds lb/ub and (as far as maxiter random draws allow) satisfying
// the linear constraints "low <= Ax <= up".  nbad reports how many turtles
// had to settle for a least-infeasible position.
func NewPopulationConstr(n, maxiter int, lb, ub []float64, low, A, up *mat.Dense, vconst float64) (popn Population, nbad int, err error) {
	if n < 1 {
		return nil, 0, &tso.ConfigError{Field: "population size", Reason: "must be at least 1"}
	}
	if err := checkBounds(lb, ub); err != nil {
		return nil, 0, err
	}

	points, nbad, _ := pop.NewConstr(n, maxiter, lb, ub, low, A, up)
	popn, err = NewPopulation(points, vconst)
	return popn, nbad, err
}

func (pop Population) Points() []tso.Point {
	points := make([]tso.Point, 0, len(pop))
	for _, t := range pop {
		points = append(points, t.Point)
	}
	return points
}

// Best returns the turtle whose personal best is lowest.
func (pop Population) Best() *Turtle {
	if len(pop) == 0 {
		return nil
	}

	best := pop[0]
	for _, t := range pop[1:] {
		if t.Best.Val < best.Best.Val {
			best = t
		}
	}
	return best
}

func checkVelocity(vconst float64) error {
	if math.IsNaN(vconst) || math.IsInf(vconst, 0) || vconst <= 0 {
		return &tso.ConfigError{Field: "velocity constant", Reason: "must be a positive finite value"}
	}
	return nil
}

func checkBounds(low, up []float64) error {
	if len(low) < 1 {
		return &tso.ConfigError{Field: "dimensions", Reason: "must be at least 1"}
	}
	if len(low) != len(up) {
		return &tso.ConfigError{Field: "bounds", Reason: "low and up vectors are not same length"}
	}
	for i := range low {
		if math.IsNaN(low[i]) || math.IsNaN(up[i]) {
			return &tso.ConfigError{Field: "bounds", Reason: "NaN bound"}
		}
		if low[i] > up[i] {
			return &tso.ConfigError{Field: "bounds", Reason: "lower bound above upper bound"}
		}
	}
	return nil
}
