// Package tso implements the turtle swarm optimization (TSO) algorithm - a
// particle swarm variant where every velocity adjustment has a fixed,
// deliberately tiny magnitude.  Turtles move slowly and methodically; the
// library makes no attempt to hurry them.
//
// The root package holds the vocabulary shared by the sub-packages:
// objective functions, evaluation strategies, and the Solver run loop.  The
// swarm itself lives in the turtle package.
package tso

import (
	"fmt"

	"github.com/caseykneale/turtleswarmoptimization/mesh"
)

type Objectiver interface {
	// Objective evaluates the variables in v and returns the objective
	// function value.  The objective function must be framed so that lower
	// values are better.  If the evaluation fails, positive infinity should
	// be returned along with an error.
	Objective(v []float64) (float64, error)
}

// Func adapts a plain function to the Objectiver interface.
type Func func([]float64) float64

func (f Func) Objective(v []float64) (float64, error) { return f(v), nil }

type Evaler interface {
	// Eval evaluates each point using obj and returns the values and number
	// of function evaluations n.  Unevaluated points should not be returned
	// in the results slice.
	Eval(obj Objectiver, points ...Point) (results []Point, n int, err error)
}

// Iterator is implemented by solvers that advance a population one iteration
// at a time.
type Iterator interface {
	// Iterate runs a single iteration of a solver and reports the number of
	// function evaluations n and the best point.
	Iterate(obj Objectiver, m mesh.Mesh) (best Point, n int, err error)

	// AddPoint injects a previously evaluated point as a candidate best.
	AddPoint(p Point)
}

// ObjectivePrinter wraps an Objectiver and prints every evaluation to
// stdout.  It is a debugging aid for callers; nothing in this library
// attaches one on its own.
type ObjectivePrinter struct {
	Objectiver
	Count int
}

func NewObjectivePrinter(obj Objectiver) *ObjectivePrinter {
	return &ObjectivePrinter{Objectiver: obj}
}

func (op *ObjectivePrinter) Objective(v []float64) (float64, error) {
	val, err := op.Objectiver.Objective(v)

	op.Count++
	fmt.Print(op.Count, " ")
	for _, x := range v {
		fmt.Print(x, " ")
	}
	fmt.Println("    ", val)

	return val, err
}

// Nearest returns a copy of p with its position projected onto m.  A nil
// mesh leaves the position untouched.
func Nearest(p Point, m mesh.Mesh) Point {
	if m == nil {
		return NewPoint(p.Pos(), p.Val)
	}
	return NewPoint(m.Nearest(p.Pos()), p.Val)
}
