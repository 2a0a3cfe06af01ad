package tso

import (
	"math"

	"github.com/caseykneale/turtleswarmoptimization/mesh"
)

// ConvergeFunc decides when a run is finished.  It is evaluated once per
// completed iteration and is the ONLY condition under which Run returns
// successfully - there is no iteration cap, no timeout, and no cancellation
// hook to fall back on.  A predicate that can never become true keeps the
// turtles working forever.
type ConvergeFunc func(best Point, niter, neval int) bool

// GoalConverger returns a predicate satisfied once the best observed value
// reaches goal.  This mirrors the classic turtle contract: the swarm works
// until it reaches your goal, not until it gets tired.
func GoalConverger(goal float64) ConvergeFunc {
	return func(best Point, niter, neval int) bool {
		return best.Val <= goal
	}
}

// Solver drives an Iterator until its convergence predicate is satisfied.
// Once converged the solver is terminal: Next returns false forever and the
// final state is frozen.
type Solver struct {
	Iter Iterator
	Obj  Objectiver
	// Mesh, if non-nil, restricts where objective evaluations occur.  It
	// never constrains turtle positions themselves.
	Mesh mesh.Mesh
	Conv ConvergeFunc

	neval     int
	niter     int
	best      Point
	converged bool
	err       error
}

// Next runs one iteration and reports whether the solver can continue.  It
// returns false once the predicate has been satisfied or an evaluation has
// failed.  Callers that loop over Next themselves own their loop and may
// impose whatever extra budget they like; Run never does.
func (s *Solver) Next() bool {
	if s.converged || s.err != nil {
		return false
	}
	if s.best.Len() == 0 {
		s.best = Point{Val: math.Inf(1)}
	}

	best, n, err := s.Iter.Iterate(s.Obj, s.Mesh)
	s.neval += n
	if err != nil {
		s.err = err
		return false
	}
	s.niter++

	if best.Val < s.best.Val || s.best.Len() == 0 {
		s.best = best
	}

	if s.Conv != nil && s.Conv(s.best, s.niter, s.neval) {
		s.converged = true
	}
	return !s.converged
}

// Run blocks until the convergence predicate is satisfied and returns the
// best point observed at the first iteration where it became true.  The
// only other way out is an objective evaluation error, which propagates
// unchanged.
func (s *Solver) Run() (best Point, niter int, err error) {
	for s.Next() {
	}
	return s.best, s.niter, s.err
}

func (s *Solver) Best() Point { return s.best }

func (s *Solver) Niter() int { return s.niter }

func (s *Solver) Neval() int { return s.neval }

func (s *Solver) Converged() bool { return s.converged }

func (s *Solver) Err() error { return s.err }
