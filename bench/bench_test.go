package bench_test

import (
	"math/rand"
	"testing"

	tso "github.com/caseykneale/turtleswarmoptimization"
	"github.com/caseykneale/turtleswarmoptimization/bench"
	"github.com/caseykneale/turtleswarmoptimization/mesh"
	"github.com/caseykneale/turtleswarmoptimization/turtle"
)

const maxeval = 10000

const seed = 7

// A swarm with an honest (default) velocity constant would outlive the test
// runner by a comfortable margin, so the benchmarks discuss the matter with
// the turtles first and scale the constant to the problem.
func buildIter(fn bench.Func) *turtle.Iterator {
	low, up := fn.Bounds()
	vconst := (up[0] - low[0]) / 1000

	n := 30 + 1*len(low)
	if n > maxeval/150 {
		n = maxeval / 150
	}

	pop, err := turtle.NewPopulationRand(n, low, up, vconst)
	if err != nil {
		panic(err.Error())
	}
	return turtle.NewIterator(nil, pop, turtle.Velocity(vconst))
}

func TestBenchFuncs(t *testing.T) {
	for _, fn := range bench.AllFuncs {
		tso.Rand = rand.New(rand.NewSource(seed))
		optimum := fn.Optima()[0].Val
		it := buildIter(fn)

		best, neval, err := bench.Benchmark(it, fn, .01, maxeval)
		if err != nil {
			t.Errorf("[FAIL:%v] %v evals: optimum is %v, got %v: %v", fn.Name(), neval, optimum, best.Val, err)
		} else if neval < maxeval {
			t.Logf("[pass:%v] %v evals: optimum is %v, got %v", fn.Name(), neval, optimum, best.Val)
		} else {
			t.Logf("[slow:%v] budget spent: optimum is %v, got %v", fn.Name(), optimum, best.Val)
		}
	}
}

// The original turtle contract, end to end: no iteration cap, no eval
// budget - the run ends when (and only when) the goal predicate is
// satisfied.
func TestSolverParabola(t *testing.T) {
	tso.Rand = rand.New(rand.NewSource(seed))

	fn := bench.Parabola{NDim: 1}
	low, up := fn.Bounds()
	goal := 5e-2

	pop, err := turtle.NewPopulationRand(33, low, up, 0.005)
	if err != nil {
		t.Fatal(err)
	}

	s := &tso.Solver{
		Iter: turtle.NewIterator(nil, pop, turtle.Velocity(0.005)),
		Obj:  tso.Func(fn.Eval),
		Mesh: mesh.NewBounded(&mesh.Infinite{}, low, up),
		Conv: tso.GoalConverger(goal),
	}

	best, niter, err := s.Run()
	if err != nil {
		t.Fatal(err)
	}
	if !s.Converged() {
		t.Fatal("run returned without converging")
	}
	if best.Val > goal {
		t.Errorf("converged best %v is above goal %v", best.Val, goal)
	}
	t.Logf("33 turtles performed %v optimizer iterations (best %v at %v)", niter, best.Val, best.Pos())
}
