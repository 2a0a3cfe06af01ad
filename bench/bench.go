// Package bench provides benchmark optimization functions from
// http://en.wikipedia.org/wiki/Test_functions_for_optimization along with a
// stepwise driver for exercising solvers against them.
package bench

import (
	"fmt"
	"math"

	tso "github.com/caseykneale/turtleswarmoptimization"
	"github.com/caseykneale/turtleswarmoptimization/mesh"
)

var (
	sin  = math.Sin
	abs  = math.Abs
	sqrt = math.Sqrt
)

var AllFuncs = []Func{
	Parabola{NDim: 1},
	Parabola{NDim: 2},
	Ackley{},
	Eggholder{},
	Styblinski{NDim: 1},
	Styblinski{NDim: 10},
	Rosenbrock{NDim: 2},
	Rosenbrock{NDim: 10},
}

type Func interface {
	Eval(v []float64) float64
	Bounds() (low, up []float64)
	Optima() []tso.Point
	Name() string
}

// Parabola is the n-dimensional sum of squares - the gentlest possible
// benchmark and the traditional first meal of a turtle swarm.
type Parabola struct {
	NDim int
}

func (fn Parabola) Name() string { return fmt.Sprintf("Parabola_%vD", fn.NDim) }

func (fn Parabola) Eval(x []float64) float64 {
	if !InsideBounds(x, fn) {
		return math.Inf(1)
	}

	tot := 0.0
	for _, v := range x {
		tot += v * v
	}
	return tot
}

func (fn Parabola) Bounds() (low, up []float64) {
	low = make([]float64, fn.NDim)
	up = make([]float64, fn.NDim)
	for i := range low {
		low[i] = -1
		up[i] = 1
	}
	return low, up
}

func (fn Parabola) Optima() []tso.Point {
	return []tso.Point{
		tso.NewPoint(make([]float64, fn.NDim), 0),
	}
}

type Ackley struct{}

func (fn Ackley) Name() string { return "Ackley" }

func (fn Ackley) Eval(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(1)
	}

	x := v[0]
	y := v[1]
	return -20*math.Exp(-0.2*math.Sqrt(0.5*(x*x+y*y))) -
		math.Exp(0.5*(math.Cos(2*math.Pi*x)+math.Cos(2*math.Pi*y))) +
		20 + math.E
}

func (fn Ackley) Bounds() (low, up []float64) {
	return []float64{-5, -5}, []float64{5, 5}
}

func (fn Ackley) Optima() []tso.Point {
	return []tso.Point{
		tso.NewPoint([]float64{0, 0}, 0),
	}
}

type Eggholder struct{}

func (fn Eggholder) Name() string { return "Eggholder" }

func (fn Eggholder) Eval(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(1)
	}

	x := v[0]
	y := v[1]
	return -(y+47)*sin(sqrt(abs(y+x/2+47))) - x*sin(sqrt(abs(x-(y+47))))
}

func (fn Eggholder) Bounds() (low, up []float64) {
	return []float64{-512, -512}, []float64{512, 512}
}

func (fn Eggholder) Optima() []tso.Point {
	return []tso.Point{
		tso.NewPoint([]float64{512, 404.2319}, -959.6407),
	}
}

type Styblinski struct {
	NDim int
}

func (fn Styblinski) Name() string { return fmt.Sprintf("Styblinski_%vD", fn.NDim) }

func (fn Styblinski) Eval(x []float64) float64 {
	if !InsideBounds(x, fn) {
		return math.Inf(1)
	}

	tot := 0.0
	for _, v := range x {
		tot += math.Pow(v, 4) - 16*math.Pow(v, 2) + 5*v
	}
	return tot / 2
}

func (fn Styblinski) Bounds() (low, up []float64) {
	low = make([]float64, fn.NDim)
	up = make([]float64, fn.NDim)
	for i := range low {
		low[i] = -5
		up[i] = 5
	}
	return low, up
}

func (fn Styblinski) Optima() []tso.Point {
	pos := make([]float64, fn.NDim)
	for i := range pos {
		pos[i] = -2.903534
	}
	return []tso.Point{
		tso.NewPoint(pos, -39.16599*float64(fn.NDim)),
	}
}

type Rosenbrock struct {
	NDim int
}

func (fn Rosenbrock) Name() string { return fmt.Sprintf("Rosenbrock_%vD", fn.NDim) }

func (fn Rosenbrock) Eval(x []float64) float64 {
	if !InsideBounds(x, fn) {
		return math.Inf(1)
	}

	tot := 0.0
	for i := 0; i < fn.NDim-1; i++ {
		tot += 100*math.Pow(x[i+1]-x[i]*x[i], 2) + math.Pow(x[i]-1, 2)
	}
	return tot
}

func (fn Rosenbrock) Bounds() (low, up []float64) {
	low = make([]float64, fn.NDim)
	up = make([]float64, fn.NDim)
	for i := range low {
		low[i] = -1000
		up[i] = 1000
	}
	return low, up
}

func (fn Rosenbrock) Optima() []tso.Point {
	pos := make([]float64, fn.NDim)
	for i := range pos {
		pos[i] = 1
	}
	return []tso.Point{
		tso.NewPoint(pos, 0),
	}
}

// Benchmark drives it against fn one iteration at a time until the best
// value is within tol of the known optimum or the evaluation budget is
// spent.  The budget lives here, in the caller's loop - Solver.Run carries
// none.
func Benchmark(it tso.Iterator, fn Func, tol float64, maxeval int) (best tso.Point, neval int, err error) {
	obj := tso.Func(fn.Eval)
	optimum := fn.Optima()[0].Val
	thresh := tol * abs(optimum)
	if 0.001 > thresh {
		thresh = 0.001
	}

	low, up := fn.Bounds()
	m := mesh.NewBounded(&mesh.Infinite{}, low, up)

	for neval < maxeval {
		var n int
		best, n, err = it.Iterate(obj, m)
		neval += n
		if err != nil {
			return best, neval, err
		} else if abs(optimum-best.Val) < thresh {
			return best, neval, nil
		}
	}
	return best, neval, nil
}

func InsideBounds(p []float64, fn Func) bool {
	low, up := fn.Bounds()
	for i := range p {
		if p[i] < low[i] || p[i] > up[i] {
			return false
		}
	}
	return true
}
