// Package pop seeds turtle populations: uniform random placement inside box
// bounds and feasible placement under linear constraints.
package pop

import (
	"math"

	"github.com/petar/GoLLRB/llrb"
	"gonum.org/v1/gonum/mat"

	tso "github.com/caseykneale/turtleswarmoptimization"
)

// New generates n randomly positioned points in the boxed bounds defined by
// low and up.  The number of dimensions is equal to len(low).  Returned
// points have their values initialized to +infinity.
func New(n int, low, up []float64) []tso.Point {
	if len(low) != len(up) {
		panic("low and up vectors are not same length")
	}

	ndims := len(low)

	points := make([]tso.Point, n)
	for i := 0; i < n; i++ {
		pos := make([]float64, ndims)
		for j := range pos {
			pos[j] = low[j] + tso.RandFloat()*(up[j]-low[j])
		}
		points[i] = tso.NewPoint(pos, math.Inf(1))
	}
	return points
}

type item struct {
	tso.Point
	howbad float64
}

func (p1 item) Less(than llrb.Item) bool {
	p2 := than.(item)
	return p1.howbad < p2.howbad
}

// StackConstr converts the two-sided linear constraints "low <= Ax <= up"
// into the one-sided form "stackA * x <= b".  ranges holds the interval
// width for each stacked row, for normalizing violation magnitudes.
func StackConstr(low, A, up *mat.Dense) (stackA, b *mat.Dense, ranges []float64) {
	m, n := A.Dims()
	stackA = mat.NewDense(2*m, n, nil)
	b = mat.NewDense(2*m, 1, nil)
	ranges = make([]float64, 2*m)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			stackA.Set(i, j, A.At(i, j))
			stackA.Set(m+i, j, -A.At(i, j))
		}
		b.Set(i, 0, up.At(i, 0))
		b.Set(m+i, 0, -low.At(i, 0))

		r := up.At(i, 0) - low.At(i, 0)
		if r == 0 {
			r = 1
		}
		ranges[i] = r
		ranges[m+i] = r
	}
	return stackA, b, ranges
}

// NewConstr tries to generate a random population of n feasible points
// satisfying the linear constraints "low <= Ax <= up". lb and ub define lower
// and upper box bounds for the variables.  NewConstr generates random points
// within the box bounds and keeps all feasible points.  It queues up the
// least unfavorable infeasible points in case n feasible ones cannot be found
// within maxiter.
func NewConstr(n, maxiter int, lb, ub []float64, low, A, up *mat.Dense) (points []tso.Point, nbad, iter int) {
	stackA, b, ranges := StackConstr(low, A, up)

	_, ndims := A.Dims()

	violaters := llrb.New()
	points = make([]tso.Point, 0, n)
	for i := 0; i < maxiter; i++ {
		// create point
		pos := make([]float64, ndims)
		for j := range pos {
			l, u := lb[j], ub[j]
			pos[j] = l + tso.RandFloat()*(u-l)
		}
		p := tso.NewPoint(pos, math.Inf(1))

		// check for constraint violations
		ax := &mat.Dense{}
		ax.Mul(stackA, mat.NewDense(ndims, 1, p.Pos()))
		m, _ := ax.Dims()
		howbad := 0.0
		for i := 0; i < m; i++ {
			if diff := ax.At(i, 0) - b.At(i, 0); diff > 0 {
				howbad += diff / ranges[i]
				break
			}
		}

		if howbad == 0 {
			points = append(points, p)
			if len(points) == n {
				return points, 0, i
			}
		} else {
			// add to tree
			violaters.InsertNoReplace(item{p, howbad})
			for violaters.Len() > n-len(points) {
				violaters.DeleteMax()
			}
		}
	}

	nbad = n - len(points)
	for len(points) < n {
		p := violaters.DeleteMin().(item).Point
		points = append(points, p)
	}

	return points, nbad, maxiter
}
