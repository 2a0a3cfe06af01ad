package tso

import (
	"crypto/sha1"

	"golang.org/x/sync/errgroup"
)

// SerialEvaler evaluates points sequentially in the order given.
type SerialEvaler struct {
	ContinueOnErr bool
}

func (ev SerialEvaler) Eval(obj Objectiver, points ...Point) (results []Point, n int, err error) {
	results = make([]Point, 0, len(points))
	for _, p := range points {
		val, err := obj.Objective(p.Pos())
		results = append(results, NewPoint(p.Pos(), val))
		if err != nil && !ev.ContinueOnErr {
			return results, len(results), &EvalError{Point: p, Err: err}
		}
	}
	return results, len(results), nil
}

// ParallelEvaler evaluates all points concurrently, one goroutine per point
// (bounded by NConcurrent if positive).  Safe for the swarm's step semantics
// because evalers only ever see a snapshot of positions; best-tracking
// happens after Eval returns.
type ParallelEvaler struct {
	// NConcurrent limits the number of in-flight evaluations.  Zero means
	// no limit.
	NConcurrent int
}

func (ev ParallelEvaler) Eval(obj Objectiver, points ...Point) (results []Point, n int, err error) {
	g := &errgroup.Group{}
	if ev.NConcurrent > 0 {
		g.SetLimit(ev.NConcurrent)
	}

	results = make([]Point, len(points))
	for i, p := range points {
		i, p := i, p
		g.Go(func() error {
			val, err := obj.Objective(p.Pos())
			results[i] = NewPoint(p.Pos(), val)
			if err != nil {
				return &EvalError{Point: p, Err: err}
			}
			return nil
		})
	}
	err = g.Wait()
	return results, len(points), err
}

// CacheEvaler wraps another Evaler and memoizes objective values keyed on
// the exact bit pattern of each position.
type CacheEvaler struct {
	ev    Evaler
	cache map[[sha1.Size]byte]float64
	// UseCount reports how many evaluations were served from the cache.
	UseCount int
}

func NewCacheEvaler(ev Evaler) *CacheEvaler {
	return &CacheEvaler{
		ev:    ev,
		cache: map[[sha1.Size]byte]float64{},
	}
}

func (ev *CacheEvaler) Eval(obj Objectiver, points ...Point) (results []Point, n int, err error) {
	fromnew := make([]int, 0, len(points))
	newp := make([]Point, 0, len(points))
	results = make([]Point, len(points))
	for i, p := range points {
		if val, ok := ev.cache[hashPoint(p)]; ok {
			results[i] = NewPoint(p.Pos(), val)
			ev.UseCount++
		} else {
			fromnew = append(fromnew, i)
			newp = append(newp, p)
		}
	}

	newresults, n, err := ev.ev.Eval(obj, newp...)
	for i, p := range newresults {
		ev.cache[hashPoint(p)] = p.Val
		results[fromnew[i]] = p
	}

	// An error may have cut the underlying evaluation short; only the
	// points actually evaluated (plus cache hits preceding them) are
	// returned.
	if len(newresults) < len(newp) {
		if len(newresults) == 0 {
			results = results[:fromnew[0]]
		} else {
			results = results[:fromnew[len(newresults)-1]+1]
		}
	}

	return results, n, err
}
