package turtle

import (
	"database/sql"
	"fmt"
	"math"

	tso "github.com/caseykneale/turtleswarmoptimization"
	"github.com/caseykneale/turtleswarmoptimization/mesh"
)

const (
	// TblTurtles is the name of the sql database table that contains
	// positions and values for turtles for each iteration.
	TblTurtles = "swarmturtles"
	// TblTurtlesMeshed is the name of the sql database table that contains
	// mesh-projected positions (where objective evaluations actually
	// occurred) and values for turtles for each iteration.
	TblTurtlesMeshed = "swarmturtlesmesh"
	// TblTurtlesBest is the name of the sql database table that contains
	// each turtle's personal best position at each iteration.
	TblTurtlesBest = "swarmturtlesbest"
	// TblBest is the name of the sql database table that contains
	// the best position for the entire swarm at each iteration.
	TblBest = "swarmbest"
)

type Option func(*Iterator)

// Velocity overrides the magnitude used for every velocity adjustment.
// The default is DefaultVelocity and should only be changed after
// discussion; see the warning there.  The override should match the
// constant the population's velocities were seeded with.
func Velocity(vconst float64) Option {
	return func(it *Iterator) {
		it.Vconst = vconst
	}
}

// DB records per-iteration swarm state into db.  This is observational
// output only - the optimizer never reads it back, and a nil db disables
// recording entirely.
func DB(db *sql.DB) Option {
	return func(it *Iterator) {
		it.Db = db
	}
}

// Iterator advances a turtle population one step at a time.  Each Iterate
// call evaluates every turtle's position, updates personal and global
// bests, and then moves every turtle against a snapshot of the global best
// taken before any turtle moved.  Turtles are never culled; the population
// size is fixed for the life of the swarm.
type Iterator struct {
	Pop Population
	tso.Evaler
	// Vconst is the fixed magnitude of every velocity adjustment.
	Vconst float64
	Db     *sql.DB
	count  int
	best   tso.Point
}

func NewIterator(e tso.Evaler, pop Population, opts ...Option) *Iterator {
	if e == nil {
		e = tso.SerialEvaler{}
	}

	it := &Iterator{
		Pop:    pop,
		Evaler: e,
		Vconst: DefaultVelocity,
		best:   pop.Best().Best,
	}

	for _, opt := range opts {
		opt(it)
	}

	it.initdb()
	return it
}

// AddPoint injects a previously evaluated point as a global-best candidate.
func (it *Iterator) AddPoint(p tso.Point) {
	if p.Val < it.best.Val {
		it.best = p
	}
}

// Best returns the best point observed so far across all turtles and
// iterations.  It is non-worsening from one iteration to the next.
func (it *Iterator) Best() tso.Point { return it.best }

func (it *Iterator) Iterate(obj tso.Objectiver, m mesh.Mesh) (best tso.Point, neval int, err error) {
	it.count++

	// project evaluation points onto the mesh; turtle positions themselves
	// stay wherever they have wandered
	points := it.Pop.Points()
	if m != nil {
		for i, p := range points {
			points[i] = tso.Nearest(p, m)
		}
	}

	// evaluate current positions
	results, n, err := it.Evaler.Eval(obj, points...)
	for i := range results {
		it.Pop[i].Update(results[i])
	}
	if err != nil {
		// no turtle moves on a failed iteration; personal bests already
		// claimed by a partial evaluation pass are kept
		return tso.Point{Val: math.Inf(1)}, n, err
	}

	// update the global best before anything moves so that every turtle
	// sees the same snapshot
	if tbest := it.Pop.Best(); tbest != nil && tbest.Best.Val < it.best.Val {
		it.best = tbest.Best
	}
	it.updateDb(m)

	gbest := it.best
	for _, t := range it.Pop {
		t.Move(gbest, it.Vconst)
	}

	return it.best, n, nil
}

func (it *Iterator) initdb() {
	if it.Db == nil {
		return
	}

	s := "CREATE TABLE IF NOT EXISTS " + TblTurtles + " (turtle INTEGER, iter INTEGER, val REAL"
	s += it.xdbsql("define")
	s += ");"

	_, err := it.Db.Exec(s)
	panicif(err)

	s = "CREATE TABLE IF NOT EXISTS " + TblTurtlesMeshed + " (turtle INTEGER, iter INTEGER, val REAL"
	s += it.xdbsql("define")
	s += ");"

	_, err = it.Db.Exec(s)
	panicif(err)

	s = "CREATE TABLE IF NOT EXISTS " + TblTurtlesBest + " (turtle INTEGER, iter INTEGER, best REAL"
	s += it.xdbsql("define")
	s += ");"

	_, err = it.Db.Exec(s)
	panicif(err)

	s = "CREATE TABLE IF NOT EXISTS " + TblBest + " (iter INTEGER, val REAL"
	s += it.xdbsql("define")
	s += ");"
	_, err = it.Db.Exec(s)
	panicif(err)
}

func (it *Iterator) xdbsql(op string) string {
	s := ""
	for i := 0; i < it.Pop[0].Len(); i++ {
		if op == "?" {
			s += ",?"
		} else if op == "define" {
			s += fmt.Sprintf(",x%v REAL", i)
		} else if op == "x" {
			s += fmt.Sprintf(",x%v", i)
		} else {
			panic("invalid db op " + op)
		}
	}
	return s
}

func pos2iface(pos []float64) []interface{} {
	iface := []interface{}{}
	for _, v := range pos {
		iface = append(iface, v)
	}
	return iface
}

func (it *Iterator) updateDb(m mesh.Mesh) {
	if it.Db == nil {
		return
	}

	tx, err := it.Db.Begin()
	panicif(err)
	defer tx.Commit()

	s0 := "INSERT INTO " + TblTurtles + " (turtle,iter,val" + it.xdbsql("x") + ") VALUES (?,?,?" + it.xdbsql("?") + ");"
	s0b := "INSERT INTO " + TblTurtlesMeshed + " (turtle,iter,val" + it.xdbsql("x") + ") VALUES (?,?,?" + it.xdbsql("?") + ");"
	s1 := "INSERT INTO " + TblTurtlesBest + " (turtle,iter,best" + it.xdbsql("x") + ") VALUES (?,?,?" + it.xdbsql("?") + ");"
	for _, t := range it.Pop {
		args := []interface{}{t.Id, it.count, t.Val}
		args = append(args, pos2iface(t.Pos())...)
		_, err := tx.Exec(s0, args...)
		panicif(err)

		args = []interface{}{t.Id, it.count, t.Best.Val}
		args = append(args, pos2iface(t.Best.Pos())...)
		_, err = tx.Exec(s1, args...)
		panicif(err)

		evalat := t.Pos()
		if m != nil {
			evalat = m.Nearest(evalat)
		}
		args = []interface{}{t.Id, it.count, t.Val}
		args = append(args, pos2iface(evalat)...)
		_, err = tx.Exec(s0b, args...)
		panicif(err)
	}

	s2 := "INSERT INTO " + TblBest + " (iter,val" + it.xdbsql("x") + ") VALUES (?,?" + it.xdbsql("?") + ");"
	args := []interface{}{it.count, it.best.Val}
	args = append(args, pos2iface(it.best.Pos())...)
	_, err = tx.Exec(s2, args...)
	panicif(err)
}

func panicif(err error) {
	if err != nil {
		panic(err.Error())
	}
}
