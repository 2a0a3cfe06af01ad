package turtle

import (
	"database/sql"
	"errors"
	"math/rand"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	tso "github.com/caseykneale/turtleswarmoptimization"
	"github.com/caseykneale/turtleswarmoptimization/mesh"
)

func TestDb(t *testing.T) {
	tso.Rand = rand.New(rand.NewSource(11))

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	n := 10
	niter := 5
	low, up := []float64{-1, -1}, []float64{1, 1}

	pop, err := NewPopulationRand(n, low, up, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	it := NewIterator(nil, pop, Velocity(0.01), DB(db))

	obj := tso.Func(func(x []float64) float64 { return x[0]*x[0] + x[1]*x[1] })
	m := mesh.NewBounded(&mesh.Infinite{}, low, up)

	for i := 0; i < niter; i++ {
		if _, _, err := it.Iterate(obj, m); err != nil {
			t.Fatal(err)
		}
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM " + TblTurtles).Scan(&count)
	if err != nil {
		t.Errorf("turtles table query failed: %v", err)
	} else if count != n*niter {
		t.Errorf("turtles table has %v rows, expected %v", count, n*niter)
	}

	count = 0
	err = db.QueryRow("SELECT COUNT(*) FROM " + TblTurtlesBest).Scan(&count)
	if err != nil {
		t.Errorf("turtle best table query failed: %v", err)
	} else if count != n*niter {
		t.Errorf("turtle best table has %v rows, expected %v", count, n*niter)
	}

	count = 0
	err = db.QueryRow("SELECT COUNT(*) FROM " + TblBest).Scan(&count)
	if err != nil {
		t.Errorf("best table query failed: %v", err)
	} else if count != niter {
		t.Errorf("best table has %v rows, expected %v", count, niter)
	}
}

func TestIterateErrNoMove(t *testing.T) {
	tso.Rand = rand.New(rand.NewSource(13))

	pop, err := NewPopulationRand(5, []float64{-1}, []float64{1}, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	it := NewIterator(nil, pop, Velocity(0.01))

	before := pop.Points()

	_, _, err = it.Iterate(badObj{}, nil)
	if err == nil {
		t.Fatal("expected evaluation error to propagate")
	}
	everr := &tso.EvalError{}
	if !errors.As(err, &everr) {
		t.Errorf("error is not an EvalError: %v", err)
	}

	// the failed iteration must not move anyone
	for i, turt := range pop {
		for j := 0; j < turt.Len(); j++ {
			if turt.At(j) != before[i].At(j) {
				t.Errorf("turtle %v moved during a failed iteration", i)
			}
		}
	}
}

type badObj struct{}

func (badObj) Objective(x []float64) (float64, error) {
	return 0, errors.New("deliberately broken objective")
}
