// Command turtles runs a turtle swarm against a benchmark-style objective
// described by a TOML config file and prints a report once (if ever) the
// swarm reaches its goal.  There is no progress output while the run is in
// flight - the turtles work in silence, for as long as it takes.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/BurntSushi/toml"
	_ "github.com/mattn/go-sqlite3"

	tso "github.com/caseykneale/turtleswarmoptimization"
	"github.com/caseykneale/turtleswarmoptimization/bench"
	"github.com/caseykneale/turtleswarmoptimization/mesh"
	"github.com/caseykneale/turtleswarmoptimization/turtle"
)

type config struct {
	// Objective names one of the bench functions; the swarm minimizes it.
	Objective string
	// Turtles is the population size.
	Turtles int
	// Goal is the objective value the swarm must reach before the run
	// returns.  Choose it with care - it is the only exit.
	Goal float64
	// Velocity overrides turtle.DefaultVelocity when nonzero.  Read the
	// warning on that constant before setting this.
	Velocity float64
	// Db is an optional sqlite file recording per-iteration swarm state.
	Db string
	// Seed fixes the random number stream; 0 seeds from the clock.
	Seed int64
}

func main() {
	log.SetFlags(0)
	fconfig := flag.String("config", "turtles.toml", "path to run config file")
	flag.Parse()

	var conf config
	if _, err := toml.DecodeFile(*fconfig, &conf); err != nil {
		log.Fatalf("turtles: %v", err)
	}
	if conf.Seed == 0 {
		conf.Seed = time.Now().Unix()
	}
	tso.Rand = rand.New(rand.NewSource(conf.Seed))

	fn := lookup(conf.Objective)
	if fn == nil {
		log.Fatalf("turtles: unknown objective %q", conf.Objective)
	}
	low, up := fn.Bounds()

	vconst := turtle.DefaultVelocity
	if conf.Velocity != 0 {
		vconst = conf.Velocity
	}

	pop, err := turtle.NewPopulationRand(conf.Turtles, low, up, vconst)
	if err != nil {
		log.Fatalf("turtles: %v", err)
	}

	opts := []turtle.Option{turtle.Velocity(vconst)}
	if conf.Db != "" {
		db, err := sql.Open("sqlite3", conf.Db)
		if err != nil {
			log.Fatalf("turtles: %v", err)
		}
		defer db.Close()
		opts = append(opts, turtle.DB(db))
	}

	it := turtle.NewIterator(nil, pop, opts...)
	s := &tso.Solver{
		Iter: it,
		Obj:  tso.Func(fn.Eval),
		Mesh: mesh.NewBounded(&mesh.Infinite{}, low, up),
		Conv: tso.GoalConverger(conf.Goal),
	}

	best, niter, err := s.Run()
	if err != nil {
		log.Fatalf("turtles: %v", err)
	}

	report(pop, best, niter)
}

func lookup(name string) bench.Func {
	for _, fn := range bench.AllFuncs {
		if fn.Name() == name {
			return fn
		}
	}
	return nil
}

func report(pop turtle.Population, best tso.Point, niter int) {
	fmt.Printf("%v turtles performed %v optimizer iterations for you.\n", len(pop), niter)
	fmt.Printf("The best score: %v was observed at position: %v\n", best.Val, best.Pos())
	fmt.Println("Below is a complete run down of the best locations:")

	for _, t := range pop {
		fmt.Printf("\tTurtle #%v's best score %v, was observed at %v\n", t.Id, t.Best.Val, t.Best.Pos())
	}
}
