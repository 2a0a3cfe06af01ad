package tso

import "math/rand"

// Rng is the source of random numbers for the entire library.  Tests and
// benchmarks reseed it for reproducible runs.
type Rng interface {
	Float64() float64
}

var Rand Rng = rand.New(rand.NewSource(1))

func RandFloat() float64 { return Rand.Float64() }
