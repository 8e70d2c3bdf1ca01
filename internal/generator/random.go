package generator

import (
	"math/rand/v2"
	"time"

	"commerce-seeder/internal/config"
)

// Rand is the random source every generator draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Int64N(n int64) int64
	Float64() float64
}

// NewRand returns a PCG source; seed 0 means a random seed
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// intBetween draws uniformly from the inclusive range
func intBetween(rng Rand, r config.Range) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.IntN(r.Max-r.Min+1)
}

func chance(rng Rand, p float64) bool {
	return rng.Float64() < p
}

// timeBetween draws uniformly from [start, end]; it returns start when the
// interval is empty.
func timeBetween(rng Rand, start, end time.Time) time.Time {
	if !end.After(start) {
		return start
	}
	return start.Add(time.Duration(rng.Int64N(int64(end.Sub(start)) + 1)))
}

func pick[T any](rng Rand, items []T) T {
	return items[rng.IntN(len(items))]
}
