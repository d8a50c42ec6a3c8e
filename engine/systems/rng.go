package systems

import (
	"math/rand"
	"time"
)

// RNG is the seeded random source shared by the spawner. A fixed seed makes
// a match replayable.
type RNG struct {
	rng  *rand.Rand
	seed int64
}

// NewRNG creates a source from seed. A zero seed uses the current time.
func NewRNG(seed int64) *RNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RNG{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

// Seed returns the effective seed
func (r *RNG) Seed() int64 { return r.seed }

// Float64 returns a number in [0.0, 1.0)
func (r *RNG) Float64() float64 {
	return r.rng.Float64()
}

// Range returns a number in [lo, hi)
func (r *RNG) Range(lo, hi float64) float64 {
	return lo + r.rng.Float64()*(hi-lo)
}

// Duration returns a duration in [lo, hi)
func (r *RNG) Duration(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(r.rng.Int63n(int64(hi-lo)))
}
