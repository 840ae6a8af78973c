// Package prng provides the deterministic random source shared by both
// tree generators. A Source is scoped to a single generation request and
// seeded explicitly, so identical (seed, parameters) pairs reproduce
// identical geometry. It is not safe for concurrent use; each request
// owns its own Source.
package prng

import "math/rand"

// Source is a seed-driven pseudo-random source.
type Source struct {
	r *rand.Rand
}

// New creates a Source seeded with the given value.
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// Float returns a draw in [0, 1).
func (s *Source) Float() float64 {
	return s.r.Float64()
}

// Uniform returns a draw in [lo, hi).
func (s *Source) Uniform(lo, hi float64) float64 {
	return lo + s.r.Float64()*(hi-lo)
}

// Vary returns a draw in [-v, v). Convenience for the ±variance
// parameters of the botanical model.
func (s *Source) Vary(v float64) float64 {
	if v == 0 {
		return 0
	}
	return s.Uniform(-v, v)
}

// Intn returns a draw in [0, n). n must be positive.
func (s *Source) Intn(n int) int {
	return s.r.Intn(n)
}

// Chance returns true with probability p.
func (s *Source) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.r.Float64() < p
}
