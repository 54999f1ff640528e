package simulation

import "math/rand/v2"

// RandomSource supplies uniform reals in [0, 1).
// One source is shared by every stage of a run; draw order is part of the
// reproducibility contract.
type RandomSource interface {
	Float64() float64
}

// RNG is a thin wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }

// Bernoulli consumes exactly one draw and reports whether it fell below p.
func Bernoulli(src RandomSource, p float64) bool {
	return src.Float64() < p
}

// Uniform returns a value in [lo, hi) using one draw.
func Uniform(src RandomSource, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}
