package engine

import "math/rand"

// RNG wraps math/rand.Rand with deterministic position tracking.
// Position increments with every call, so a trace can show exactly how many
// draws a step consumed and a seed replays a whole session.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a random integer in [0, n). n must be positive.
func (r *RNG) Intn(n int) int {
	r.pos++
	return r.src.Intn(n)
}

// Float64 returns a random float in [0.0, 1.0).
func (r *RNG) Float64() float64 {
	r.pos++
	return r.src.Float64()
}

// Uniform returns a random float in [lo, hi].
func (r *RNG) Uniform(lo, hi float64) float64 {
	r.pos++
	return lo + (hi-lo)*r.src.Float64()
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of RNG calls made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}
