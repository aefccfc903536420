package util

import "math/rand"

// Rand is the subset of *rand.Rand the engine draws from.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// New returns a seeded generator. Seed 0 maps to 1 so runs stay reproducible.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// Pick returns a uniformly random index in [0,n), or -1 when n <= 0.
func Pick(r Rand, n int) int {
	if n <= 0 {
		return -1
	}
	if n == 1 {
		return 0
	}
	return r.Intn(n)
}
