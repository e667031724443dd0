package main

import "math/rand/v2"

// Rand is the subset of *rand.Rand the generator draws from. Tests swap in
// scripted sources to force specific placements.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

var _ Rand = (*rand.Rand)(nil)

// NewRand returns a PCG-backed source seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// maxSeed keeps drawn seeds exact as JSON numbers in float64 clients.
const maxSeed = 1 << 53

// newSeed draws a fresh seed from the runtime's goroutine-safe source.
func newSeed() uint64 {
	return rand.Uint64N(maxSeed)
}
