package model

import "math/rand/v2"

// NewRNG returns a deterministic random source for Randomize. Equal seeds
// produce equal boards.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// coinFlip returns true with probability 1/2
func coinFlip(rng *rand.Rand) bool {
	return rng.IntN(2) == 1
}
