package game

import "math/rand"

// Rand is the source of randomness for spawn and variant decisions.
// *rand.Rand satisfies it; tests supply scripted sequences.
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded source.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}
