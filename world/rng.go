package world

import "math/rand"

// Rand is the random source used for pellet spread, AI rolls and obstacle
// layout. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
