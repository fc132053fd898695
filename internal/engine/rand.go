package engine

import (
	"math/rand"
	"time"
)

// Rand is the subset of *rand.Rand the engine needs. Tests pass a seeded
// source so shuffles and simulations are reproducible.
type Rand interface {
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func NewTimeSeededRand() *rand.Rand {
	return NewRand(time.Now().UnixNano())
}
