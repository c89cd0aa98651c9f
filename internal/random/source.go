// Package random provides the seeded randomness primitives shared by the
// game resolvers: a deterministic stream abstraction, uniform and weighted
// draws, and seed resolution for live and replay rolls.
package random

import "math/rand"

// RngAlgoMathRandV1 identifies the stream algorithm behind NewSeeded.
// Recorded outcomes carry it so a replay is only attempted against the
// algorithm that produced the original roll.
const RngAlgoMathRandV1 = "math-rand-v1"

// Source yields uniform floats in [0, 1). Implementations are not safe for
// concurrent use; every resolution creates its own stream.
type Source interface {
	Float64() float64
}

// NewSeeded returns a deterministic Source for seed. Two sources built from
// the same seed produce identical streams.
func NewSeeded(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}
