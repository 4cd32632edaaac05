package services

import (
	"math/rand/v2"
	"time"
)

// Selector draws one independent uniform sample per document and includes
// the document when the sample falls below the selection rate.
type Selector struct {
	rate float64
	rng  *rand.Rand
}

// NewSelector creates a selector. A zero seed seeds from the clock, so each
// run samples a different subset; any other seed makes selection repeatable.
func NewSelector(rate float64, seed uint64) *Selector {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Selector{
		rate: rate,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Include returns true if the next document should be analysed.
func (s *Selector) Include() bool {
	return s.rng.Float64() < s.rate
}

// Rate returns the selection rate.
func (s *Selector) Rate() float64 {
	return s.rate
}
