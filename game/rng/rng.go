// Package rng provides the random sources used for apple placement and
// autopilot exploration.
package rng

import (
	"time"

	"golang.org/x/exp/rand"
)

// Source yields pseudo-random fractions in [0, 1).
type Source interface {
	Float64() float64
}

// Rand is a seeded generator backed by golang.org/x/exp/rand.
type Rand struct {
	r *rand.Rand
}

// New returns a generator seeded with seed.
func New(seed uint64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// NewTimeSeeded returns a generator seeded from the wall clock.
func NewTimeSeeded() *Rand {
	return New(uint64(time.Now().UnixNano()))
}

func (r *Rand) Float64() float64 {
	return r.r.Float64()
}

// Intn returns a value in [0, n).
func (r *Rand) Intn(n int) int {
	return r.r.Intn(n)
}

// Sequence replays a fixed list of fractions, wrapping around at the end.
// It makes placement deterministic in tests.
type Sequence struct {
	values []float64
	pos    int
}

func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

// Drawn returns how many values were consumed so far.
func (s *Sequence) Drawn() int {
	return s.pos
}
