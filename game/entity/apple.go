package entity

import (
	"errors"
	"fmt"

	"snake-engine/game/types"
)

var ErrInvalidLifeTime = errors.New("lifeTime must be greater than 0")

// Apple is the single collectible of a session. It spoils after a number of
// snake moves.
type Apple struct {
	position types.Point
	lifeTime int
	ticks    int
	spoiled  bool
}

func NewApple(position types.Point, lifeTime int) (*Apple, error) {
	if lifeTime < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLifeTime, lifeTime)
	}
	return &Apple{position: position, lifeTime: lifeTime}, nil
}

// Tick ages the apple by one move.
func (a *Apple) Tick() {
	a.ticks++
	if a.ticks >= a.lifeTime {
		a.spoiled = true
	}
}

func (a *Apple) Position() types.Point {
	return a.position
}

// At reports whether the apple lies on p.
func (a *Apple) At(p types.Point) bool {
	return a.position == p
}

func (a *Apple) Spoiled() bool {
	return a.spoiled
}

func (a *Apple) LifeTime() int {
	return a.lifeTime
}

// Remaining returns the moves left before spoiling.
func (a *Apple) Remaining() int {
	if a.spoiled {
		return 0
	}
	return a.lifeTime - a.ticks
}
