package ai

import (
	"fmt"

	"snake-engine/game/entity"
	"snake-engine/game/types"
)

// Action is a move relative to the current heading.
type Action int

const (
	TurnLeft Action = iota
	Straight
	TurnRight
)

// NumActions is the size of the action space.
const NumActions = 3

// Apply returns the absolute direction of a relative action.
func (a Action) Apply(heading types.Direction) types.Direction {
	switch a {
	case TurnLeft:
		return heading.TurnLeft()
	case TurnRight:
		return heading.TurnRight()
	default:
		return heading
	}
}

func (a Action) String() string {
	switch a {
	case TurnLeft:
		return "left"
	case Straight:
		return "straight"
	case TurnRight:
		return "right"
	default:
		return "unknown"
	}
}

// World is the read-only view of a game the sensors need.
type World interface {
	SnakeHead() types.Point
	Heading() types.Direction
	Apple() *entity.Apple
	IsDanger(pos types.Point) bool
}

// Observation is what the snake sees before a move, relative to its heading.
type Observation struct {
	Heading     types.Direction
	DangerLeft  bool
	DangerAhead bool
	DangerRight bool
	AppleLeft   bool
	AppleAhead  bool
	AppleRight  bool
	AppleBehind bool
	// Distance is the Manhattan distance from head to apple, 0 without an apple.
	Distance int
}

// Sense reads the cells around the head and the apple direction.
func Sense(w World) Observation {
	head := w.SnakeHead()
	heading := w.Heading()
	left := heading.TurnLeft()
	right := heading.TurnRight()

	obs := Observation{
		Heading:     heading,
		DangerLeft:  w.IsDanger(head.Add(left.Vector())),
		DangerAhead: w.IsDanger(head.Add(heading.Vector())),
		DangerRight: w.IsDanger(head.Add(right.Vector())),
	}

	apple := w.Apple()
	if apple == nil {
		return obs
	}
	delta := apple.Position().Sub(head)
	forward := dot(delta, heading.Vector())
	lateral := dot(delta, left.Vector())

	obs.AppleAhead = forward > 0
	obs.AppleBehind = forward < 0
	obs.AppleLeft = lateral > 0
	obs.AppleRight = lateral < 0
	obs.Distance = head.Manhattan(apple.Position())
	return obs
}

func dot(a, b types.Point) int {
	return a.X*b.X + a.Y*b.Y
}

// Key encodes the heading-independent part of the observation for tabular
// policies.
func (o Observation) Key() string {
	return fmt.Sprintf("%d%d%d|%d%d%d%d",
		b2i(o.DangerLeft), b2i(o.DangerAhead), b2i(o.DangerRight),
		b2i(o.AppleLeft), b2i(o.AppleAhead), b2i(o.AppleRight), b2i(o.AppleBehind))
}

// NumFeatures is the length of Features.
const NumFeatures = 7

// Features returns 3 danger flags followed by 4 apple direction flags.
func (o Observation) Features() []float64 {
	return []float64{
		float64(b2i(o.DangerLeft)),
		float64(b2i(o.DangerAhead)),
		float64(b2i(o.DangerRight)),
		float64(b2i(o.AppleLeft)),
		float64(b2i(o.AppleAhead)),
		float64(b2i(o.AppleRight)),
		float64(b2i(o.AppleBehind)),
	}
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Reward scores a single move. Values follow the tabular learner: eating and
// dying dominate, otherwise approaching the apple pays.
func Reward(prev, next Observation, ate, died bool) float64 {
	switch {
	case died:
		return -1.0
	case ate:
		return 1.0
	case next.Distance < prev.Distance:
		return 0.5
	case next.Distance > prev.Distance:
		return -0.3
	default:
		return 0
	}
}
