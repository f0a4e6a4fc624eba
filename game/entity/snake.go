package entity

import (
	"errors"
	"fmt"

	"snake-engine/game/types"
)

var (
	ErrSnakeDead     = errors.New("snake is dead")
	ErrInvalidVector = errors.New("incorrect vector")
	ErrSnakeTooShort = errors.New("snake size can't be lower 1")
)

// ReverseMoveError is returned when a move would turn the snake back onto itself.
type ReverseMoveError struct {
	Direction types.Direction
}

func (e *ReverseMoveError) Error() string {
	return fmt.Sprintf("snake can't move to the %s", e.Direction)
}

// Snake is a chain of cells in local coordinates, where the initial head sits
// at the origin.
type Snake interface {
	MoveUp() error
	MoveDown() error
	MoveLeft() error
	MoveRight() error
	// Move shifts the snake by a unit axis vector.
	Move(v types.Point) error
	Grow()
	Kill()
	Dead() bool
	Head() types.Point
	// Chain returns the cells head first.
	Chain() []types.Point
	Len() int
	LastVector() types.Point
	// Intersects reports whether any cell of the chain, head included, equals p.
	Intersects(p types.Point) bool
	// CollidesWithSelf reports whether the head overlaps the rest of the body.
	CollidesWithSelf() bool
}

// ClassicSnake moves one cell per step and grows by keeping its tail once.
// Body is stored tail first, so the head is the last element.
type ClassicSnake struct {
	Body       []types.Point
	lastVector types.Point
	growNext   bool
	dead       bool
}

func NewClassicSnake(size int) (*ClassicSnake, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrSnakeTooShort, size)
	}
	body := make([]types.Point, size)
	for i := 0; i < size; i++ {
		body[size-1-i] = types.Point{X: 0, Y: -i}
	}
	return &ClassicSnake{
		Body:       body,
		lastVector: types.Up.Vector(),
	}, nil
}

func (s *ClassicSnake) MoveUp() error    { return s.Move(types.Up.Vector()) }
func (s *ClassicSnake) MoveDown() error  { return s.Move(types.Down.Vector()) }
func (s *ClassicSnake) MoveLeft() error  { return s.Move(types.Left.Vector()) }
func (s *ClassicSnake) MoveRight() error { return s.Move(types.Right.Vector()) }

func (s *ClassicSnake) Move(v types.Point) error {
	if s.dead {
		return ErrSnakeDead
	}
	if !v.IsUnitAxis() {
		return fmt.Errorf("%w: %v", ErrInvalidVector, v)
	}
	if v == s.lastVector.Neg() {
		dir, _ := types.DirectionOf(v)
		return &ReverseMoveError{Direction: dir}
	}

	s.Body = append(s.Body, s.Head().Add(v))
	s.lastVector = v

	if s.growNext {
		s.growNext = false
	} else {
		s.removeTail()
	}

	if s.CollidesWithSelf() {
		s.dead = true
	}
	return nil
}

func (s *ClassicSnake) removeTail() {
	if len(s.Body) > 1 {
		s.Body = s.Body[1:]
	}
}

// Grow makes the next move keep the tail.
func (s *ClassicSnake) Grow() {
	s.growNext = true
}

func (s *ClassicSnake) Kill() {
	s.dead = true
}

func (s *ClassicSnake) Dead() bool {
	return s.dead
}

func (s *ClassicSnake) Head() types.Point {
	return s.Body[len(s.Body)-1]
}

func (s *ClassicSnake) Chain() []types.Point {
	out := make([]types.Point, len(s.Body))
	for i, p := range s.Body {
		out[len(s.Body)-1-i] = p
	}
	return out
}

func (s *ClassicSnake) Len() int {
	return len(s.Body)
}

func (s *ClassicSnake) LastVector() types.Point {
	return s.lastVector
}

func (s *ClassicSnake) Intersects(p types.Point) bool {
	for _, c := range s.Body {
		if c == p {
			return true
		}
	}
	return false
}

func (s *ClassicSnake) CollidesWithSelf() bool {
	if s.dead {
		return true
	}
	head := s.Head()
	for _, c := range s.Body[:len(s.Body)-1] {
		if c == head {
			return true
		}
	}
	return false
}
