package entity

import (
	"errors"
	"fmt"
)

var ErrUnsupportedType = errors.New("not supported type")

// SnakeType selects a Snake variant.
type SnakeType string

// RoomType selects a Room variant.
type RoomType string

const (
	ClassicSnakeType SnakeType = "classic"
	BorderedRoomType RoomType  = "bordered"
)

var (
	supportedSnakes = []SnakeType{ClassicSnakeType}
	supportedRooms  = []RoomType{BorderedRoomType}
)

func (t SnakeType) IsSupported() bool {
	for _, s := range supportedSnakes {
		if s == t {
			return true
		}
	}
	return false
}

func (t RoomType) IsSupported() bool {
	for _, r := range supportedRooms {
		if r == t {
			return true
		}
	}
	return false
}

// NewSnake builds the Snake variant named by t.
func NewSnake(t SnakeType, size int) (Snake, error) {
	switch t {
	case ClassicSnakeType:
		s, err := NewClassicSnake(size)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: snake %q", ErrUnsupportedType, string(t))
	}
}

// NewRoom builds the Room variant named by t.
func NewRoom(t RoomType, width, height int) (Room, error) {
	switch t {
	case BorderedRoomType:
		r, err := NewBorderedRoom(width, height)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("%w: room %q", ErrUnsupportedType, string(t))
	}
}
