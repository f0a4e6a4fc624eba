package entity

import (
	"errors"
	"fmt"

	"snake-engine/game/rng"
	"snake-engine/game/types"
)

// MinRoomSide is the smallest accepted room width and height.
const MinRoomSide = 10

var ErrRoomTooSmall = errors.New("each side must be at least 10 points")

// Room is the spatial domain of a session.
type Room interface {
	Grid() types.Grid
	// IsInside reports whether p is in the playable interior.
	IsInside(p types.Point) bool
	// IsFree reports whether a snake may occupy p.
	IsFree(p types.Point) bool
	// Walls lists the filled cells.
	Walls() []types.Point
	// RandomFreePoint samples a free cell, drawing x then y from src.
	RandomFreePoint(src rng.Source) types.Point
}

// BorderedRoom is a rectangle enclosed by a one cell wall ring.
type BorderedRoom struct {
	grid  types.Grid
	walls []types.Point
}

func NewBorderedRoom(width, height int) (*BorderedRoom, error) {
	if width < MinRoomSide || height < MinRoomSide {
		return nil, fmt.Errorf("%w: got %dx%d", ErrRoomTooSmall, width, height)
	}

	walls := make([]types.Point, 0, 2*width+2*(height-2))
	for x := 0; x < width; x++ {
		walls = append(walls, types.Point{X: x, Y: 0}, types.Point{X: x, Y: height - 1})
	}
	for y := 1; y < height-1; y++ {
		walls = append(walls, types.Point{X: 0, Y: y}, types.Point{X: width - 1, Y: y})
	}

	return &BorderedRoom{
		grid:  types.Grid{Width: width, Height: height},
		walls: walls,
	}, nil
}

func (r *BorderedRoom) Grid() types.Grid {
	return r.grid
}

func (r *BorderedRoom) IsInside(p types.Point) bool {
	return 0 < p.X && p.X < r.grid.Width-1 && 0 < p.Y && p.Y < r.grid.Height-1
}

func (r *BorderedRoom) IsFree(p types.Point) bool {
	return r.IsInside(p)
}

func (r *BorderedRoom) Walls() []types.Point {
	out := make([]types.Point, len(r.walls))
	copy(out, r.walls)
	return out
}

func (r *BorderedRoom) RandomFreePoint(src rng.Source) types.Point {
	return types.Point{
		X: randomInterior(src, r.grid.Width),
		Y: randomInterior(src, r.grid.Height),
	}
}

// randomInterior maps a fraction onto [1, side-2].
func randomInterior(src rng.Source, side int) int {
	v := int(src.Float64()*float64(side-2)) + 1
	if v > side-2 {
		v = side - 2
	}
	return v
}
