package types

import "fmt"

// Grid represents the room dimensions in cells
type Grid struct {
	Width  int
	Height int
}

// Point is an immutable cell coordinate. Y grows upwards.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Point) Equal(o Point) bool {
	return p == o
}

// Neg returns the opposite vector.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// IsUnitAxis reports whether p is one of the four unit move vectors.
func (p Point) IsUnitAxis() bool {
	return (p.X == 0 && (p.Y == 1 || p.Y == -1)) || (p.Y == 0 && (p.X == 1 || p.X == -1))
}

// Manhattan returns the taxicab distance between p and o.
func (p Point) Manhattan(o Point) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
