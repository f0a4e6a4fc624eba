package types

// Direction is a cardinal move direction
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists every direction in clockwise order starting from Up.
var Directions = [...]Direction{Up, Right, Down, Left}

// Vector converts a Direction into its unit move vector.
func (d Direction) Vector() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: 1}
	case Right:
		return Point{X: 1, Y: 0}
	case Down:
		return Point{X: 0, Y: -1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{}
	}
}

// Opposite returns the 180 degree reversal of d.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Right:
		return Left
	case Down:
		return Up
	case Left:
		return Right
	default:
		return d
	}
}

// TurnLeft returns the direction after a 90 degree counter-clockwise turn.
func (d Direction) TurnLeft() Direction {
	switch d {
	case Up:
		return Left
	case Right:
		return Up
	case Down:
		return Right
	case Left:
		return Down
	default:
		return d
	}
}

// TurnRight returns the direction after a 90 degree clockwise turn.
func (d Direction) TurnRight() Direction {
	switch d {
	case Up:
		return Right
	case Right:
		return Down
	case Down:
		return Left
	case Left:
		return Up
	default:
		return d
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "top"
	case Right:
		return "right"
	case Down:
		return "bottom"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// DirectionOf maps a unit vector back to its Direction.
func DirectionOf(v Point) (Direction, bool) {
	for _, d := range Directions {
		if d.Vector() == v {
			return d, true
		}
	}
	return 0, false
}
