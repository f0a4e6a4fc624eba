package ui

import (
	"errors"
	"fmt"
)

// CellType is what a presenter draws on a map cell.
type CellType int

const (
	Empty CellType = iota
	SnakeHead
	SnakeChain
	SnakeTail
	Wall
	Apple
)

func (c CellType) String() string {
	switch c {
	case Empty:
		return "empty"
	case SnakeHead:
		return "head"
	case SnakeChain:
		return "chain"
	case SnakeTail:
		return "tail"
	case Wall:
		return "wall"
	case Apple:
		return "apple"
	default:
		return "unknown"
	}
}

// MinMapSide matches the smallest room a game accepts.
const MinMapSide = 10

var (
	ErrMapTooSmall     = errors.New("width and height must be at least 10")
	ErrInvalidPosition = errors.New("invalid position")
	ErrCellFilled      = errors.New("cell is already filled")
)

// GameMap is a width x height grid of cells indexed by room coordinates.
type GameMap struct {
	width  int
	height int
	cells  []CellType
}

func NewGameMap(width, height int) (*GameMap, error) {
	if width < MinMapSide || height < MinMapSide {
		return nil, fmt.Errorf("%w: got %dx%d", ErrMapTooSmall, width, height)
	}
	return &GameMap{
		width:  width,
		height: height,
		cells:  make([]CellType, width*height),
	}, nil
}

func (m *GameMap) Width() int  { return m.width }
func (m *GameMap) Height() int { return m.height }

// Contains reports whether (x, y) lies on the map.
func (m *GameMap) Contains(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

func (m *GameMap) Cell(x, y int) (CellType, error) {
	if !m.Contains(x, y) {
		return Empty, fmt.Errorf("%w (%d,%d)", ErrInvalidPosition, x, y)
	}
	return m.cells[y*m.width+x], nil
}

// FillCell writes v to an empty cell. Each cell is drawn at most once per map.
func (m *GameMap) FillCell(x, y int, v CellType) error {
	cell, err := m.Cell(x, y)
	if err != nil {
		return err
	}
	if cell != Empty {
		return fmt.Errorf("%w (%d,%d) with %s", ErrCellFilled, x, y, cell)
	}
	m.cells[y*m.width+x] = v
	return nil
}

// Equal compares sizes and every cell.
func (m *GameMap) Equal(other *GameMap) bool {
	if other == nil || m.width != other.width || m.height != other.height {
		return false
	}
	for i := range m.cells {
		if m.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Rows returns the map top row first, which is how screens draw it.
func (m *GameMap) Rows() [][]CellType {
	rows := make([][]CellType, m.height)
	for i := range rows {
		y := m.height - 1 - i
		rows[i] = append([]CellType(nil), m.cells[y*m.width:(y+1)*m.width]...)
	}
	return rows
}
