package ui

import (
	"errors"
	"testing"
)

func mustMap(t *testing.T, w, h int) *GameMap {
	t.Helper()
	m, err := NewGameMap(w, h)
	if err != nil {
		t.Fatalf("NewGameMap(%d, %d) failed: %v", w, h, err)
	}
	return m
}

func TestNewGameMapIsEmpty(t *testing.T) {
	m := mustMap(t, 10, 12)
	if m.Width() != 10 || m.Height() != 12 {
		t.Fatalf("Expected 10x12, got %dx%d", m.Width(), m.Height())
	}
	for x := 0; x < 10; x++ {
		for y := 0; y < 12; y++ {
			if c, err := m.Cell(x, y); err != nil || c != Empty {
				t.Fatalf("Expected empty cell at (%d,%d), got %v, %v", x, y, c, err)
			}
		}
	}
}

func TestNewGameMapTooSmall(t *testing.T) {
	for _, size := range [][2]int{{5, 10}, {10, 5}, {9, 9}} {
		if _, err := NewGameMap(size[0], size[1]); !errors.Is(err, ErrMapTooSmall) {
			t.Errorf("%v: expected ErrMapTooSmall, got %v", size, err)
		}
	}
}

func TestFillCell(t *testing.T) {
	m := mustMap(t, 10, 10)

	if err := m.FillCell(5, 5, Apple); err != nil {
		t.Fatalf("FillCell failed: %v", err)
	}
	if c, _ := m.Cell(5, 5); c != Apple {
		t.Errorf("Expected apple, got %v", c)
	}

	if err := m.FillCell(5, 5, Wall); !errors.Is(err, ErrCellFilled) {
		t.Errorf("Expected ErrCellFilled, got %v", err)
	}
	if err := m.FillCell(-1, 5, Wall); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("Expected ErrInvalidPosition, got %v", err)
	}
	if _, err := m.Cell(11, 0); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("Expected ErrInvalidPosition, got %v", err)
	}
}

func TestContains(t *testing.T) {
	m := mustMap(t, 10, 10)
	if !m.Contains(5, 5) || !m.Contains(0, 9) {
		t.Error("Expected positions inside the map")
	}
	if m.Contains(-1, 11) || m.Contains(10, 0) {
		t.Error("Expected positions outside the map")
	}
}

func TestEqual(t *testing.T) {
	a := mustMap(t, 10, 10)
	b := mustMap(t, 10, 10)
	if !a.Equal(b) {
		t.Error("Expected identical maps to be equal")
	}
	if a.Equal(mustMap(t, 11, 10)) || a.Equal(mustMap(t, 10, 11)) {
		t.Error("Expected maps of different size to differ")
	}
	b.FillCell(5, 5, SnakeChain)
	if a.Equal(b) {
		t.Error("Expected maps with different cells to differ")
	}
	if a.Equal(nil) {
		t.Error("Expected nil map to differ")
	}
}

func TestRowsTopFirst(t *testing.T) {
	m := mustMap(t, 10, 10)
	m.FillCell(2, 9, Apple)
	m.FillCell(3, 0, Wall)

	rows := m.Rows()
	if rows[0][2] != Apple {
		t.Errorf("Expected apple in the first row, got %v", rows[0][2])
	}
	if rows[9][3] != Wall {
		t.Errorf("Expected wall in the last row, got %v", rows[9][3])
	}
}
