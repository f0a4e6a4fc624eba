package entity

import (
	"errors"
	"testing"

	"snake-engine/game/rng"
	"snake-engine/game/types"
)

func TestNewBorderedRoomRejectsSmallSides(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero", 0, 0},
		{"short height", 15, 5},
		{"short width", 9, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBorderedRoom(tt.width, tt.height)
			if !errors.Is(err, ErrRoomTooSmall) {
				t.Errorf("Expected ErrRoomTooSmall, got %v", err)
			}
		})
	}

	room, err := NewBorderedRoom(15, 40)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if g := room.Grid(); g.Width != 15 || g.Height != 40 {
		t.Errorf("Expected 15x40, got %dx%d", g.Width, g.Height)
	}
}

func TestBorderedRoomIsInside(t *testing.T) {
	room, _ := NewBorderedRoom(24, 48)

	outside := []types.Point{
		{X: -1, Y: -1}, {X: 1, Y: 49}, {X: 25, Y: -1}, {X: 25, Y: 49},
		{X: 0, Y: 0}, {X: 0, Y: 48}, {X: 24, Y: 0}, {X: 24, Y: 48},
		{X: 0, Y: 47}, {X: 23, Y: 0}, {X: 23, Y: 47},
	}
	for _, p := range outside {
		if room.IsInside(p) {
			t.Errorf("Expected %v to be outside", p)
		}
		if room.IsFree(p) {
			t.Errorf("Expected %v not to be free", p)
		}
	}

	inside := []types.Point{{X: 10, Y: 15}, {X: 5, Y: 40}, {X: 1, Y: 1}, {X: 22, Y: 46}}
	for _, p := range inside {
		if !room.IsInside(p) {
			t.Errorf("Expected %v to be inside", p)
		}
		if !room.IsFree(p) {
			t.Errorf("Expected %v to be free", p)
		}
	}
}

func TestBorderedRoomWalls(t *testing.T) {
	tests := []struct {
		width, height int
		want          int
	}{
		{24, 48, 2*24 + 2*46},
		{10, 10, 36},
	}
	for _, tt := range tests {
		room, _ := NewBorderedRoom(tt.width, tt.height)
		walls := room.Walls()
		if len(walls) != tt.want {
			t.Errorf("%dx%d: expected %d walls, got %d", tt.width, tt.height, tt.want, len(walls))
		}
		seen := make(map[types.Point]bool)
		for _, w := range walls {
			if room.IsInside(w) {
				t.Errorf("Wall %v lies inside the room", w)
			}
			if seen[w] {
				t.Errorf("Wall %v listed twice", w)
			}
			seen[w] = true
		}
	}
}

func TestRandomFreePoint(t *testing.T) {
	room, _ := NewBorderedRoom(10, 10)

	p := room.RandomFreePoint(rng.NewSequence(0.4, 0.7))
	if p != (types.Point{X: 4, Y: 6}) {
		t.Errorf("Expected (4,6), got %v", p)
	}

	edges := room.RandomFreePoint(rng.NewSequence(0, 0.999999))
	if edges != (types.Point{X: 1, Y: 8}) {
		t.Errorf("Expected (1,8), got %v", edges)
	}

	src := rng.New(7)
	for _, r := range []*BorderedRoom{room, mustRoom(t, 24, 48)} {
		for i := 0; i < 50; i++ {
			if p := r.RandomFreePoint(src); !r.IsFree(p) {
				t.Fatalf("Sampled point %v is not free", p)
			}
		}
	}
}

func mustRoom(t *testing.T, w, h int) *BorderedRoom {
	t.Helper()
	r, err := NewBorderedRoom(w, h)
	if err != nil {
		t.Fatalf("NewBorderedRoom(%d, %d): %v", w, h, err)
	}
	return r
}
