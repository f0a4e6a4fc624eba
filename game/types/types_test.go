package types

import "testing"

func TestPointArithmetic(t *testing.T) {
	a := Point{X: 3, Y: -2}
	b := Point{X: 1, Y: 5}

	if got := a.Add(b); got != (Point{X: 4, Y: 3}) {
		t.Errorf("Expected (4,3), got %v", got)
	}
	if got := a.Sub(b); got != (Point{X: 2, Y: -7}) {
		t.Errorf("Expected (2,-7), got %v", got)
	}
	if !a.Equal(Point{X: 3, Y: -2}) {
		t.Error("Expected points with same coordinates to be equal")
	}
	if a.Equal(b) {
		t.Error("Expected different points not to be equal")
	}
	if got := a.Manhattan(b); got != 9 {
		t.Errorf("Expected distance 9, got %d", got)
	}
}

func TestIsUnitAxis(t *testing.T) {
	valid := []Point{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	for _, v := range valid {
		if !v.IsUnitAxis() {
			t.Errorf("Expected %v to be a unit axis vector", v)
		}
	}
	invalid := []Point{{0, 0}, {1, 1}, {0, 2}, {-2, 0}, {-1, 1}}
	for _, v := range invalid {
		if v.IsUnitAxis() {
			t.Errorf("Expected %v not to be a unit axis vector", v)
		}
	}
}

func TestDirectionRotations(t *testing.T) {
	for _, d := range Directions {
		if d.Vector().Add(d.Opposite().Vector()) != (Point{}) {
			t.Errorf("%v and its opposite do not cancel out", d)
		}
		if d.TurnLeft().TurnRight() != d {
			t.Errorf("Left then right turn from %v should be identity", d)
		}
		if d.TurnRight().TurnRight() != d.Opposite() {
			t.Errorf("Two right turns from %v should reverse it", d)
		}
		got, ok := DirectionOf(d.Vector())
		if !ok || got != d {
			t.Errorf("DirectionOf(%v) = %v, %v", d.Vector(), got, ok)
		}
	}

	if _, ok := DirectionOf(Point{X: 1, Y: 1}); ok {
		t.Error("Expected diagonal vector to have no direction")
	}
	if Up.Vector() != (Point{X: 0, Y: 1}) {
		t.Errorf("Up should point towards growing y, got %v", Up.Vector())
	}
}
