package rng

import "testing"

func TestSequenceWraps(t *testing.T) {
	s := NewSequence(0.1, 0.2, 0.3)
	want := []float64{0.1, 0.2, 0.3, 0.1}
	for i, w := range want {
		if got := s.Float64(); got != w {
			t.Errorf("draw %d: expected %v, got %v", i, w, got)
		}
	}
	if s.Drawn() != 4 {
		t.Errorf("Expected 4 draws, got %d", s.Drawn())
	}
}

func TestEmptySequence(t *testing.T) {
	if got := NewSequence().Float64(); got != 0 {
		t.Errorf("Expected 0 from empty sequence, got %v", got)
	}
}

func TestSeededRandIsReproducible(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 20; i++ {
		x, y := a.Float64(), b.Float64()
		if x != y {
			t.Fatalf("draw %d differs: %v != %v", i, x, y)
		}
		if x < 0 || x >= 1 {
			t.Fatalf("draw %d out of range: %v", i, x)
		}
	}
}
