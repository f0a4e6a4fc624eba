package ai

import (
	"testing"

	"snake-engine/game/entity"
	"snake-engine/game/types"
)

type fakeWorld struct {
	head    types.Point
	heading types.Direction
	apple   *entity.Apple
	danger  map[types.Point]bool
}

func (w *fakeWorld) SnakeHead() types.Point        { return w.head }
func (w *fakeWorld) Heading() types.Direction      { return w.heading }
func (w *fakeWorld) Apple() *entity.Apple          { return w.apple }
func (w *fakeWorld) IsDanger(pos types.Point) bool { return w.danger[pos] }

func mustApple(t *testing.T, x, y int) *entity.Apple {
	t.Helper()
	a, err := entity.NewApple(types.Point{X: x, Y: y}, 10)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestActionApply(t *testing.T) {
	tests := []struct {
		heading types.Direction
		action  Action
		want    types.Direction
	}{
		{types.Up, TurnLeft, types.Left},
		{types.Up, Straight, types.Up},
		{types.Up, TurnRight, types.Right},
		{types.Right, TurnLeft, types.Up},
		{types.Down, TurnRight, types.Left},
		{types.Left, TurnRight, types.Up},
	}
	for _, tt := range tests {
		if got := tt.action.Apply(tt.heading); got != tt.want {
			t.Errorf("%v.Apply(%v) = %v, want %v", tt.action, tt.heading, got, tt.want)
		}
	}
}

func TestSense(t *testing.T) {
	tests := []struct {
		name    string
		heading types.Direction
		danger  []types.Point
		want    Observation
	}{
		{
			name:    "heading up",
			heading: types.Up,
			danger:  []types.Point{{X: 4, Y: 5}, {X: 5, Y: 6}},
			want: Observation{
				Heading: types.Up, DangerLeft: true, DangerAhead: true,
				AppleLeft: true, AppleAhead: true, Distance: 5,
			},
		},
		{
			name:    "heading right",
			heading: types.Right,
			danger:  []types.Point{{X: 5, Y: 4}},
			want: Observation{
				Heading: types.Right, DangerRight: true,
				AppleLeft: true, AppleBehind: true, Distance: 5,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &fakeWorld{
				head:    types.Point{X: 5, Y: 5},
				heading: tt.heading,
				apple:   mustApple(t, 3, 8),
				danger:  map[types.Point]bool{},
			}
			for _, p := range tt.danger {
				w.danger[p] = true
			}
			if got := Sense(w); got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestSenseWithoutApple(t *testing.T) {
	w := &fakeWorld{head: types.Point{X: 5, Y: 5}, heading: types.Down}
	obs := Sense(w)
	if obs.AppleAhead || obs.AppleBehind || obs.AppleLeft || obs.AppleRight || obs.Distance != 0 {
		t.Errorf("Expected no apple flags, got %+v", obs)
	}
}

func TestObservationEncoding(t *testing.T) {
	obs := Observation{Heading: types.Left, DangerAhead: true, AppleRight: true, AppleBehind: true}
	if got := obs.Key(); got != "010|0011" {
		t.Errorf("Expected key 010|0011, got %s", got)
	}

	features := obs.Features()
	want := []float64{0, 1, 0, 0, 0, 1, 1}
	if len(features) != NumFeatures {
		t.Fatalf("Expected %d features, got %d", NumFeatures, len(features))
	}
	for i := range want {
		if features[i] != want[i] {
			t.Errorf("feature %d: expected %v, got %v", i, want[i], features[i])
		}
	}
}

func TestReward(t *testing.T) {
	near := Observation{Distance: 2}
	far := Observation{Distance: 4}
	tests := []struct {
		name       string
		prev, next Observation
		ate, died  bool
		want       float64
	}{
		{"died", near, far, false, true, -1.0},
		{"ate", far, near, true, false, 1.0},
		{"closer", far, near, false, false, 0.5},
		{"farther", near, far, false, false, -0.3},
		{"same", near, near, false, false, 0},
	}
	for _, tt := range tests {
		if got := Reward(tt.prev, tt.next, tt.ate, tt.died); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}
