package ui

import (
	"errors"
	"testing"
	"time"

	"snake-engine/game"
	"snake-engine/game/clock"
	"snake-engine/game/event"
	"snake-engine/game/rng"
	"snake-engine/game/types"
)

type fakeSource struct {
	event.Bus
	state game.State
}

func (f *fakeSource) State() game.State { return f.state }

func (f *fakeSource) fireUpdate() { f.Publish(game.EventUpdate, nil) }

func walls(w, h int) []types.Point {
	var out []types.Point
	for x := 0; x < w; x++ {
		out = append(out, types.Point{X: x, Y: 0}, types.Point{X: x, Y: h - 1})
	}
	for y := 1; y < h-1; y++ {
		out = append(out, types.Point{X: 0, Y: y}, types.Point{X: w - 1, Y: y})
	}
	return out
}

func column(head types.Point, size int) []types.Point {
	out := make([]types.Point, size)
	for i := range out {
		out[i] = types.Point{X: head.X, Y: head.Y - i}
	}
	return out
}

func newFakeSource() *fakeSource {
	return &fakeSource{state: game.State{
		Width:  10,
		Height: 10,
		Walls:  walls(10, 10),
		Snake:  column(types.Point{X: 4, Y: 5}, 3),
		Apple:  &game.AppleState{Position: types.Point{X: 2, Y: 2}},
		Level:  1,
	}}
}

// expectedMap draws walls, the snake (optionally headless) and the apple.
func expectedMap(t *testing.T, snake []types.Point, apple *types.Point, dead bool) *GameMap {
	t.Helper()
	m := mustMap(t, 10, 10)
	for i, p := range snake {
		switch {
		case i == 0 && dead:
		case i == 0:
			m.FillCell(p.X, p.Y, SnakeHead)
		case i == len(snake)-1:
			m.FillCell(p.X, p.Y, SnakeTail)
		default:
			m.FillCell(p.X, p.Y, SnakeChain)
		}
	}
	for _, w := range walls(10, 10) {
		if err := m.FillCell(w.X, w.Y, Wall); err != nil {
			t.Fatalf("expected map: %v", err)
		}
	}
	if apple != nil {
		m.FillCell(apple.X, apple.Y, Apple)
	}
	return m
}

func expectSnapshot(t *testing.T, got Snapshot, want *GameMap, elapsed string, points, level int, msg string) {
	t.Helper()
	if got.Time != elapsed || got.Points != points || got.Level != level || got.Message != msg {
		t.Errorf("Expected %s/%d/%d/%q, got %s/%d/%d/%q",
			elapsed, points, level, msg, got.Time, got.Points, got.Level, got.Message)
	}
	if !want.Equal(got.Map) {
		t.Errorf("Unexpected map:\n%v", got.Map.Rows())
	}
}

func TestPresenterInitialState(t *testing.T) {
	src := newFakeSource()
	p, err := NewPresenter(src)
	if err != nil {
		t.Fatalf("NewPresenter failed: %v", err)
	}
	apple := types.Point{X: 2, Y: 2}
	expectSnapshot(t, p.Snapshot(), expectedMap(t, src.state.Snake, &apple, false), "00:00", 0, 1, "")
}

func TestPresenterFollowsUpdates(t *testing.T) {
	src := newFakeSource()
	p, err := NewPresenter(src)
	if err != nil {
		t.Fatal(err)
	}

	src.state.TimeMs = 2500
	src.state.Snake = []types.Point{{X: 3, Y: 5}, {X: 4, Y: 5}, {X: 4, Y: 4}}
	src.state.Apple = &game.AppleState{Position: types.Point{X: 3, Y: 3}}
	src.state.Points = 5
	src.state.Level = 2
	src.fireUpdate()

	apple := types.Point{X: 3, Y: 3}
	expectSnapshot(t, p.Snapshot(), expectedMap(t, src.state.Snake, &apple, false), "00:02", 5, 2, "")
	if p.Snapshot().Heading != types.Left {
		t.Errorf("Expected heading left, got %v", p.Snapshot().Heading)
	}
	if p.Err() != nil {
		t.Errorf("Unexpected error: %v", p.Err())
	}
}

func TestPresenterWithoutApple(t *testing.T) {
	src := newFakeSource()
	src.state.Apple = nil
	p, err := NewPresenter(src)
	if err != nil {
		t.Fatal(err)
	}
	expectSnapshot(t, p.Snapshot(), expectedMap(t, src.state.Snake, nil, false), "00:00", 0, 1, "")
}

func TestPresenterSkipsDeadHead(t *testing.T) {
	tests := []struct {
		name string
		head types.Point
	}{
		{"inside room", types.Point{X: 4, Y: 5}},
		{"on the wall", types.Point{X: 4, Y: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newFakeSource()
			src.state.Snake = column(tt.head, 3)
			src.state.YouDied = true
			p, err := NewPresenter(src)
			if err != nil {
				t.Fatalf("NewPresenter failed: %v", err)
			}
			apple := types.Point{X: 2, Y: 2}
			expectSnapshot(t, p.Snapshot(), expectedMap(t, src.state.Snake, &apple, true), "00:00", 0, 1, MessageGameOver)
		})
	}
}

func TestPresenterRejectsBadState(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*game.State)
		want   error
	}{
		{"snake outside", func(s *game.State) {
			s.Snake = []types.Point{{X: -1, Y: 15}, {X: 4, Y: 4}, {X: 4, Y: 3}}
		}, ErrInvalidPosition},
		{"apple outside", func(s *game.State) {
			s.Apple = &game.AppleState{Position: types.Point{X: 12, Y: 8}}
		}, ErrInvalidPosition},
		{"wall outside", func(s *game.State) {
			s.Walls = append(s.Walls, types.Point{X: -1, Y: -1})
		}, ErrInvalidPosition},
		{"wall on snake", func(s *game.State) {
			s.Walls = append(s.Walls, types.Point{X: 4, Y: 4})
		}, ErrCellFilled},
		{"apple on snake", func(s *game.State) {
			s.Apple = &game.AppleState{Position: types.Point{X: 4, Y: 5}}
		}, ErrCellFilled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newFakeSource()
			tt.mutate(&src.state)
			if _, err := NewPresenter(src); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestPresenterKeepsLastGoodSnapshot(t *testing.T) {
	src := newFakeSource()
	p, err := NewPresenter(src)
	if err != nil {
		t.Fatal(err)
	}
	before := p.Snapshot()

	src.state.Apple = &game.AppleState{Position: types.Point{X: 40, Y: 40}}
	src.state.Points = 7
	src.fireUpdate()

	if !errors.Is(p.Err(), ErrInvalidPosition) {
		t.Errorf("Expected ErrInvalidPosition, got %v", p.Err())
	}
	if p.Snapshot().Points != before.Points {
		t.Error("Expected previous snapshot to be kept")
	}
}

func TestPresenterMessages(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*game.State)
		want   string
	}{
		{"won", func(s *game.State) { s.YouWon = true }, MessageWon},
		{"died", func(s *game.State) { s.YouDied = true }, MessageGameOver},
		{"paused", func(s *game.State) { s.Paused = true }, MessagePaused},
		{"points", func(s *game.State) { s.Points = 10 }, ""},
		{"level", func(s *game.State) { s.Level = 3 }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newFakeSource()
			tt.mutate(&src.state)
			p, err := NewPresenter(src)
			if err != nil {
				t.Fatal(err)
			}
			snap := p.Snapshot()
			if snap.Message != tt.want {
				t.Errorf("Expected message %q, got %q", tt.want, snap.Message)
			}
			if snap.Points != src.state.Points || snap.Level != src.state.Level {
				t.Errorf("Expected points/level %d/%d, got %d/%d", src.state.Points, src.state.Level, snap.Points, snap.Level)
			}
		})
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{8 * time.Second, "00:08"},
		{16 * time.Second, "00:16"},
		{61 * time.Second, "01:01"},
		{660 * time.Second, "11:00"},
		{2500 * time.Millisecond, "00:02"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.in); got != tt.want {
			t.Errorf("FormatTime(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPresenterOnRealGame(t *testing.T) {
	s := game.DefaultSettings()
	s.RoomWidth, s.RoomHeight = 10, 10
	v := clock.NewVirtualScheduler(time.Unix(0, 0))
	g, err := game.New(s, game.WithScheduler(v), game.WithRandom(rng.NewSequence(0.2)))
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewPresenter(g)
	if err != nil {
		t.Fatal(err)
	}

	g.Play()
	for i := 0; i < 4; i++ {
		v.Advance(500 * time.Millisecond)
	}
	if p.Err() != nil {
		t.Fatalf("Unexpected error: %v", p.Err())
	}

	snap := p.Snapshot()
	if snap.Message != MessageGameOver || snap.Time != "00:02" {
		t.Errorf("Expected game over at 00:02, got %q at %s", snap.Message, snap.Time)
	}
	if c, _ := snap.Map.Cell(4, 9); c != Wall {
		t.Errorf("Expected wall under the dead head, got %v", c)
	}
	if c, _ := snap.Map.Cell(4, 8); c != SnakeChain {
		t.Errorf("Expected chain behind the head, got %v", c)
	}
	if c, _ := snap.Map.Cell(2, 2); c != Apple {
		t.Errorf("Expected apple at (2,2), got %v", c)
	}
}
