package ui

import (
	"fmt"
	"time"

	"snake-engine/game"
	"snake-engine/game/event"
	"snake-engine/game/types"
)

// Messages shown over the map.
const (
	MessageGameOver = "Game over!"
	MessageWon      = "You won!"
	MessagePaused   = "Game paused!"
)

// Source is what a Presenter observes. *game.Game satisfies it.
type Source interface {
	State() game.State
	On(name string, fn func(event.Event)) *event.Handler
}

// Snapshot is a ready-to-draw frame.
type Snapshot struct {
	Map     *GameMap
	Time    string
	Points  int
	Level   int
	Message string
	// Heading is the direction of the last move, Up before the first one.
	Heading types.Direction
}

// Presenter keeps the latest Snapshot of a game, rebuilt on every update event.
type Presenter struct {
	src      Source
	snapshot Snapshot
	err      error
}

// NewPresenter subscribes to src and builds the first snapshot.
func NewPresenter(src Source) (*Presenter, error) {
	p := &Presenter{src: src}
	if err := p.Update(); err != nil {
		return nil, err
	}
	src.On(game.EventUpdate, func(event.Event) {
		p.err = p.Update()
	})
	return p, nil
}

// Update rebuilds the snapshot. On error the previous snapshot is kept.
func (p *Presenter) Update() error {
	snap, err := NewSnapshot(p.src.State())
	if err != nil {
		return err
	}
	p.snapshot = snap
	return nil
}

func (p *Presenter) Snapshot() Snapshot {
	return p.snapshot
}

// Err returns the error of the last rebuild triggered by an update event.
func (p *Presenter) Err() error {
	return p.err
}

// NewSnapshot draws st onto a fresh map.
func NewSnapshot(st game.State) (Snapshot, error) {
	m, err := drawMap(st)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Map:     m,
		Time:    FormatTime(time.Duration(st.TimeMs) * time.Millisecond),
		Points:  st.Points,
		Level:   st.Level,
		Message: message(st),
		Heading: heading(st.Snake),
	}, nil
}

func heading(snake []types.Point) types.Direction {
	if len(snake) < 2 {
		return types.Up
	}
	if d, ok := types.DirectionOf(snake[0].Sub(snake[1])); ok {
		return d
	}
	return types.Up
}

func message(st game.State) string {
	switch {
	case st.YouDied:
		return MessageGameOver
	case st.YouWon:
		return MessageWon
	case st.Paused:
		return MessagePaused
	default:
		return ""
	}
}

func drawMap(st game.State) (*GameMap, error) {
	m, err := NewGameMap(st.Width, st.Height)
	if err != nil {
		return nil, err
	}
	for _, w := range st.Walls {
		if err := m.FillCell(w.X, w.Y, Wall); err != nil {
			return nil, fmt.Errorf("draw wall: %w", err)
		}
	}

	last := len(st.Snake) - 1
	for i, p := range st.Snake {
		// A dead head usually sits on a wall or on the body.
		if i == 0 && st.YouDied {
			continue
		}
		cell := SnakeChain
		switch i {
		case 0:
			cell = SnakeHead
		case last:
			cell = SnakeTail
		}
		if err := m.FillCell(p.X, p.Y, cell); err != nil {
			return nil, fmt.Errorf("draw snake: %w", err)
		}
	}

	if st.Apple != nil {
		if err := m.FillCell(st.Apple.Position.X, st.Apple.Position.Y, Apple); err != nil {
			return nil, fmt.Errorf("draw apple: %w", err)
		}
	}
	return m, nil
}

// FormatTime renders d as mm:ss, truncating to whole seconds.
func FormatTime(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
