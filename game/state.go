package game

import "snake-engine/game/types"

// State is a read-only copy of everything a frontend needs to draw a frame.
type State struct {
	SessionID      string        `json:"sessionId"`
	Width          int           `json:"width"`
	Height         int           `json:"height"`
	Walls          []types.Point `json:"walls"`
	Snake          []types.Point `json:"snake"`
	Apple          *AppleState   `json:"apple,omitempty"`
	Points         int           `json:"points"`
	Level          int           `json:"level"`
	TimeMs         int64         `json:"time"`
	Speed          float64       `json:"speed"`
	MoveIntervalMs int64         `json:"moveInterval"`
	YouWon         bool          `json:"youWon"`
	YouDied        bool          `json:"youDied"`
	Paused         bool          `json:"paused"`
	Active         bool          `json:"active"`
}

type AppleState struct {
	Position  types.Point `json:"position"`
	Spoiled   bool        `json:"spoiled"`
	Remaining int         `json:"remaining"`
}

// Finished mirrors Game.Finished for a snapshot.
func (s State) Finished() bool {
	return s.YouWon || s.YouDied
}

// Head returns the head cell, or false for an empty snake.
func (s State) Head() (types.Point, bool) {
	if len(s.Snake) == 0 {
		return types.Point{}, false
	}
	return s.Snake[0], true
}

// State captures the current session state.
func (g *Game) State() State {
	grid := g.room.Grid()
	st := State{
		SessionID:      g.ID,
		Width:          grid.Width,
		Height:         grid.Height,
		Walls:          g.room.Walls(),
		Snake:          g.Snake(),
		Points:         g.Points(),
		Level:          g.Level(),
		TimeMs:         g.Time().Milliseconds(),
		Speed:          g.Speed(),
		MoveIntervalMs: g.MoveInterval().Milliseconds(),
		YouWon:         g.Won(),
		YouDied:        g.Died(),
		Paused:         g.Paused(),
		Active:         g.Active(),
	}
	if g.apple != nil {
		st.Apple = &AppleState{
			Position:  g.apple.Position(),
			Spoiled:   g.apple.Spoiled(),
			Remaining: g.apple.Remaining(),
		}
	}
	return st
}
