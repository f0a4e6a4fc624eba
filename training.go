package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"snake-engine/ai"
	"snake-engine/game"
	"snake-engine/game/clock"
	"snake-engine/game/rng"
)

// ReportEvery is the number of sessions between two progress lines.
const ReportEvery = 50

// Trainer plays sessions headless on a virtual clock, letting a Policy learn
// from each move.
type Trainer struct {
	Settings game.Settings
	Policy   ai.Policy
	Random   rng.Source
	Logger   *log.Logger
	Stats    *GameStats

	// MaxMoves ends a session that neither dies nor wins. Zero means four
	// times the room area.
	MaxMoves int
}

// Run plays episodes sessions, stopping early when ctx is cancelled.
func (t *Trainer) Run(ctx context.Context, episodes int) error {
	if t.Logger == nil {
		t.Logger = log.New(io.Discard, "", 0)
	}
	if t.Stats == nil {
		t.Stats = NewGameStats(GroupSize)
	}
	if t.Random == nil {
		t.Random = rng.NewTimeSeeded()
	}

	bestScore := 0
	batchScore := 0
	for episode := 0; episode < episodes; episode++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		st, err := t.Episode()
		if err != nil {
			return fmt.Errorf("episode %d: %w", episode+1, err)
		}
		t.Stats.Add(st)
		bestScore = max(bestScore, st.Points)
		batchScore += st.Points

		if (episode+1)%ReportEvery == 0 || episode+1 == episodes {
			n := (episode % ReportEvery) + 1
			t.Logger.Printf("episode %d/%d: batch average %.2f, best %d, overall average %.2f",
				episode+1, episodes, float64(batchScore)/float64(n), bestScore, t.Stats.AverageScore())
			batchScore = 0
		}
	}
	return nil
}

// Episode plays a single session to its end and returns its final state.
func (t *Trainer) Episode() (game.State, error) {
	v := clock.NewVirtualScheduler(time.Unix(0, 0))
	g, err := game.New(t.Settings, game.WithScheduler(v), game.WithRandom(t.Random))
	if err != nil {
		return game.State{}, err
	}
	ai.NewPilot(g, t.Policy, true)

	if err := g.Play(); err != nil {
		return game.State{}, err
	}

	limit := t.MaxMoves
	if limit <= 0 {
		limit = 4 * t.Settings.RoomWidth * t.Settings.RoomHeight
	}
	for !g.Finished() && g.Err() == nil && g.Moves() < limit {
		v.Advance(g.MoveInterval())
	}
	if err := g.Err(); err != nil {
		return game.State{}, err
	}

	if !g.Finished() {
		// The pilot only closes an episode on death or win.
		if err := g.End(); err != nil {
			return game.State{}, err
		}
		t.Policy.EndEpisode()
	}
	return g.State(), nil
}
