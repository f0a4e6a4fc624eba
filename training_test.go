package main

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"snake-engine/ai"
	"snake-engine/game"
	"snake-engine/game/rng"
)

// constant always plays one action and counts what the trainer asks of it.
type constant struct {
	action   ai.Action
	lessons  int
	episodes int
}

func (c *constant) Act(ai.Observation) ai.Action { return c.action }
func (c *constant) EndEpisode()                  { c.episodes++ }

func (c *constant) Learn(ai.Observation, ai.Action, float64, ai.Observation, bool) {
	c.lessons++
}

func smallSettings() game.Settings {
	s := game.DefaultSettings()
	s.RoomWidth, s.RoomHeight = 10, 10
	return s
}

func TestTrainerRun(t *testing.T) {
	var buf bytes.Buffer
	policy := &constant{action: ai.Straight}
	trainer := &Trainer{
		Settings: smallSettings(),
		Policy:   policy,
		Random:   rng.NewSequence(0.1),
		Logger:   log.New(&buf, "", 0),
	}

	if err := trainer.Run(context.Background(), 3); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if trainer.Stats.GamesPlayed() != 3 {
		t.Errorf("Expected 3 games, got %d", trainer.Stats.GamesPlayed())
	}
	if policy.episodes != 3 {
		t.Errorf("Expected 3 episodes, got %d", policy.episodes)
	}
	// Straight up from (4,5) hits the wall on the fourth move.
	if policy.lessons != 12 {
		t.Errorf("Expected 12 lessons, got %d", policy.lessons)
	}
	if trainer.Stats.MaxScore() != 0 || trainer.Stats.AverageDuration() <= 0 {
		t.Errorf("Unexpected stats: best %d, duration %v", trainer.Stats.MaxScore(), trainer.Stats.AverageDuration())
	}
	if !strings.Contains(buf.String(), "episode 3/3") {
		t.Errorf("Expected a final progress line, got %q", buf.String())
	}
}

func TestTrainerCapsEndlessGames(t *testing.T) {
	policy := &constant{action: ai.Straight}
	trainer := &Trainer{
		Settings: smallSettings(),
		Policy:   policy,
		Random:   rng.NewSequence(0.1),
		MaxMoves: 2,
	}

	st, err := trainer.Episode()
	if err != nil {
		t.Fatalf("Episode failed: %v", err)
	}
	if st.YouDied || st.Active {
		t.Errorf("Expected a stopped live game, got %+v", st)
	}
	if head, _ := st.Head(); head.X != 4 || head.Y != 7 {
		t.Errorf("Expected head at (4,7), got %v", head)
	}
	if policy.episodes != 1 {
		t.Errorf("Expected the episode to be closed, got %d", policy.episodes)
	}
}

func TestTrainerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	trainer := &Trainer{Settings: smallSettings(), Policy: &constant{}}
	if err := trainer.Run(ctx, 5); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if trainer.Stats.GamesPlayed() != 0 {
		t.Errorf("Expected no games, got %d", trainer.Stats.GamesPlayed())
	}
}

func TestTrainerRejectsBadSettings(t *testing.T) {
	s := smallSettings()
	s.RoomWidth = 3
	trainer := &Trainer{Settings: s, Policy: &constant{}}
	if err := trainer.Run(context.Background(), 1); err == nil {
		t.Fatal("Expected an error for a tiny room")
	}
}

func TestTrainerTeachesQTable(t *testing.T) {
	policy := ai.NewQLearning(rng.New(7))
	trainer := &Trainer{Settings: smallSettings(), Policy: policy, Random: rng.New(7)}
	if err := trainer.Run(context.Background(), 20); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if policy.GamesPlayed != 20 {
		t.Errorf("Expected 20 games played, got %d", policy.GamesPlayed)
	}
	if len(policy.QTable) == 0 {
		t.Error("Expected the Q-table to fill up")
	}
	if policy.Epsilon >= policy.InitialEpsilon {
		t.Errorf("Expected epsilon to decay, got %v", policy.Epsilon)
	}
}
