package main

import (
	"fmt"
	"log"

	"snake-engine/ai"
	"snake-engine/game"
	"snake-engine/game/clock"
	"snake-engine/game/event"
	"snake-engine/game/rng"
	"snake-engine/qlearning"
	"snake-engine/ui"
)

// Session hosts the game a frontend is showing and replaces it on restart.
type Session struct {
	settings  game.Settings
	scheduler clock.Scheduler
	random    rng.Source
	logger    *log.Logger

	policy ai.Policy
	sound  *ui.Sound
	stats  *GameStats

	game      *game.Game
	presenter *ui.Presenter
	pilot     *ai.Pilot
}

// NewSession starts the first game. With a policy the game is steered by an
// autopilot that keeps learning and restarts on its own.
func NewSession(settings game.Settings, scheduler clock.Scheduler, random rng.Source, logger *log.Logger, policy ai.Policy, sound *ui.Sound) (*Session, error) {
	s := &Session{
		settings:  settings,
		scheduler: scheduler,
		random:    random,
		logger:    logger,
		policy:    policy,
		sound:     sound,
		stats:     NewGameStats(GroupSize),
	}
	if err := s.Restart(); err != nil {
		return nil, err
	}
	return s, nil
}

// Restart drops the current game and builds a new one.
func (s *Session) Restart() error {
	if s.game != nil && !s.game.Finished() && s.game.Active() {
		s.game.End()
	}

	g, err := game.New(s.settings,
		game.WithScheduler(s.scheduler),
		game.WithRandom(s.random),
		game.WithLogger(s.logger))
	if err != nil {
		return err
	}
	presenter, err := ui.NewPresenter(g)
	if err != nil {
		return err
	}

	record := func(event.Event) { s.stats.Add(g.State()) }
	g.On(game.EventDeath, record)
	g.On(game.EventWin, record)
	if s.sound != nil {
		s.sound.Attach(g)
	}

	s.game, s.presenter, s.pilot = g, presenter, nil
	if s.policy != nil {
		s.pilot = ai.NewPilot(g, s.policy, true)
		return g.Play()
	}
	return nil
}

// Handle applies a frontend command and reports whether the host should quit.
func (s *Session) Handle(cmd ui.Command) (bool, error) {
	switch cmd {
	case ui.CmdQuit:
		return true, nil
	case ui.CmdRestart:
		if s.game.Finished() || s.game.Err() != nil {
			return false, s.Restart()
		}
		return false, nil
	}
	if s.pilot != nil && cmd != ui.CmdToggle {
		return false, nil
	}
	return false, ui.Dispatch(cmd, s.game)
}

// Settle restarts a finished autopilot game.
func (s *Session) Settle() error {
	if s.pilot != nil && s.game.Finished() {
		return s.Restart()
	}
	return nil
}

func (s *Session) Game() *game.Game {
	return s.game
}

func (s *Session) Stats() *GameStats {
	return s.stats
}

// Snapshot is the latest frame, or an error when the last rebuild failed.
func (s *Session) Snapshot() (ui.Snapshot, error) {
	if err := s.presenter.Err(); err != nil {
		return ui.Snapshot{}, err
	}
	return s.presenter.Snapshot(), nil
}

// Panel lists the side information drawn next to the map.
func (s *Session) Panel() ui.Panel {
	lines := []string{
		fmt.Sprintf("Speed: %.1f", s.game.Speed()),
		fmt.Sprintf("Games: %d", s.stats.GamesPlayed()),
		fmt.Sprintf("Best: %d", s.stats.MaxScore()),
		fmt.Sprintf("Average: %.2f", s.stats.AverageScore()),
	}
	switch p := s.policy.(type) {
	case *ai.QLearning:
		lines = append(lines, fmt.Sprintf("Epsilon: %.3f", p.Epsilon), fmt.Sprintf("States: %d", len(p.QTable)))
	case *qlearning.Agent:
		lines = append(lines, fmt.Sprintf("Epsilon: %.3f", p.Epsilon), fmt.Sprintf("Loss: %.4f", p.LastLoss))
		if p.LastErr != nil {
			lines = append(lines, fmt.Sprintf("Training error: %v", p.LastErr))
		}
	}
	if s.pilot != nil {
		lines = append(lines, fmt.Sprintf("Reward: %.1f", s.pilot.TotalReward))
	}
	return ui.Panel{Lines: lines, Scores: s.stats.Recent()}
}
