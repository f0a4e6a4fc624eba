package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-engine/ai"
	"snake-engine/game"
	"snake-engine/game/clock"
	"snake-engine/game/rng"
	"snake-engine/qlearning"
	"snake-engine/ui"
)

const frameInterval = time.Second / 60

func main() {
	configPath := flag.String("config", "", "JSON settings file")
	seed := flag.Uint64("seed", 0, "Random seed (0 seeds from the clock)")
	frontend := flag.String("frontend", "raylib", "Frontend: raylib or terminal")
	autopilot := flag.Bool("autopilot", false, "Let the AI play")
	policyName := flag.String("policy", "qtable", "Autopilot policy: qtable or dqn")
	train := flag.Int("train", 0, "Train the policy headless for N games and exit")
	sound := flag.Bool("sound", false, "Play sound effects")
	width := flag.Int("width", 0, "Room width (overrides the config)")
	height := flag.Int("height", 0, "Room height (overrides the config)")
	size := flag.Int("size", 0, "Initial snake size (overrides the config)")
	flag.Parse()

	logger := log.New(os.Stderr, "snake: ", log.LstdFlags)

	settings, err := loadSettings(*configPath, *width, *height, *size)
	if err != nil {
		logger.Fatalf("settings: %v", err)
	}
	if err := settings.Validate(); err != nil {
		logger.Fatalf("settings: %v", err)
	}

	random := rng.NewTimeSeeded()
	if *seed != 0 {
		random = rng.New(*seed)
	}

	var policy ai.Policy
	if *autopilot || *train > 0 {
		if policy, err = newPolicy(*policyName, random); err != nil {
			logger.Fatal(err)
		}
	}

	if *train > 0 {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		stats, err := runTraining(ctx, settings, policy, random, logger, *train)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Fatalf("training: %v", err)
		}
		logger.Printf("trained %d games: average %.2f, median %.1f, best %d, wins %d",
			stats.GamesPlayed(), stats.AverageScore(), stats.MedianScore(), stats.MaxScore(), stats.Wins())
		return
	}

	var effects *ui.Sound
	if *sound {
		effects = ui.NewSound()
		if err := effects.Init(); err != nil {
			logger.Printf("sound disabled: %v", err)
			effects = nil
		} else {
			defer effects.Close()
		}
	}

	switch *frontend {
	case "raylib":
		err = runRaylib(settings, random, logger, policy, effects)
	case "terminal":
		err = runTerminal(settings, random, logger, policy, effects)
	default:
		err = fmt.Errorf("unknown frontend %q", *frontend)
	}
	if err != nil {
		logger.Fatal(err)
	}
}

// loadSettings reads the optional config file and applies flag overrides.
func loadSettings(path string, width, height, size int) (game.Settings, error) {
	settings := game.DefaultSettings()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return settings, err
		}
		if settings, err = game.ParseSettings(data); err != nil {
			return settings, err
		}
	}
	if width > 0 {
		settings.RoomWidth = width
	}
	if height > 0 {
		settings.RoomHeight = height
	}
	if size > 0 {
		settings.InitialSnakeSize = size
	}
	return settings, nil
}

func newPolicy(name string, random ai.Random) (ai.Policy, error) {
	switch name {
	case "qtable":
		return ai.NewQLearning(random), nil
	case "dqn":
		return qlearning.NewAgent(random)
	default:
		return nil, fmt.Errorf("unknown policy %q", name)
	}
}

func runTraining(ctx context.Context, settings game.Settings, policy ai.Policy, random rng.Source, logger *log.Logger, games int) (*GameStats, error) {
	trainer := &Trainer{
		Settings: settings,
		Policy:   policy,
		Random:   random,
		Logger:   logger,
		Stats:    NewGameStats(GroupSize),
	}
	err := trainer.Run(ctx, games)
	return trainer.Stats, err
}

func runRaylib(settings game.Settings, random rng.Source, logger *log.Logger, policy ai.Policy, effects *ui.Sound) error {
	rl.InitWindow(1280, 800, "Snake")
	rl.SetWindowState(rl.FlagWindowResizable)
	rl.SetExitKey(0)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	scheduler := clock.NewRealScheduler(64)
	session, err := NewSession(settings, scheduler, random, logger, policy, effects)
	if err != nil {
		return err
	}
	renderer := ui.NewRenderer()

	for !rl.WindowShouldClose() {
		quit, err := session.Handle(ui.RaylibCommand())
		if err != nil {
			logger.Print(err)
		}
		if quit {
			return nil
		}

		scheduler.Poll()
		if err := session.Settle(); err != nil {
			return err
		}

		snap, err := session.Snapshot()
		if err != nil {
			return err
		}
		renderer.Draw(snap, session.Panel())
	}
	return nil
}

func runTerminal(settings game.Settings, random rng.Source, logger *log.Logger, policy ai.Policy, effects *ui.Sound) error {
	term, err := ui.NewTerminal()
	if err != nil {
		return err
	}
	defer term.Close()

	// Log lines would scroll the screen away.
	out := logger.Writer()
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(out)

	scheduler := clock.NewRealScheduler(64)
	session, err := NewSession(settings, scheduler, random, logger, policy, effects)
	if err != nil {
		return err
	}

	frames := time.NewTicker(frameInterval)
	defer frames.Stop()
	events := term.Events()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			quit, err := session.Handle(ui.TerminalCommand(ev))
			if err != nil {
				logger.Print(err)
			}
			if quit {
				return nil
			}
		case fn := <-scheduler.C():
			fn()
			if err := session.Settle(); err != nil {
				return err
			}
		case <-frames.C:
			snap, err := session.Snapshot()
			if err != nil {
				return err
			}
			term.Draw(snap, session.Panel())
		}
	}
}
