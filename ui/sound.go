package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"snake-engine/game"
	"snake-engine/game/event"
)

const sampleRate = beep.SampleRate(44100)

type note struct {
	freq     float64
	duration time.Duration
}

// effects are short generated jingles keyed by game event name.
var effects = map[string][]note{
	game.EventEat:      {{880, 50 * time.Millisecond}},
	game.EventNewLevel: {{660, 80 * time.Millisecond}, {990, 120 * time.Millisecond}},
	game.EventDeath:    {{220, 150 * time.Millisecond}, {110, 250 * time.Millisecond}},
	game.EventWin:      {{523, 100 * time.Millisecond}, {659, 100 * time.Millisecond}, {784, 200 * time.Millisecond}},
}

// Subscriber is anything publishing game events.
type Subscriber interface {
	On(name string, fn func(event.Event)) *event.Handler
}

// Sound plays effects through the system speaker.
type Sound struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewSound() *Sound {
	return &Sound{mixer: &beep.Mixer{}}
}

// Init opens the speaker. A game can run without sound when it fails.
func (s *Sound) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

func (s *Sound) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

// Attach plays the matching effect for every event in effects.
func (s *Sound) Attach(src Subscriber) {
	for name := range effects {
		src.On(name, func(event.Event) { s.Play(name) })
	}
}

// Play mixes in the effect for name. Unknown names are ignored.
func (s *Sound) Play(name string) {
	notes, ok := effects[name]
	if !ok {
		return
	}
	streamer, err := jingle(sampleRate, notes)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

func jingle(rate beep.SampleRate, notes []note) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		sine, err := generators.SineTone(rate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("tone %.0fHz: %w", n.freq, err)
		}
		parts = append(parts, beep.Take(rate.N(n.duration), sine))
	}
	return beep.Seq(parts...), nil
}
