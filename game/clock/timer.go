package clock

import (
	"errors"
	"fmt"
	"time"

	"snake-engine/game/event"
)

// EventTick is published with the elapsed time.Duration since the previous tick.
const EventTick = "tick"

// MinDelta is the smallest accepted tick granularity.
const MinDelta = 10 * time.Millisecond

var (
	ErrTimerStarted    = errors.New("timer already started")
	ErrTimerNotRunning = errors.New("timer isn't running")
	ErrDeltaTooSmall   = errors.New("timer delta too small")
)

// Timer accumulates game time from periodic ticks and supports pause/resume.
type Timer struct {
	event.Bus

	scheduler Scheduler
	delta     time.Duration
	cancel    func()
	paused    bool
	last      time.Time
	elapsed   time.Duration
}

func NewTimer(s Scheduler, delta time.Duration) (*Timer, error) {
	if delta < MinDelta {
		return nil, fmt.Errorf("%w: %v is lower than %v", ErrDeltaTooSmall, delta, MinDelta)
	}
	return &Timer{scheduler: s, delta: delta}, nil
}

// Start begins tick emission, or resumes a paused timer from the current instant.
func (t *Timer) Start() error {
	if t.Active() {
		if !t.paused {
			return ErrTimerStarted
		}
		t.last = t.scheduler.Now()
		t.paused = false
		return nil
	}
	t.last = t.scheduler.Now()
	t.paused = false
	t.cancel = t.scheduler.Every(t.delta, t.tick)
	return nil
}

// Pause flushes the time elapsed since the last tick and suppresses further ticks.
func (t *Timer) Pause() {
	if !t.Active() {
		return
	}
	t.tick()
	t.paused = true
}

// Stop releases the periodic source. A fresh Start is needed to tick again.
func (t *Timer) Stop() error {
	if !t.Active() {
		return ErrTimerNotRunning
	}
	t.cancel()
	t.cancel = nil
	t.paused = false
	return nil
}

func (t *Timer) tick() {
	if t.paused || !t.Active() {
		return
	}
	now := t.scheduler.Now()
	delta := now.Sub(t.last)
	t.elapsed += delta
	t.Publish(EventTick, delta)
	t.last = now
}

// Active reports whether a periodic source is attached.
func (t *Timer) Active() bool {
	return t.cancel != nil
}

func (t *Timer) Paused() bool {
	return t.paused
}

// Time returns the accumulated game time.
func (t *Timer) Time() time.Duration {
	return t.elapsed
}

func (t *Timer) Delta() time.Duration {
	return t.delta
}
