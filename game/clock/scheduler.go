// Package clock drives the game with periodic ticks measured against an
// injectable time source.
package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler supplies the current time and periodic callbacks.
// Every returns a function that cancels the periodic callback.
type Scheduler interface {
	Now() time.Time
	Every(interval time.Duration, fn func()) (stop func())
}

// RealScheduler fires callbacks from wall-clock tickers. Callbacks never run on
// the ticker goroutines: they are queued and executed by the host loop through
// C or Poll, which keeps all game mutation on a single goroutine.
type RealScheduler struct {
	queue chan func()
}

// NewRealScheduler creates a scheduler whose queue holds up to backlog pending
// callbacks. Ticks arriving while the queue is full are dropped.
func NewRealScheduler(backlog int) *RealScheduler {
	if backlog < 1 {
		backlog = 1
	}
	return &RealScheduler{queue: make(chan func(), backlog)}
}

func (s *RealScheduler) Now() time.Time {
	return time.Now()
}

func (s *RealScheduler) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	var stopped atomic.Bool
	var once sync.Once

	guarded := func() {
		if !stopped.Load() {
			fn()
		}
	}

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				select {
				case s.queue <- guarded:
				default:
				}
			}
		}
	}()

	return func() {
		once.Do(func() {
			stopped.Store(true)
			close(done)
		})
	}
}

// C exposes the pending callbacks for hosts that multiplex them in a select loop.
func (s *RealScheduler) C() <-chan func() {
	return s.queue
}

// Poll runs every queued callback without blocking and returns how many ran.
func (s *RealScheduler) Poll() int {
	n := 0
	for {
		select {
		case fn := <-s.queue:
			fn()
			n++
		default:
			return n
		}
	}
}
