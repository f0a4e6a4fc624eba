package manager

import (
	"math"
	"time"
)

const (
	// MaxSpeed caps the speed reached through acceleration.
	MaxSpeed = 10.0
	// SpeedMeasure is the number of milliseconds divided by the speed to get
	// the move interval.
	SpeedMeasure = 1000
)

// SpeedManager turns an abstract speed into a move interval.
type SpeedManager struct {
	speed    float64
	step     float64
	interval time.Duration
}

func NewSpeedManager(initialSpeed, step float64) *SpeedManager {
	sm := &SpeedManager{speed: initialSpeed, step: step}
	sm.update()
	return sm
}

// Accelerate raises the speed by one step, clamped to MaxSpeed.
func (sm *SpeedManager) Accelerate() {
	sm.speed += sm.step
	sm.update()
}

func (sm *SpeedManager) update() {
	if sm.speed > MaxSpeed {
		sm.speed = MaxSpeed
	}
	sm.interval = time.Duration(math.Floor(SpeedMeasure/sm.speed)) * time.Millisecond
}

func (sm *SpeedManager) Speed() float64 {
	return sm.speed
}

// MoveInterval returns the game time between two snake moves.
func (sm *SpeedManager) MoveInterval() time.Duration {
	return sm.interval
}
