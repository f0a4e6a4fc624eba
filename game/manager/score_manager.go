package manager

import "snake-engine/game/event"

const (
	// EventNewLevel carries the new level as an int.
	EventNewLevel = "newLevel"
	// EventWin is published once, when the win threshold is first reached.
	EventWin = "win"
)

// ScoreManager accumulates points and derives the level.
type ScoreManager struct {
	event.Bus

	points           int
	level            int
	winPoints        int
	pointsToNewLevel int
	announcedWin     bool
}

func NewScoreManager(winPoints, pointsToNewLevel int) *ScoreManager {
	return &ScoreManager{
		level:            1,
		winPoints:        winPoints,
		pointsToNewLevel: pointsToNewLevel,
	}
}

// Reward awards one point and publishes level and win transitions.
func (sm *ScoreManager) Reward() {
	sm.points++

	if level := sm.points/sm.pointsToNewLevel + 1; level > sm.level {
		sm.level = level
		sm.Publish(EventNewLevel, level)
	}

	if sm.Won() && !sm.announcedWin {
		sm.announcedWin = true
		sm.Publish(EventWin, sm.points)
	}
}

func (sm *ScoreManager) Points() int {
	return sm.points
}

func (sm *ScoreManager) Level() int {
	return sm.level
}

func (sm *ScoreManager) Won() bool {
	return sm.points >= sm.winPoints
}
