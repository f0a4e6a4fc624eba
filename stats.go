package main

import (
	"sort"
	"sync"
	"time"

	"snake-engine/game"
)

// GroupSize is how many records of one compression level are folded into a
// single record of the next level.
const GroupSize = 100

// RecentScores bounds the score history kept for the graph.
const RecentScores = 200

// GameRecord summarises one or more finished sessions. A record with
// CompressionIndex 0 is a single session.
type GameRecord struct {
	SessionID        string  `json:"sessionId,omitempty"`
	CompressionIndex int     `json:"compressionIndex"`
	GamesCount       int     `json:"gamesCount"`
	Wins             int     `json:"wins"`
	AverageScore     float64 `json:"averageScore"`
	MedianScore      float64 `json:"medianScore"`
	MaxScore         int     `json:"maxScore"`
	MinScore         int     `json:"minScore"`
	AverageDuration  float64 `json:"averageDuration"`
	MaxDuration      float64 `json:"maxDuration"`
	MinDuration      float64 `json:"minDuration"`
}

// GameStats keeps the session history in memory, compressing old records so
// long training runs stay bounded.
type GameStats struct {
	mutex     sync.RWMutex
	groupSize int
	games     []GameRecord
	recent    []int
}

func NewGameStats(groupSize int) *GameStats {
	if groupSize < 2 {
		groupSize = GroupSize
	}
	return &GameStats{groupSize: groupSize}
}

// Add records a finished session.
func (s *GameStats) Add(st game.State) {
	s.AddGame(st.SessionID, st.Points, time.Duration(st.TimeMs)*time.Millisecond, st.YouWon)
}

func (s *GameStats) AddGame(sessionID string, score int, duration time.Duration, won bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	secs := duration.Seconds()
	rec := GameRecord{
		SessionID:       sessionID,
		GamesCount:      1,
		AverageScore:    float64(score),
		MedianScore:     float64(score),
		MaxScore:        score,
		MinScore:        score,
		AverageDuration: secs,
		MaxDuration:     secs,
		MinDuration:     secs,
	}
	if won {
		rec.Wins = 1
	}
	s.games = append(s.games, rec)

	s.recent = append(s.recent, score)
	if len(s.recent) > RecentScores {
		s.recent = s.recent[len(s.recent)-RecentScores:]
	}

	s.compress()
}

// compress folds the trailing records while a full group of one level exists.
// Records are kept ordered by descending compression level, so a full group is
// always the tail of the slice.
func (s *GameStats) compress() {
	for {
		n := len(s.games)
		if n < s.groupSize {
			return
		}
		level := s.games[n-1].CompressionIndex
		group := s.games[n-s.groupSize:]
		for _, g := range group {
			if g.CompressionIndex != level {
				return
			}
		}
		merged := merge(group)
		merged.CompressionIndex = level + 1
		s.games = append(s.games[:n-s.groupSize], merged)
	}
}

func merge(group []GameRecord) GameRecord {
	out := GameRecord{
		MaxScore:    group[0].MaxScore,
		MinScore:    group[0].MinScore,
		MaxDuration: group[0].MaxDuration,
		MinDuration: group[0].MinDuration,
	}
	var totalScore, totalDuration float64
	for _, g := range group {
		out.MaxScore = max(out.MaxScore, g.MaxScore)
		out.MinScore = min(out.MinScore, g.MinScore)
		out.MaxDuration = max(out.MaxDuration, g.MaxDuration)
		out.MinDuration = min(out.MinDuration, g.MinDuration)
		out.GamesCount += g.GamesCount
		out.Wins += g.Wins
		totalScore += g.AverageScore * float64(g.GamesCount)
		totalDuration += g.AverageDuration * float64(g.GamesCount)
	}
	out.AverageScore = totalScore / float64(out.GamesCount)
	out.AverageDuration = totalDuration / float64(out.GamesCount)
	out.MedianScore = weightedMedian(group)
	return out
}

// weightedMedian takes each record's median once per game it stands for.
func weightedMedian(records []GameRecord) float64 {
	var scores []float64
	for _, r := range records {
		for i := 0; i < r.GamesCount; i++ {
			scores = append(scores, r.MedianScore)
		}
	}
	if len(scores) == 0 {
		return 0
	}
	sort.Float64s(scores)
	mid := len(scores) / 2
	if len(scores)%2 == 0 {
		return (scores[mid-1] + scores[mid]) / 2
	}
	return scores[mid]
}

// Records returns a copy of the history, oldest groups first.
func (s *GameStats) Records() []GameRecord {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]GameRecord(nil), s.games...)
}

// Recent returns the last scores, oldest first.
func (s *GameStats) Recent() []int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]int(nil), s.recent...)
}

func (s *GameStats) GamesPlayed() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	total := 0
	for _, g := range s.games {
		total += g.GamesCount
	}
	return total
}

func (s *GameStats) Wins() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	total := 0
	for _, g := range s.games {
		total += g.Wins
	}
	return total
}

func (s *GameStats) AverageScore() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	var total float64
	var games int
	for _, g := range s.games {
		total += g.AverageScore * float64(g.GamesCount)
		games += g.GamesCount
	}
	if games == 0 {
		return 0
	}
	return total / float64(games)
}

func (s *GameStats) MedianScore() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return weightedMedian(s.games)
}

func (s *GameStats) MaxScore() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if len(s.games) == 0 {
		return 0
	}
	best := s.games[0].MaxScore
	for _, g := range s.games {
		best = max(best, g.MaxScore)
	}
	return best
}

// AverageDuration is in seconds of game time.
func (s *GameStats) AverageDuration() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	var total float64
	var games int
	for _, g := range s.games {
		total += g.AverageDuration * float64(g.GamesCount)
		games += g.GamesCount
	}
	if games == 0 {
		return 0
	}
	return total / float64(games)
}

func (s *GameStats) MaxDuration() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if len(s.games) == 0 {
		return 0
	}
	longest := s.games[0].MaxDuration
	for _, g := range s.games {
		longest = max(longest, g.MaxDuration)
	}
	return longest
}
