package ai

import (
	"math"
)

// Policy picks relative actions and learns from their outcome.
type Policy interface {
	Act(obs Observation) Action
	Learn(obs Observation, action Action, reward float64, next Observation, done bool)
	// EndEpisode is called once per finished game.
	EndEpisode()
}

// Random is the randomness a policy explores with.
type Random interface {
	Float64() float64
	Intn(n int) int
}

// QTable maps an observation key to action values.
type QTable map[string][NumActions]float64

// QLearning is a tabular epsilon-greedy learner.
type QLearning struct {
	QTable         QTable
	LearningRate   float64
	Discount       float64
	Epsilon        float64
	InitialEpsilon float64
	MinEpsilon     float64
	EpsilonDecay   float64
	TotalReward    float64
	GamesPlayed    int

	rand Random
}

func NewQLearning(rand Random) *QLearning {
	return &QLearning{
		QTable:         make(QTable),
		LearningRate:   0.1,
		Discount:       0.9,
		Epsilon:        0.9, // Start exploring a lot
		InitialEpsilon: 0.9,
		MinEpsilon:     0.01,
		EpsilonDecay:   0.99,
		rand:           rand,
	}
}

func (q *QLearning) Act(obs Observation) Action {
	// Exploration: random action
	if q.rand.Float64() < q.Epsilon {
		return Action(q.rand.Intn(NumActions))
	}
	return q.BestAction(obs)
}

// BestAction returns the greedy action. Ties go to the lowest action, so an
// unseen state turns left.
func (q *QLearning) BestAction(obs Observation) Action {
	values := q.QTable[obs.Key()]
	best := Action(0)
	bestValue := math.Inf(-1)
	for a, v := range values {
		if v > bestValue {
			bestValue = v
			best = Action(a)
		}
	}
	return best
}

// Learn applies Q(s,a) += lr * (r + discount * max Q(s',.) - Q(s,a)).
// Terminal moves have no future value.
func (q *QLearning) Learn(obs Observation, action Action, reward float64, next Observation, done bool) {
	key := obs.Key()
	values := q.QTable[key]

	target := reward
	if !done {
		target += q.Discount * maxValue(q.QTable[next.Key()])
	}
	values[action] += q.LearningRate * (target - values[action])
	q.QTable[key] = values

	q.TotalReward += reward
}

// EndEpisode decays epsilon towards MinEpsilon.
func (q *QLearning) EndEpisode() {
	q.GamesPlayed++
	q.Epsilon = math.Max(q.MinEpsilon, q.InitialEpsilon*math.Pow(q.EpsilonDecay, float64(q.GamesPlayed)))
}

func maxValue(values [NumActions]float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		m = math.Max(m, v)
	}
	return m
}
