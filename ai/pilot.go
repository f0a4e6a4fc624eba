package ai

import (
	"snake-engine/game"
	"snake-engine/game/event"
	"snake-engine/game/types"
)

// Game is what a Pilot drives. *game.Game satisfies it.
type Game interface {
	World
	On(name string, fn func(event.Event)) *event.Handler
	Steer(d types.Direction)
	Points() int
	Moves() int
	Active() bool
	Paused() bool
	Died() bool
	Finished() bool
}

// Pilot steers a game with a Policy. It decides on every update event and,
// when learning, feeds the outcome of each move back to the policy.
type Pilot struct {
	game   Game
	policy Policy
	learn  bool

	pending bool
	obs     Observation
	action  Action
	points  int
	moves   int

	TotalReward float64
	Decisions   int
}

// NewPilot subscribes to g. With learn unset the policy is only queried.
func NewPilot(g Game, policy Policy, learn bool) *Pilot {
	p := &Pilot{game: g, policy: policy, learn: learn}
	g.On(game.EventUpdate, func(event.Event) { p.onUpdate() })
	return p
}

func (p *Pilot) onUpdate() {
	if p.pending && p.game.Moves() != p.moves {
		p.settle()
	}

	if p.pending || p.game.Finished() || !p.game.Active() || p.game.Paused() {
		return
	}

	p.obs = Sense(p.game)
	p.action = p.policy.Act(p.obs)
	p.points = p.game.Points()
	p.moves = p.game.Moves()
	p.pending = true
	p.Decisions++
	p.game.Steer(p.action.Apply(p.obs.Heading))
}

// settle scores the last decision once the move it steered has happened.
func (p *Pilot) settle() {
	p.pending = false

	next := Sense(p.game)
	reward := Reward(p.obs, next, p.game.Points() > p.points, p.game.Died())
	p.TotalReward += reward

	done := p.game.Finished()
	if p.learn {
		p.policy.Learn(p.obs, p.action, reward, next, done)
	}
	if done {
		p.policy.EndEpisode()
	}
}
