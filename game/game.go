package game

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"snake-engine/game/clock"
	"snake-engine/game/entity"
	"snake-engine/game/event"
	"snake-engine/game/manager"
	"snake-engine/game/rng"
	"snake-engine/game/types"
)

// Events published by Game.
const (
	// EventUpdate follows every state change: play, pause, end and each move.
	EventUpdate = "update"
	// EventEat carries the new number of points.
	EventEat = "eat"
	// EventSpoil carries the position of the apple that went bad.
	EventSpoil = "spoil"
	// EventDeath is published once when the snake dies.
	EventDeath = "death"
	// EventNewLevel carries the new level.
	EventNewLevel = manager.EventNewLevel
	// EventWin is published once when the win threshold is reached.
	EventWin = manager.EventWin
)

// TickDelta is the granularity of the game clock.
const TickDelta = 10 * time.Millisecond

// ErrFinished is returned by Play, Pause and End once the snake died or won.
var ErrFinished = errors.New("game is finished")

// Option customises a Game at construction.
type Option func(*Game)

// WithScheduler drives the game clock from s.
func WithScheduler(s clock.Scheduler) Option {
	return func(g *Game) { g.scheduler = s }
}

// WithRandom sets the source used to place apples.
func WithRandom(src rng.Source) Option {
	return func(g *Game) { g.src = src }
}

// WithLogger sets where lifecycle lines go. The default discards them.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// Game is a single snake session: NotStarted, Playing, Paused, Finished.
// Methods must be called from the goroutine that runs the scheduler callbacks.
type Game struct {
	event.Bus

	ID string

	settings  Settings
	logger    *log.Logger
	src       rng.Source
	scheduler clock.Scheduler

	room   entity.Room
	snake  entity.Snake
	apple  *entity.Apple
	origin types.Point

	direction types.Direction
	sinceMove time.Duration
	moves     int
	fault     error

	timer        *clock.Timer
	score        *manager.ScoreManager
	speed        *manager.SpeedManager
	collisionMgr *manager.CollisionManager
	appleMgr     *manager.AppleManager
}

// New validates settings and builds a session ready to Play.
func New(settings Settings, opts ...Option) (*Game, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		ID:        uuid.New().String(),
		settings:  settings,
		direction: types.Up,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard, "", 0)
	}
	if g.src == nil {
		g.src = rng.NewTimeSeeded()
	}
	if g.scheduler == nil {
		g.scheduler = clock.NewRealScheduler(64)
	}

	snake, err := entity.NewSnake(settings.SnakeType, settings.InitialSnakeSize)
	if err != nil {
		return nil, fmt.Errorf("create snake: %w", err)
	}
	room, err := entity.NewRoom(settings.RoomType, settings.RoomWidth, settings.RoomHeight)
	if err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}
	g.snake = snake
	g.room = room
	g.collisionMgr = manager.NewCollisionManager(room)

	g.origin, err = headPlacement(room.Grid(), snake.Len(), g.collisionMgr)
	if err != nil {
		return nil, err
	}

	g.appleMgr = manager.NewAppleManager(room, g.src, settings.AppleLifeTime, g.collisionMgr)
	g.speed = manager.NewSpeedManager(settings.InitialSpeed, settings.SpeedAccelerationStep)
	g.timer, err = clock.NewTimer(g.scheduler, TickDelta)
	if err != nil {
		return nil, err
	}
	g.timer.On(clock.EventTick, func(e event.Event) {
		g.onTick(e.Payload.(time.Duration))
	})

	g.score = manager.NewScoreManager(settings.WinPoints, settings.PointsToNewLevel)
	g.score.On(manager.EventNewLevel, func(e event.Event) {
		g.onNewLevel(e.Payload.(int))
	})
	g.score.On(manager.EventWin, func(event.Event) {
		g.onWin()
	})

	return g, nil
}

// Play starts the session, or resumes it when paused.
func (g *Game) Play() error {
	if g.Finished() {
		return fmt.Errorf("can't play: %w", ErrFinished)
	}
	if g.fault != nil {
		return g.fault
	}

	switch {
	case !g.timer.Active():
		apple, err := g.appleMgr.Spawn(g.snake, g.origin)
		if err != nil {
			return fmt.Errorf("spawn apple: %w", err)
		}
		g.apple = apple
		if err := g.timer.Start(); err != nil {
			return err
		}
		g.logger.Printf("game %s started, head at %v, apple at %v", g.ID, g.SnakeHead(), apple.Position())
		g.Publish(EventUpdate, g)
	case g.timer.Paused():
		if err := g.timer.Start(); err != nil {
			return err
		}
		g.Publish(EventUpdate, g)
	}
	return nil
}

// Pause freezes game time, apple aging and movement.
func (g *Game) Pause() error {
	if g.Finished() {
		return fmt.Errorf("can't pause: %w", ErrFinished)
	}
	g.timer.Pause()
	g.Publish(EventUpdate, g)
	return nil
}

// End stops the clock. A later Play starts it again with a fresh apple.
func (g *Game) End() error {
	if g.Finished() {
		return fmt.Errorf("can't end: %w", ErrFinished)
	}
	if err := g.timer.Stop(); err != nil {
		return fmt.Errorf("can't end: %w", err)
	}
	g.Publish(EventUpdate, g)
	return nil
}

func (g *Game) MoveUp()    { g.Steer(types.Up) }
func (g *Game) MoveDown()  { g.Steer(types.Down) }
func (g *Game) MoveLeft()  { g.Steer(types.Left) }
func (g *Game) MoveRight() { g.Steer(types.Right) }

// Steer sets the direction used by the next move. It is ignored while the game
// is not running and when d would reverse the last move.
func (g *Game) Steer(d types.Direction) {
	if g.Finished() || !g.timer.Active() || g.timer.Paused() {
		return
	}
	if last, ok := types.DirectionOf(g.snake.LastVector()); ok && d == last.Opposite() {
		return
	}
	g.direction = d
}

func (g *Game) onTick(delta time.Duration) {
	if g.snake.Dead() {
		return
	}
	g.sinceMove += delta
	interval := g.speed.MoveInterval()
	if g.sinceMove < interval {
		return
	}
	g.sinceMove -= interval

	g.advance()
	g.Publish(EventUpdate, g)
}

func (g *Game) advance() {
	if err := g.snake.Move(g.direction.Vector()); err != nil {
		g.fail(fmt.Errorf("move snake: %w", err))
		return
	}
	g.moves++
	g.apple.Tick()

	head := g.SnakeHead()
	if g.collisionMgr.IsWallCollision(head) {
		g.snake.Kill()
	}

	if !g.snake.Dead() {
		switch {
		case g.collisionMgr.IsAppleCollision(head, g.apple):
			g.score.Reward()
			g.snake.Grow()
			g.Publish(EventEat, g.score.Points())
			g.respawnApple()
		case g.apple.Spoiled():
			g.Publish(EventSpoil, g.apple.Position())
			g.respawnApple()
		}
	}

	if g.snake.Dead() {
		g.finish()
		g.logger.Printf("game %s: snake died at %v with %d points", g.ID, head, g.score.Points())
		g.Publish(EventDeath, g.score.Points())
	}
}

func (g *Game) respawnApple() {
	apple, err := g.appleMgr.Spawn(g.snake, g.origin)
	if err != nil {
		g.fail(fmt.Errorf("spawn apple: %w", err))
		return
	}
	g.apple = apple
}

// fail records an unrecoverable tick error and halts the clock.
func (g *Game) fail(err error) {
	g.fault = err
	g.finish()
	g.logger.Printf("game %s halted: %v", g.ID, err)
}

func (g *Game) finish() {
	if g.timer.Active() {
		g.timer.Stop()
	}
}

func (g *Game) onNewLevel(level int) {
	g.speed.Accelerate()
	g.logger.Printf("game %s: level %d, move interval %v", g.ID, level, g.speed.MoveInterval())
	g.Publish(EventNewLevel, level)
}

func (g *Game) onWin() {
	g.finish()
	g.logger.Printf("game %s won with %d points", g.ID, g.score.Points())
	g.Publish(EventWin, g.score.Points())
}

// Finished reports whether the snake died or the player won.
func (g *Game) Finished() bool {
	return g.snake.Dead() || g.score.Won()
}

// Err returns the error that halted the game during a tick, if any.
func (g *Game) Err() error {
	return g.fault
}

// Snake returns the snake cells in room coordinates, head first.
func (g *Game) Snake() []types.Point {
	chain := g.snake.Chain()
	for i := range chain {
		chain[i] = chain[i].Add(g.origin)
	}
	return chain
}

func (g *Game) SnakeHead() types.Point {
	return g.snake.Head().Add(g.origin)
}

// SnakeLen returns the number of snake cells.
func (g *Game) SnakeLen() int {
	return g.snake.Len()
}

// Apple returns the current apple, or nil before the first Play.
func (g *Game) Apple() *entity.Apple {
	return g.apple
}

func (g *Game) Room() entity.Room {
	return g.room
}

func (g *Game) Settings() Settings {
	return g.settings
}

// Direction returns the direction the next move will take.
func (g *Game) Direction() types.Direction {
	return g.direction
}

// Heading returns the direction of the last move.
func (g *Game) Heading() types.Direction {
	d, _ := types.DirectionOf(g.snake.LastVector())
	return d
}

func (g *Game) Points() int {
	return g.score.Points()
}

func (g *Game) Level() int {
	return g.score.Level()
}

func (g *Game) Speed() float64 {
	return g.speed.Speed()
}

func (g *Game) MoveInterval() time.Duration {
	return g.speed.MoveInterval()
}

// Moves returns how many cells the snake advanced.
func (g *Game) Moves() int {
	return g.moves
}

// Time returns the elapsed game time, pauses excluded.
func (g *Game) Time() time.Duration {
	return g.timer.Time()
}

func (g *Game) Active() bool {
	return g.timer.Active()
}

func (g *Game) Paused() bool {
	return g.timer.Paused()
}

func (g *Game) Won() bool {
	return g.score.Won()
}

func (g *Game) Died() bool {
	return g.snake.Dead()
}

// IsDanger reports whether the head would die moving onto the room cell pos.
func (g *Game) IsDanger(pos types.Point) bool {
	return g.collisionMgr.IsDanger(pos, g.snake, g.origin)
}

// Scheduler returns the scheduler driving the clock, so hosts can pump it.
func (g *Game) Scheduler() clock.Scheduler {
	return g.scheduler
}
