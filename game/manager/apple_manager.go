package manager

import (
	"errors"
	"fmt"

	"snake-engine/game/entity"
	"snake-engine/game/rng"
	"snake-engine/game/types"
)

// MaxSpawnAttempts bounds the rejection sampling of apple positions.
const MaxSpawnAttempts = 100

var ErrRoomCrowded = errors.New("too much iterations of finding new apple place")

// AppleManager places apples on free cells away from the snake.
type AppleManager struct {
	room         entity.Room
	src          rng.Source
	lifeTime     int
	collisionMgr *CollisionManager
}

func NewAppleManager(room entity.Room, src rng.Source, lifeTime int, collisionMgr *CollisionManager) *AppleManager {
	return &AppleManager{
		room:         room,
		src:          src,
		lifeTime:     lifeTime,
		collisionMgr: collisionMgr,
	}
}

// Spawn samples room cells until one is free and off the snake.
func (am *AppleManager) Spawn(snake entity.Snake, origin types.Point) (*entity.Apple, error) {
	for i := 0; i < MaxSpawnAttempts; i++ {
		pos := am.room.RandomFreePoint(am.src)
		if !am.collisionMgr.ValidateSpawnPosition(pos, snake, origin) {
			continue
		}
		return entity.NewApple(pos, am.lifeTime)
	}
	return nil, fmt.Errorf("%w after %d attempts", ErrRoomCrowded, MaxSpawnAttempts)
}
