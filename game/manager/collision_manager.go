package manager

import (
	"snake-engine/game/entity"
	"snake-engine/game/types"
)

// CollisionManager answers placement and movement questions against a room.
// Snake cells are local to the snake; origin translates them to room cells.
type CollisionManager struct {
	room entity.Room
}

func NewCollisionManager(room entity.Room) *CollisionManager {
	return &CollisionManager{room: room}
}

// IsWallCollision reports whether pos cannot hold a snake head.
func (cm *CollisionManager) IsWallCollision(pos types.Point) bool {
	return !cm.room.IsInside(pos) || !cm.room.IsFree(pos)
}

// IsSnakeCollision reports whether the room cell pos is covered by the snake.
func (cm *CollisionManager) IsSnakeCollision(pos types.Point, snake entity.Snake, origin types.Point) bool {
	return snake.Intersects(pos.Sub(origin))
}

// IsDanger reports whether moving the head onto pos would kill the snake.
// The tail cell counts as safe since it moves away on the same step.
func (cm *CollisionManager) IsDanger(pos types.Point, snake entity.Snake, origin types.Point) bool {
	if cm.IsWallCollision(pos) {
		return true
	}
	chain := snake.Chain()
	local := pos.Sub(origin)
	for _, c := range chain[:len(chain)-1] {
		if c == local {
			return true
		}
	}
	return false
}

// ValidateSpawnPosition checks that an apple may appear on pos.
func (cm *CollisionManager) ValidateSpawnPosition(pos types.Point, snake entity.Snake, origin types.Point) bool {
	return cm.room.IsFree(pos) && !cm.IsSnakeCollision(pos, snake, origin)
}

// IsAppleCollision checks if the head reached the apple.
func (cm *CollisionManager) IsAppleCollision(pos types.Point, apple *entity.Apple) bool {
	return apple != nil && apple.At(pos)
}

// ColumnFree reports whether every cell of column x between fromY and toY
// inclusive is free.
func (cm *CollisionManager) ColumnFree(x, fromY, toY int) bool {
	if fromY > toY {
		fromY, toY = toY, fromY
	}
	for y := fromY; y <= toY; y++ {
		if !cm.room.IsFree(types.Point{X: x, Y: y}) {
			return false
		}
	}
	return true
}
