package game

import (
	"errors"
	"fmt"

	"snake-engine/game/manager"
	"snake-engine/game/types"
)

var ErrNoFreeColumn = errors.New("free line didn't find")

// headPlacement lays the snake out vertically around the room center and
// returns the room position of its head. When the center column is blocked it
// probes columns at offsets +1, -1, +2, -2 and so on.
func headPlacement(grid types.Grid, size int, cm *manager.CollisionManager) (types.Point, error) {
	halfX := ceilHalf(grid.Width - 2)
	halfY := ceilHalf(grid.Height - 2)
	above := ceilHalf(size - 1)
	below := (size - 1) % 2

	fits := func(x int) bool {
		return cm.ColumnFree(x, halfY-below, halfY+above)
	}

	if fits(halfX) {
		return types.Point{X: halfX, Y: halfY + above}, nil
	}
	for offset := 1; offset <= halfX; offset++ {
		if x := halfX + offset; x < grid.Width && fits(x) {
			return types.Point{X: x, Y: halfY + above}, nil
		}
		if x := halfX - offset; x >= 0 && fits(x) {
			return types.Point{X: x, Y: halfY + above}, nil
		}
	}
	return types.Point{}, fmt.Errorf("%w for snake of size %d in %dx%d room", ErrNoFreeColumn, size, grid.Width, grid.Height)
}

// ceilHalf returns ceil(n/2) for n >= 0.
func ceilHalf(n int) int {
	return (n + 1) / 2
}
