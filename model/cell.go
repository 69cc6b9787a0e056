package model

import (
	"fmt"
	"math"
)

// Cell is a coordinate pair on the board. Bounded boards only accept
// non-negative coordinates inside their dimensions; the sparse board accepts any.
type Cell struct {
	X, Y int64
}

// neighborOffsets is the Moore neighborhood: the 3x3 window minus its center
var neighborOffsets = [8]Cell{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// OnPlaneEdge reports whether c is on the outermost int64 row or column,
// where its neighborhood cannot be represented
func (c Cell) OnPlaneEdge() bool {
	return c.X == math.MinInt64 || c.X == math.MaxInt64 ||
		c.Y == math.MinInt64 || c.Y == math.MaxInt64
}

// Neighbors returns the 8 cells adjacent to c, ignoring any board bounds.
// It panics for cells on the plane edge rather than wrap around.
func (c Cell) Neighbors() [8]Cell {
	if c.OnPlaneEdge() {
		panic(fmt.Sprintf("cell (%d, %d) has no neighborhood on the int64 edge", c.X, c.Y))
	}
	var out [8]Cell
	for i, off := range neighborOffsets {
		out[i] = Cell{X: c.X + off.X, Y: c.Y + off.Y}
	}
	return out
}

// Translate returns c shifted by (dx, dy)
func (c Cell) Translate(dx, dy int64) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}
