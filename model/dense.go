package model

import (
	"fmt"
	"iter"
	"math/rand/v2"

	"github.com/sheikhrachel/go-life/rules"
)

// denseCell is one cell of a DenseCachedBoard
type denseCell struct {
	alive     bool
	neighbors uint8 // live cells among the in-bounds neighbors
}

// DenseCachedBoard is a fixed-size board that keeps every cell's live-neighbor
// count up to date on each Set, so Step never has to rescan.
type DenseCachedBoard struct {
	bounds
	cells []denseCell
	pool  *SnapshotPool
}

// NewDenseCachedBoard creates an empty width x height board that takes its
// step snapshots from the shared pool
func NewDenseCachedBoard(width, height int) *DenseCachedBoard {
	return NewDenseCachedBoardWithPool(width, height, snapshots)
}

// NewDenseCachedBoardWithPool is NewDenseCachedBoard with an explicit snapshot
// pool. A nil pool allocates a fresh snapshot every step. It panics unless
// both dimensions are positive.
func NewDenseCachedBoardWithPool(width, height int, pool *SnapshotPool) *DenseCachedBoard {
	return &DenseCachedBoard{
		bounds: newBounds(width, height),
		cells:  make([]denseCell, width*height),
		pool:   pool,
	}
}

// Get returns the state of a cell
func (b *DenseCachedBoard) Get(x, y int64) (bool, error) {
	idx, err := b.index("Get", x, y)
	if err != nil {
		return false, err
	}
	return b.cells[idx].alive, nil
}

// Set sets a cell to alive (true) or dead (false) and updates its neighbors' counts
func (b *DenseCachedBoard) Set(x, y int64, alive bool) error {
	if _, err := b.index("Set", x, y); err != nil {
		return err
	}
	b.set(int(x), int(y), alive)
	return nil
}

// set assumes (x, y) is on the board
func (b *DenseCachedBoard) set(x, y int, alive bool) {
	cell := &b.cells[y*b.width+x]
	if cell.alive == alive {
		return
	}
	cell.alive = alive

	if alive {
		b.updateNeighbors(x, y, 1)
	} else {
		b.updateNeighbors(x, y, -1)
	}
}

// updateNeighbors applies delta to the count of every in-bounds neighbor of (x, y)
func (b *DenseCachedBoard) updateNeighbors(x, y, delta int) {
	for ny := y - 1; ny <= y+1; ny++ {
		for nx := x - 1; nx <= x+1; nx++ {
			if nx == x && ny == y {
				continue
			}
			if !b.CheckPoint(int64(nx), int64(ny)) {
				continue
			}

			n := &b.cells[ny*b.width+nx]
			count := int(n.neighbors) + delta
			if count < 0 || count > 8 {
				panic(fmt.Sprintf("neighbor count of (%d, %d) out of range: %d", nx, ny, count))
			}
			n.neighbors = uint8(count)
		}
	}
}

// Clear kills every cell. With nothing alive every count is zero too.
func (b *DenseCachedBoard) Clear() {
	clear(b.cells)
}

// Randomize gives every cell an independent fair coin flip
func (b *DenseCachedBoard) Randomize(rng *rand.Rand) {
	for y := range b.height {
		for x := range b.width {
			b.set(x, y, coinFlip(rng))
		}
	}
}

// Step advances one generation. Decisions read the snapshot's cached counts;
// writes go through set, which leaves the counts right for the next generation.
func (b *DenseCachedBoard) Step() {
	snap := snapshotOf(b.cells, b.pool)
	defer snapshotToPool(snap, b.pool)

	for y := range b.height {
		for x := range b.width {
			old := snap[y*b.width+x]
			b.set(x, y, rules.ApplyConwayRules(int(old.neighbors), old.alive))
		}
	}
}

// LiveCells yields live cells in row-major order
func (b *DenseCachedBoard) LiveCells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for i, cell := range b.cells {
			if !cell.alive {
				continue
			}
			if !yield(Cell{X: int64(i % b.width), Y: int64(i / b.width)}) {
				return
			}
		}
	}
}

// Population returns the number of live cells
func (b *DenseCachedBoard) Population() (count int) {
	for _, cell := range b.cells {
		if cell.alive {
			count++
		}
	}
	return
}
