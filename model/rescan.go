package model

import (
	"iter"
	"math/rand/v2"

	"github.com/bits-and-blooms/bitset"

	"github.com/sheikhrachel/go-life/rules"
)

// DenseRescanBoard stores one bit per cell and recounts every cell's
// neighbors on each step. It is the baseline the cached boards are checked against.
type DenseRescanBoard struct {
	bounds
	cells    *bitset.BitSet
	snapshot *bitset.BitSet
}

// NewDenseRescanBoard creates an empty width x height board. It panics
// unless both dimensions are positive.
func NewDenseRescanBoard(width, height int) *DenseRescanBoard {
	b := newBounds(width, height)
	size := uint(width * height)
	return &DenseRescanBoard{
		bounds:   b,
		cells:    bitset.New(size),
		snapshot: bitset.New(size),
	}
}

// Get returns the state of a cell
func (b *DenseRescanBoard) Get(x, y int64) (bool, error) {
	idx, err := b.index("Get", x, y)
	if err != nil {
		return false, err
	}
	return b.cells.Test(uint(idx)), nil
}

// Set sets a cell to alive (true) or dead (false)
func (b *DenseRescanBoard) Set(x, y int64, alive bool) error {
	idx, err := b.index("Set", x, y)
	if err != nil {
		return err
	}
	b.cells.SetTo(uint(idx), alive)
	return nil
}

// Clear kills every cell
func (b *DenseRescanBoard) Clear() {
	b.cells.ClearAll()
}

// Randomize gives every cell an independent fair coin flip
func (b *DenseRescanBoard) Randomize(rng *rand.Rand) {
	for i := range uint(b.width * b.height) {
		b.cells.SetTo(i, coinFlip(rng))
	}
}

// countNeighbors counts live cells around (x, y) in the snapshot
func (b *DenseRescanBoard) countNeighbors(x, y int) int {
	count := 0
	for ny := y - 1; ny <= y+1; ny++ {
		for nx := x - 1; nx <= x+1; nx++ {
			if nx == x && ny == y {
				continue
			}
			if !b.CheckPoint(int64(nx), int64(ny)) {
				continue
			}
			if b.snapshot.Test(uint(ny*b.width + nx)) {
				count++
			}
		}
	}
	return count
}

// Step advances one generation. Every cell is decided from the snapshot taken
// before any write.
func (b *DenseRescanBoard) Step() {
	b.cells.Copy(b.snapshot)

	for y := range b.height {
		for x := range b.width {
			idx := uint(y*b.width + x)
			b.cells.SetTo(idx, rules.ApplyConwayRules(b.countNeighbors(x, y), b.snapshot.Test(idx)))
		}
	}
}

// LiveCells yields live cells in row-major order
func (b *DenseRescanBoard) LiveCells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for i, ok := b.cells.NextSet(0); ok; i, ok = b.cells.NextSet(i + 1) {
			c := Cell{X: int64(int(i) % b.width), Y: int64(int(i) / b.width)}
			if !yield(c) {
				return
			}
		}
	}
}

// Population returns the number of live cells
func (b *DenseRescanBoard) Population() int {
	return int(b.cells.Count())
}
