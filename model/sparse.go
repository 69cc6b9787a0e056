package model

import (
	"fmt"
	"iter"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/rules"
)

// SparseCachedBoard is an unbounded board. It stores only live cells and the
// cells that have at least one live neighbor, so memory and step cost follow
// the population rather than any grid size.
type SparseCachedBoard struct {
	alive map[Cell]struct{}
	// neighbors holds an entry for a cell iff its live-neighbor count is nonzero
	neighbors map[Cell]uint8
}

// NewSparseCachedBoard creates an empty unbounded board
func NewSparseCachedBoard() *SparseCachedBoard {
	return &SparseCachedBoard{
		alive:     make(map[Cell]struct{}),
		neighbors: make(map[Cell]uint8),
	}
}

// Get returns the state of a cell. Every coordinate is valid.
func (b *SparseCachedBoard) Get(x, y int64) (bool, error) {
	_, ok := b.alive[Cell{X: x, Y: y}]
	return ok, nil
}

// Set sets a cell to alive (true) or dead (false). Only cells on the
// outermost int64 rows and columns are rejected, with ErrOutOfBounds.
func (b *SparseCachedBoard) Set(x, y int64, alive bool) error {
	c := Cell{X: x, Y: y}
	if c.OnPlaneEdge() {
		return errors.Wrapf(ErrOutOfBounds, "[Set] (%d, %d) on the int64 edge of the plane", x, y)
	}
	b.set(c, alive)
	return nil
}

func (b *SparseCachedBoard) set(c Cell, alive bool) {
	_, wasAlive := b.alive[c]
	if wasAlive == alive {
		return
	}

	delta := 1
	if alive {
		b.alive[c] = struct{}{}
	} else {
		delete(b.alive, c)
		delta = -1
	}

	for _, n := range c.Neighbors() {
		count := int(b.neighbors[n]) + delta
		switch {
		case count < 0 || count > 8:
			panic(fmt.Sprintf("neighbor count of (%d, %d) out of range: %d", n.X, n.Y, count))
		case count == 0:
			delete(b.neighbors, n)
		default:
			b.neighbors[n] = uint8(count)
		}
	}
}

// Clear kills every cell
func (b *SparseCachedBoard) Clear() {
	clear(b.alive)
	clear(b.neighbors)
}

// Step advances one generation. Both the kill and spawn sets are collected
// before the first write, so it makes no difference which is applied first.
// A birth on the int64 edge of the plane panics.
func (b *SparseCachedBoard) Step() {
	var kill, spawn []Cell

	for c := range b.alive {
		if !rules.ApplyConwayRules(int(b.neighbors[c]), true) {
			kill = append(kill, c)
		}
	}
	for c, count := range b.neighbors {
		if _, ok := b.alive[c]; ok {
			continue
		}
		if rules.ApplyConwayRules(int(count), false) {
			spawn = append(spawn, c)
		}
	}

	for _, c := range kill {
		b.set(c, false)
	}
	for _, c := range spawn {
		b.set(c, true)
	}
}

// LiveCells yields live cells in map order. The board must not be modified
// while the sequence is being consumed.
func (b *SparseCachedBoard) LiveCells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for c := range b.alive {
			if !yield(c) {
				return
			}
		}
	}
}

// Population returns the number of live cells
func (b *SparseCachedBoard) Population() int {
	return len(b.alive)
}

// Bounds returns the smallest rectangle holding every live cell, with ok
// false on an empty board
func (b *SparseCachedBoard) Bounds() (minCell, maxCell Cell, ok bool) {
	for c := range b.alive {
		if !ok {
			minCell, maxCell, ok = c, c, true
			continue
		}
		minCell.X = min(minCell.X, c.X)
		minCell.Y = min(minCell.Y, c.Y)
		maxCell.X = max(maxCell.X, c.X)
		maxCell.Y = max(maxCell.Y, c.Y)
	}
	return
}
