package model

import (
	"fmt"
	"maps"
	"testing"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// liveSet collects the live cells of board
func liveSet(board Board) map[Cell]bool {
	live := make(map[Cell]bool)
	for c := range board.LiveCells() {
		live[c] = true
	}
	return live
}

// bruteCount recounts the live neighbors of c from scratch
func bruteCount(live map[Cell]bool, c Cell) int {
	count := 0
	for _, n := range c.Neighbors() {
		if live[n] {
			count++
		}
	}
	return count
}

func patternSet(p Pattern, dx, dy int64) map[Cell]bool {
	out := make(map[Cell]bool, len(p))
	for _, c := range p {
		out[c.Translate(dx, dy)] = true
	}
	return out
}

// checkInvariants fails t if board's cached neighbor counts disagree with a brute-force recount
func checkInvariants(t *testing.T, board Board) {
	t.Helper()
	switch b := board.(type) {
	case *DenseCachedBoard:
		checkDenseInvariant(t, b)
	case *SparseCachedBoard:
		checkSparseInvariant(t, b)
	}
}

func newBoards(t *testing.T, width, height int) map[Variant]Board {
	t.Helper()
	boards := make(map[Variant]Board, len(Variants))
	for _, v := range Variants {
		board, err := NewBoard(v, width, height)
		if err != nil {
			t.Fatalf("NewBoard(%s): %v", v, err)
		}
		boards[v] = board
	}
	return boards
}

func TestSingleCellDies(t *testing.T) {
	for v, board := range newBoards(t, 3, 3) {
		if err := board.Set(1, 1, true); err != nil {
			t.Fatalf("%s: set: %v", v, err)
		}
		checkInvariants(t, board)

		board.Step()
		if got := board.Population(); got != 0 {
			t.Fatalf("%s: population after step = %d, expected 0", v, got)
		}
		checkInvariants(t, board)
	}
}

func TestGliderTranslatesEveryFourGenerations(t *testing.T) {
	for v, board := range newBoards(t, 20, 20) {
		if err := Place(board, Glider, 5, 5); err != nil {
			t.Fatalf("%s: place: %v", v, err)
		}
		for range 4 {
			board.Step()
			checkInvariants(t, board)
		}

		want := patternSet(Glider, 6, 4)
		if got := liveSet(board); !maps.Equal(got, want) {
			t.Fatalf("%s: after 4 generations got %v, expected %v", v, got, want)
		}
	}
}

func TestBlinkerOscillation(t *testing.T) {
	for v, board := range newBoards(t, 5, 5) {
		if err := Place(board, Blinker, 1, 2); err != nil {
			t.Fatalf("%s: place: %v", v, err)
		}

		board.Step()
		want := map[Cell]bool{{2, 1}: true, {2, 2}: true, {2, 3}: true}
		if got := liveSet(board); !maps.Equal(got, want) {
			t.Fatalf("%s: got %v, expected %v", v, got, want)
		}

		board.Step()
		want = patternSet(Blinker, 1, 2)
		if got := liveSet(board); !maps.Equal(got, want) {
			t.Fatalf("%s: after second step got %v, expected %v", v, got, want)
		}
	}
}

func TestSetIsIdempotent(t *testing.T) {
	for v, board := range newBoards(t, 6, 6) {
		_ = Place(board, Glider, 1, 1)
		if err := board.Set(2, 2, true); err != nil {
			t.Fatalf("%s: set: %v", v, err)
		}
		before := snapshotState(board)

		if err := board.Set(2, 2, true); err != nil {
			t.Fatalf("%s: set: %v", v, err)
		}
		if err := board.Set(4, 4, false); err != nil {
			t.Fatalf("%s: set: %v", v, err)
		}
		if after := snapshotState(board); after != before {
			t.Fatalf("%s: repeated set changed state:\n%s\nvs\n%s", v, before, after)
		}
		checkInvariants(t, board)
	}
}

func TestSetThenUnsetRestoresState(t *testing.T) {
	for v, board := range newBoards(t, 8, 8) {
		_ = Place(board, Acorn, 0, 2)
		before := snapshotState(board)

		for _, c := range []Cell{{3, 3}, {0, 0}, {7, 7}, {1, 2}} {
			was, _ := board.Get(c.X, c.Y)
			_ = board.Set(c.X, c.Y, !was)
			checkInvariants(t, board)
			_ = board.Set(c.X, c.Y, was)
			if after := snapshotState(board); after != before {
				t.Fatalf("%s: toggling %v twice changed state", v, c)
			}
		}
	}
}

// snapshotState renders a board's full internal state for equality checks
func snapshotState(board Board) string {
	switch b := board.(type) {
	case *DenseRescanBoard:
		return b.cells.String()
	case *DenseCachedBoard:
		return fmt.Sprint(b.cells)
	case *SparseCachedBoard:
		// fmt prints maps with sorted keys
		return fmt.Sprint(b.alive, b.neighbors)
	}
	return ""
}

func TestBoundedOutOfBounds(t *testing.T) {
	for v, board := range newBoards(t, 4, 3) {
		if !v.Bounded() {
			continue
		}
		for _, c := range []Cell{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {100, 100}} {
			if err := board.Set(c.X, c.Y, true); !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("%s: Set%v err = %v, expected ErrOutOfBounds", v, c, err)
			}
			if _, err := board.Get(c.X, c.Y); !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("%s: Get%v err = %v, expected ErrOutOfBounds", v, c, err)
			}
		}
		if board.Population() != 0 {
			t.Fatalf("%s: rejected writes changed the board", v)
		}
	}
}

func TestClear(t *testing.T) {
	for v, board := range newBoards(t, 10, 10) {
		_ = Place(board, Acorn, 1, 1)
		board.Step()
		board.Clear()
		if board.Population() != 0 || len(liveSet(board)) != 0 {
			t.Fatalf("%s: board not empty after clear", v)
		}
		checkInvariants(t, board)

		_ = Place(board, Blinker, 3, 3)
		board.Step()
		if board.Population() != 3 {
			t.Fatalf("%s: population after reuse = %d, expected 3", v, board.Population())
		}
	}
}

func TestLiveCellsIsRestartable(t *testing.T) {
	for v, board := range newBoards(t, 10, 10) {
		_ = Place(board, Acorn, 1, 1)
		seq := board.LiveCells()

		first := 0
		for range seq {
			first++
		}
		second := 0
		for range seq {
			second++
		}
		if first != len(Acorn) || second != len(Acorn) {
			t.Fatalf("%s: iterations yielded %d then %d cells, expected %d", v, first, second, len(Acorn))
		}

		for range seq {
			break
		}
	}
}

// TestVariantsAgree runs a random soup on every variant and compares them
// generation by generation. The soup sits far enough from the edges that the
// bounded boards cannot clip it within the run.
func TestVariantsAgree(t *testing.T) {
	const (
		size        = 64
		soup        = 10
		generations = 20
	)

	for seed := range int64(8) {
		t.Run(fmt.Sprintf("seed%d", seed), func(t *testing.T) {
			source := NewDenseRescanBoard(soup, soup)
			source.Randomize(NewRNG(seed))
			start := Pattern(nil)
			for c := range source.LiveCells() {
				start = append(start, c)
			}

			offset := int64(size-soup) / 2
			history := make(map[Variant][]map[Cell]bool, len(Variants))
			var eg errgroup.Group
			results := make([][]map[Cell]bool, len(Variants))
			for i, v := range Variants {
				eg.Go(func() error {
					board, err := NewBoard(v, size, size)
					if err != nil {
						return err
					}
					if err := Place(board, start, offset, offset); err != nil {
						return err
					}
					for range generations {
						board.Step()
						results[i] = append(results[i], liveSet(board))
					}
					return nil
				})
			}
			if err := eg.Wait(); err != nil {
				t.Fatalf("running variants: %v", err)
			}
			for i, v := range Variants {
				history[v] = results[i]
			}

			for gen := range generations {
				want := history[VariantRescan][gen]
				for _, v := range Variants[1:] {
					if got := history[v][gen]; !maps.Equal(got, want) {
						t.Fatalf("generation %d: %s disagrees with %s", gen+1, v, VariantRescan)
					}
				}
			}
		})
	}
}

func TestNewBoard(t *testing.T) {
	tests := []struct {
		variant       Variant
		width, height int
		wantErr       error
	}{
		{VariantRescan, 3, 5, nil},
		{VariantDense, 7, 2, nil},
		{VariantSparse, 0, 0, nil},
		{VariantRescan, 0, 3, ErrInvalidDimensions},
		{VariantDense, 3, -1, ErrInvalidDimensions},
		{Variant("hashlife"), 3, 3, ErrUnknownVariant},
	}

	for _, tt := range tests {
		board, err := NewBoard(tt.variant, tt.width, tt.height)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewBoard(%s, %d, %d) err = %v, expected %v", tt.variant, tt.width, tt.height, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Fatalf("NewBoard(%s): %v", tt.variant, err)
		}
		bb, bounded := board.(BoundedBoard)
		if bounded != tt.variant.Bounded() {
			t.Fatalf("%s: BoundedBoard = %v, expected %v", tt.variant, bounded, tt.variant.Bounded())
		}
		if bounded && (bb.Width() != tt.width || bb.Height() != tt.height) {
			t.Fatalf("%s: size %dx%d, expected %dx%d", tt.variant, bb.Width(), bb.Height(), tt.width, tt.height)
		}
	}
}

func TestBoundedConstructorsPanicOnBadDimensions(t *testing.T) {
	constructors := map[string]func(w, h int){
		"rescan": func(w, h int) { NewDenseRescanBoard(w, h) },
		"dense":  func(w, h int) { NewDenseCachedBoard(w, h) },
	}
	for name, construct := range constructors {
		for _, dims := range [][2]int{{-1, 2}, {2, 0}, {0, 0}} {
			func() {
				defer func() {
					if recover() == nil {
						t.Fatalf("%s: %dx%d did not panic", name, dims[0], dims[1])
					}
				}()
				construct(dims[0], dims[1])
			}()
		}
	}
}

func TestParseVariant(t *testing.T) {
	for _, name := range []string{"sparse", " Dense ", "RESCAN"} {
		if _, err := ParseVariant(name); err != nil {
			t.Fatalf("ParseVariant(%q): %v", name, err)
		}
	}
	if _, err := ParseVariant("toroidal"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("ParseVariant(toroidal) err = %v, expected ErrUnknownVariant", err)
	}
}
