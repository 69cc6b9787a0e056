package model

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrOutOfBounds is returned by bounded boards for coordinates outside [0,width)x[0,height)
	ErrOutOfBounds = errors.New("cell out of bounds")
	// ErrInvalidDimensions is returned when a bounded board is requested with a non-positive size
	ErrInvalidDimensions = errors.New("invalid board dimensions")
	// ErrUnknownVariant is returned for a board variant name that is not registered
	ErrUnknownVariant = errors.New("unknown board variant")
)

// Board is the capability every board variant provides to its caller.
// Boards are not safe for concurrent use.
type Board interface {
	Get(x, y int64) (bool, error)
	// Set is a no-op when the cell already holds the requested state
	Set(x, y int64, alive bool) error
	Clear()
	// Step advances exactly one generation
	Step()
	// LiveCells yields every live cell once, in no particular order
	LiveCells() iter.Seq[Cell]
	Population() int
}

// BoundedBoard is a Board with fixed dimensions that can be filled at random
type BoundedBoard interface {
	Board
	Width() int
	Height() int
	Randomize(rng *rand.Rand)
}

// Variant names one board implementation
type Variant string

const (
	VariantRescan Variant = "rescan"
	VariantDense  Variant = "dense"
	VariantSparse Variant = "sparse"
)

// Variants lists the registered variants in a stable order
var Variants = []Variant{VariantRescan, VariantDense, VariantSparse}

// ParseVariant resolves a variant name, ignoring case and surrounding space
func ParseVariant(name string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(name)))
	if slices.Contains(Variants, v) {
		return v, nil
	}
	return "", errors.Wrapf(ErrUnknownVariant, "[ParseVariant] %q", name)
}

// Bounded reports whether the variant has fixed dimensions
func (v Variant) Bounded() bool {
	return v != VariantSparse
}

// NewBoard creates an empty board of the given variant. Width and height are
// ignored by the sparse variant.
func NewBoard(variant Variant, width, height int) (Board, error) {
	if !slices.Contains(Variants, variant) {
		return nil, errors.Wrapf(ErrUnknownVariant, "[NewBoard] %q", variant)
	}
	if variant.Bounded() && (width <= 0 || height <= 0) {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewBoard] %dx%d", width, height)
	}

	switch variant {
	case VariantRescan:
		return NewDenseRescanBoard(width, height), nil
	case VariantDense:
		return NewDenseCachedBoard(width, height), nil
	default:
		return NewSparseCachedBoard(), nil
	}
}

// bounds holds the fixed dimensions shared by the dense variants
type bounds struct {
	width  int
	height int
}

// Width returns the width of the board
func (b bounds) Width() int {
	return b.width
}

// Height returns the height of the board
func (b bounds) Height() int {
	return b.height
}

// newBounds panics on non-positive dimensions; NewBoard returns
// ErrInvalidDimensions for them instead
func newBounds(width, height int) bounds {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("board dimensions must be positive, got %dx%d", width, height))
	}
	return bounds{width: width, height: height}
}

// CheckPoint reports whether (x, y) lies on the board
func (b bounds) CheckPoint(x, y int64) bool {
	return x >= 0 && x < int64(b.width) && y >= 0 && y < int64(b.height)
}

// index returns the linear index of (x, y), or ErrOutOfBounds tagged with the calling op
func (b bounds) index(op string, x, y int64) (int, error) {
	if !b.CheckPoint(x, y) {
		return 0, errors.Wrapf(ErrOutOfBounds, "[%s] (%d, %d) on %dx%d board", op, x, y, b.width, b.height)
	}
	return int(y)*b.width + int(x), nil
}

var (
	_ BoundedBoard = (*DenseRescanBoard)(nil)
	_ BoundedBoard = (*DenseCachedBoard)(nil)
	_ Board        = (*SparseCachedBoard)(nil)
)
