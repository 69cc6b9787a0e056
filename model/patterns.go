package model

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Pattern is a set of live cells relative to the pattern origin
type Pattern []Cell

var (
	// Glider moves one cell diagonally every 4 generations
	Glider = Pattern{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {1, 2}}
	// Blinker is the period-2 oscillator
	Blinker = Pattern{{0, 0}, {1, 0}, {2, 0}}
	// Acorn is a methuselah that settles after 5206 generations
	Acorn = Pattern{{0, 0}, {1, 0}, {1, 2}, {3, 1}, {4, 0}, {5, 0}, {6, 0}}
)

// ErrUnknownPattern is returned by PatternByName for a name it does not know
var ErrUnknownPattern = errors.New("unknown pattern")

var patterns = map[string]Pattern{
	"glider":  Glider,
	"blinker": Blinker,
	"acorn":   Acorn,
}

// PatternNames lists the named patterns in sorted order
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PatternByName looks up a named pattern
func PatternByName(name string) (Pattern, error) {
	p, ok := patterns[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPattern, "[PatternByName] %q", name)
	}
	return p, nil
}

// Size returns the width and height of the pattern's bounding box
func (p Pattern) Size() (width, height int64) {
	for _, c := range p {
		width = max(width, c.X+1)
		height = max(height, c.Y+1)
	}
	return
}

// Place sets every cell of pattern alive, shifted by (dx, dy). It stops at
// the first cell the board rejects.
func Place(board Board, pattern Pattern, dx, dy int64) error {
	for _, c := range pattern {
		c = c.Translate(dx, dy)
		if err := board.Set(c.X, c.Y, true); err != nil {
			return errors.Wrap(err, "[Place] pattern does not fit")
		}
	}
	return nil
}
