package utils

import (
	"encoding/json"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

// RandomPattern seeds a bounded board with Randomize instead of a named pattern
const RandomPattern = "random"

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the game
type Config struct {
	Variant        string        `json:"variant"`
	Width          int           `json:"width"`
	Height         int           `json:"height"`
	CellWidth      int           `json:"cell_width"`
	CellHeight     int           `json:"cell_height"`
	FrameRate      time.Duration `json:"frame_rate"`
	MaxGenerations int           `json:"max_generations"`
	Seed           int64         `json:"seed"`
	Pattern        string        `json:"pattern"`
	Interactive    bool          `json:"interactive"`
	AutoRun        bool          `json:"auto_run"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Variant:        string(model.VariantSparse),
		Width:          60,
		Height:         30,
		CellWidth:      2, // one cell is drawn as two terminal columns
		CellHeight:     1,
		FrameRate:      150 * time.Millisecond,
		MaxGenerations: 1000,
		Seed:           42,
		Pattern:        "acorn",
		Interactive:    false,
		AutoRun:        true,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Bind attaches the configuration to fs so command-line flags override it
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Variant, "variant", c.Variant, "board variant: rescan, dense or sparse")
	fs.IntVar(&c.Width, "width", c.Width, "board width (viewport width for sparse)")
	fs.IntVar(&c.Height, "height", c.Height, "board height (viewport height for sparse)")
	fs.IntVar(&c.CellWidth, "cell-width", c.CellWidth, "terminal columns per cell for clicks")
	fs.IntVar(&c.CellHeight, "cell-height", c.CellHeight, "terminal rows per cell for clicks")
	fs.DurationVar(&c.FrameRate, "frame", c.FrameRate, "delay between generations")
	fs.IntVar(&c.MaxGenerations, "generations", c.MaxGenerations, "stop after this many generations, 0 for no limit")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random fill")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern,
		"starting pattern: "+strings.Join(append([]string{RandomPattern}, model.PatternNames()...), ", "))
	fs.BoolVar(&c.Interactive, "interactive", c.Interactive, "read commands from stdin")
	fs.BoolVar(&c.AutoRun, "run", c.AutoRun, "start running instead of paused")
}

// Validate checks the configuration before a board is built from it
func (c Config) Validate() error {
	variant, err := model.ParseVariant(c.Variant)
	if err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] dimensions %dx%d", c.Width, c.Height)
	}
	if c.CellWidth <= 0 || c.CellHeight <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] cell size %dx%d", c.CellWidth, c.CellHeight)
	}
	if c.FrameRate <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] frame rate %v", c.FrameRate)
	}
	if c.MaxGenerations < 0 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] max generations %d", c.MaxGenerations)
	}

	if c.Pattern == RandomPattern {
		if !variant.Bounded() {
			return errors.Wrapf(ErrInvalidConfig, "[Validate] %s boards cannot be filled at random", variant)
		}
		return nil
	}
	if _, err := model.PatternByName(c.Pattern); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	return nil
}
