package controller

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

// Command is one input from the presentation layer
type Command int

const (
	CmdStep Command = iota
	CmdClear
	CmdFill
	CmdToggleRun
	CmdClick
	CmdCenter
	CmdQuit
)

// Button is the pointer button of a click
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

var (
	// ErrFillUnsupported is returned when filling a board without fixed dimensions
	ErrFillUnsupported = errors.New("fill needs a bounded board")
	// ErrUnknownCommand is returned by Parse for input it cannot map to a command
	ErrUnknownCommand = errors.New("unknown command")
	// ErrNegativePixel is returned for clicks left of or above the drawing area
	ErrNegativePixel = errors.New("negative pixel coordinate")
)

// Action is a parsed command with the pointer position for clicks
type Action struct {
	Cmd    Command
	X, Y   int
	Button Button
}

/*
Parse maps one line of terminal input to an Action:

	s            step once
	c            clear
	r            fill at random
	p            run/pause
	z            center the view on the live cells
	q            quit
	click X Y    set the cell under column X, row Y alive; add "right" to kill it
*/
func Parse(line string) (Action, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Action{}, errors.Wrap(ErrUnknownCommand, "[Parse] empty input")
	}

	switch fields[0] {
	case "s", "step":
		return Action{Cmd: CmdStep}, nil
	case "c", "clear":
		return Action{Cmd: CmdClear}, nil
	case "r", "fill":
		return Action{Cmd: CmdFill}, nil
	case "p", "run", "pause":
		return Action{Cmd: CmdToggleRun}, nil
	case "z", "center":
		return Action{Cmd: CmdCenter}, nil
	case "q", "quit":
		return Action{Cmd: CmdQuit}, nil
	case "click":
		return parseClick(fields[1:])
	}
	return Action{}, errors.Wrapf(ErrUnknownCommand, "[Parse] %q", line)
}

func parseClick(args []string) (Action, error) {
	if len(args) < 2 || len(args) > 3 {
		return Action{}, errors.Wrapf(ErrUnknownCommand, "[Parse] click takes X Y [right], got %v", args)
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return Action{}, errors.Wrapf(err, "[Parse] click x %q", args[0])
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return Action{}, errors.Wrapf(err, "[Parse] click y %q", args[1])
	}

	action := Action{Cmd: CmdClick, X: x, Y: y, Button: ButtonLeft}
	if len(args) == 3 {
		if args[2] != "right" {
			return Action{}, errors.Wrapf(ErrUnknownCommand, "[Parse] click button %q", args[2])
		}
		action.Button = ButtonRight
	}
	return action, nil
}

// Controller drives a board from presentation commands. It owns no state
// of the board beyond the run/pause flag.
type Controller struct {
	board      model.Board
	rng        *rand.Rand
	origin     model.Cell
	cellWidth  int
	cellHeight int
	running    bool
}

// New returns a paused controller. Clicks are mapped to cells by dividing
// pixel coordinates by cellWidth and cellHeight and offsetting by origin.
func New(board model.Board, rng *rand.Rand, origin model.Cell, cellWidth, cellHeight int) *Controller {
	return &Controller{
		board:      board,
		rng:        rng,
		origin:     origin,
		cellWidth:  max(cellWidth, 1),
		cellHeight: max(cellHeight, 1),
	}
}

// Board returns the controlled board
func (c *Controller) Board() model.Board {
	return c.board
}

// Running reports whether Tick advances the board
func (c *Controller) Running() bool {
	return c.running
}

// SetRunning starts or pauses the board
func (c *Controller) SetRunning(running bool) {
	c.running = running
}

// SetOrigin moves the cell drawn at pixel (0, 0)
func (c *Controller) SetOrigin(origin model.Cell) {
	c.origin = origin
}

// Handle applies a command. Quit, center and click are left to the caller and Apply.
func (c *Controller) Handle(cmd Command) error {
	switch cmd {
	case CmdStep:
		c.board.Step()
	case CmdClear:
		c.board.Clear()
	case CmdFill:
		bounded, ok := c.board.(model.BoundedBoard)
		if !ok {
			return errors.Wrap(ErrFillUnsupported, "[Handle]")
		}
		bounded.Randomize(c.rng)
	case CmdToggleRun:
		c.running = !c.running
	case CmdQuit, CmdCenter:
	default:
		return errors.Wrapf(ErrUnknownCommand, "[Handle] %d", cmd)
	}
	return nil
}

// Apply runs a parsed action, including clicks
func (c *Controller) Apply(action Action) error {
	if action.Cmd == CmdClick {
		return c.Click(action.X, action.Y, action.Button)
	}
	return c.Handle(action.Cmd)
}

// Click sets the cell under pixel (px, py) alive on the left button and dead on the right
func (c *Controller) Click(px, py int, button Button) error {
	if px < 0 || py < 0 {
		return errors.Wrapf(ErrNegativePixel, "[Click] (%d, %d)", px, py)
	}
	cell := c.CellAt(px, py)
	return c.board.Set(cell.X, cell.Y, button == ButtonLeft)
}

// CellAt returns the board cell drawn at pixel (px, py)
func (c *Controller) CellAt(px, py int) model.Cell {
	return c.origin.Translate(int64(px/c.cellWidth), int64(py/c.cellHeight))
}

// Tick steps the board once if it is running and reports whether it did
func (c *Controller) Tick() bool {
	if !c.running {
		return false
	}
	c.board.Step()
	return true
}
