package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/controller"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

// game owns the board and everything needed to drive and draw it.
// Only the run loop touches the board.
type game struct {
	config      utils.Config
	ctrl        *controller.Controller
	renderer    *model.TerminalRenderer
	stats       *utils.Stats
	view        model.Viewport
	out         io.Writer
	frames      int // screens drawn
	clearScreen bool
	generation  int
	message     string
}

// newGame builds the board described by config and seeds it
func newGame(config utils.Config, out io.Writer) (*game, error) {
	variant, err := model.ParseVariant(config.Variant)
	if err != nil {
		return nil, err
	}
	board, err := model.NewBoard(variant, config.Width, config.Height)
	if err != nil {
		return nil, err
	}

	// the sparse board has no edges, so center the view on the origin
	view := model.Viewport{Width: config.Width, Height: config.Height}
	if !variant.Bounded() {
		view.Origin = model.Cell{X: -int64(config.Width / 2), Y: -int64(config.Height / 2)}
	}

	g := &game{
		config:   config,
		ctrl:     controller.New(board, model.NewRNG(config.Seed), view.Origin, config.CellWidth, config.CellHeight),
		renderer: &model.TerminalRenderer{},
		stats:    utils.NewStats(),
		view:     view,
		out:      out,
	}
	if err := g.seed(); err != nil {
		return nil, err
	}
	g.ctrl.SetRunning(config.AutoRun)
	return g, nil
}

// seed fills the board at random or places the configured pattern in the middle of the view
func (g *game) seed() error {
	if g.config.Pattern == utils.RandomPattern {
		return g.ctrl.Handle(controller.CmdFill)
	}

	pattern, err := model.PatternByName(g.config.Pattern)
	if err != nil {
		return err
	}
	w, h := pattern.Size()
	dx := g.view.Origin.X + (int64(g.view.Width)-w)/2
	dy := g.view.Origin.Y + (int64(g.view.Height)-h)/2
	if err := model.Place(g.ctrl.Board(), pattern, dx, dy); err != nil {
		return err
	}
	g.centerView()
	return nil
}

// liveBounds is implemented by boards that can report the box around their live cells
type liveBounds interface {
	Bounds() (minCell, maxCell model.Cell, ok bool)
}

// centerView moves the view and the click origin to the middle of the live
// cells. Boards with fixed edges keep their view.
func (g *game) centerView() {
	board, ok := g.ctrl.Board().(liveBounds)
	if !ok {
		return
	}
	lo, hi, ok := board.Bounds()
	if !ok {
		return
	}

	g.view.Origin = model.Cell{
		X: lo.X + (hi.X-lo.X)/2 - int64(g.view.Width/2),
		Y: lo.Y + (hi.Y-lo.Y)/2 - int64(g.view.Height/2),
	}
	g.ctrl.SetOrigin(g.view.Origin)
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, g *game) {
	fmt.Fprintf(g.out, "Variant: %s | Pattern: %s | Seed: %d\n", config.Variant, config.Pattern, config.Seed)
	fmt.Fprintf(g.out, "View: %dx%d | Initial living cells: %d\n",
		g.view.Width, g.view.Height, g.ctrl.Board().Population())
	if config.Interactive {
		fmt.Fprintln(g.out, "Commands: s step | c clear | r fill | p run/pause | z center | click X Y [right] | q quit")
	}
	fmt.Fprintln(g.out, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(g.out)
}

// displayGameStatus shows the current game status
func (g *game) displayGameStatus() {
	status := "Paused"
	if g.ctrl.Running() {
		status = "Running"
	}
	population := g.ctrl.Board().Population()
	if population == 0 {
		status = "Extinct"
	}

	fmt.Fprintf(g.out, "Gen: %d | Living: %d | Status: %s\n", g.generation, population, status)
	fmt.Fprintf(g.out, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation, g.stats.Runtime().Seconds())
	if g.message != "" {
		fmt.Fprintln(g.out, g.message)
	}
	fmt.Fprintln(g.out)
}

func (g *game) draw() error {
	g.frames++
	if g.clearScreen {
		g.renderer.Clear()
	}
	g.displayGameStatus()
	return g.renderer.Display(g.out, g.ctrl.Board(), g.view)
}

// advance records a generation that has just been stepped
func (g *game) advance(since time.Time) {
	g.generation++
	g.stats.Update(g.generation, g.ctrl.Board().Population(), time.Since(since))
}

// handleLine applies one line of user input and reports whether the user quit
func (g *game) handleLine(line string) bool {
	g.message = ""
	action, err := controller.Parse(line)
	if err != nil {
		g.message = err.Error()
		return false
	}
	switch action.Cmd {
	case controller.CmdQuit:
		return true
	case controller.CmdCenter:
		g.centerView()
		return false
	}

	start := time.Now()
	if err := g.ctrl.Apply(action); err != nil {
		g.message = err.Error()
		return false
	}
	switch action.Cmd {
	case controller.CmdStep:
		g.advance(start)
	case controller.CmdClear, controller.CmdFill:
		g.generation = 0
	}
	return false
}

// checkStopConditions determines if the game should end
func checkStopConditions(population, generation int, config utils.Config) (bool, string) {
	if config.MaxGenerations > 0 && generation >= config.MaxGenerations {
		return true, fmt.Sprintf("maximum generations limit (%d)", config.MaxGenerations)
	}
	// an interactive user can still bring an empty board back to life
	if population == 0 && !config.Interactive {
		return true, "extinction"
	}
	return false, ""
}

// run is the game loop. It steps the board once per frame while running and
// applies commands from cmds as they arrive, redrawing only after either. A
// nil cmds disables input.
func (g *game) run(ctx context.Context, cmds <-chan string) error {
	ticker := time.NewTicker(g.config.FrameRate)
	defer ticker.Stop()

	if err := g.draw(); err != nil {
		return errors.Wrap(err, "[run] draw")
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-cmds:
			if !ok {
				cmds = nil
				continue
			}
			if g.handleLine(line) {
				return nil
			}

		case <-ticker.C:
			start := time.Now()
			if !g.ctrl.Tick() {
				continue
			}
			g.advance(start)
		}

		if err := g.draw(); err != nil {
			return errors.Wrap(err, "[run] draw")
		}
		if stop, reason := checkStopConditions(g.ctrl.Board().Population(), g.generation, g.config); stop {
			fmt.Fprintf(g.out, "\n🏁 Stopping: %s\n", reason)
			return nil
		}
	}
}

// readCommands forwards stdin lines to out until EOF or ctx is done. out is
// closed on EOF.
func readCommands(ctx context.Context, r io.Reader, out chan<- string) error {
	lines := make(chan string)
	errc := make(chan error, 1)

	// Scan cannot be interrupted, so this goroutine may outlive ctx until the next line or EOF
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				close(out)
				select {
				case err := <-errc:
					return errors.Wrap(err, "[readCommands] reading input")
				default:
					return nil
				}
			}
			select {
			case out <- line:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
