package model

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	macosClearCmd = "clear"
)

// Viewport is the window of the board drawn to the terminal
type Viewport struct {
	Origin Cell
	Width  int
	Height int
}

// Contains reports whether c falls inside the viewport
func (v Viewport) Contains(c Cell) bool {
	return c.X >= v.Origin.X && c.X < v.Origin.X+int64(v.Width) &&
		c.Y >= v.Origin.Y && c.Y < v.Origin.Y+int64(v.Height)
}

// TerminalRenderer implements basic terminal rendering
type TerminalRenderer struct{}

// Display renders the part of board inside view to w, one text row per board row
func (r *TerminalRenderer) Display(w io.Writer, board Board, view Viewport) error {
	rows := make([][]bool, view.Height)
	for i := range rows {
		rows[i] = make([]bool, view.Width)
	}
	for c := range board.LiveCells() {
		if view.Contains(c) {
			rows[c.Y-view.Origin.Y][c.X-view.Origin.X] = true
		}
	}

	var sb strings.Builder
	for _, row := range rows {
		for _, alive := range row {
			if alive {
				sb.WriteString(gridPosBlock)
			} else {
				sb.WriteString(gridPosEmpty)
			}
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	cmd := exec.Command(macosClearCmd)
	cmd.Stdout = os.Stdout
	if err := cmd.Run(); err != nil {
		fmt.Println("Error clearing terminal:", err)
	}
}
