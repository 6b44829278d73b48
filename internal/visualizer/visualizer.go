package visualizer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"hidato_go/internal/types"
)

const (
	colorRed   = "\033[31m"
	colorReset = "\033[0m"

	// DefaultDelay is the pause after each animated placement.
	DefaultDelay = 50 * time.Millisecond
)

// Visualizer draws a board to a terminal and animates solver progress.
// It satisfies types.Observer: every placement repaints the grid and then
// pauses for Delay, every retraction repaints immediately. Clues are drawn
// in the default color, solver-placed values in red, blocked cells as
// solid blocks.
type Visualizer struct {
	board  *types.Board
	out    io.Writer
	placed map[types.Coord]bool
	lines  int

	Delay time.Duration
	Color bool
}

func NewVisualizer(board *types.Board, out io.Writer) *Visualizer {
	return &Visualizer{
		board:  board,
		out:    out,
		placed: make(map[types.Coord]bool),
		Delay:  DefaultDelay,
		Color:  true,
	}
}

// Draw paints the current frame. Call it once before solving so that the
// animation has a frame to repaint over.
func (v *Visualizer) Draw() {
	fmt.Fprint(v.out, v.Render())
	v.lines = v.board.Height() + 2
}

func (v *Visualizer) CellFilled(row, col, value int) {
	v.placed[types.Coord{Row: row, Col: col}] = true
	v.repaint()
	if v.Delay > 0 {
		time.Sleep(v.Delay)
	}
}

func (v *Visualizer) CellCleared(row, col int) {
	delete(v.placed, types.Coord{Row: row, Col: col})
	v.repaint()
}

func (v *Visualizer) repaint() {
	if v.lines > 0 {
		// Move the cursor back to the first border line and paint over.
		fmt.Fprintf(v.out, "\033[%dA", v.lines)
	}
	v.Draw()
}

// Render builds one complete frame of the grid.
func (v *Visualizer) Render() string {
	height := v.board.Height()
	width := v.board.Width()
	maxDigits := len(fmt.Sprint(v.board.MaxValue()))

	var b strings.Builder

	// Top border
	borderWidth := width*(maxDigits+1) + 1
	b.WriteString("┌" + strings.Repeat("─", borderWidth) + "┐\n")

	// Rows
	for i := 0; i < height; i++ {
		b.WriteString("│ ")
		for j := 0; j < width; j++ {
			cell := v.board.CellAt(types.Coord{Row: i, Col: j})
			switch {
			case cell.Kind == types.CellBlocked:
				b.WriteString(strings.Repeat("█", maxDigits))
			case cell.Value == 0:
				fmt.Fprintf(&b, "%-*s", maxDigits, ".")
			case v.Color && v.placed[types.Coord{Row: i, Col: j}]:
				fmt.Fprintf(&b, "%s%-*d%s", colorRed, maxDigits, cell.Value, colorReset)
			default:
				fmt.Fprintf(&b, "%-*d", maxDigits, cell.Value)
			}
			b.WriteString(" ")
		}
		b.WriteString("│\n")
	}

	// Bottom border
	b.WriteString("└" + strings.Repeat("─", borderWidth) + "┘\n")
	return b.String()
}

// Tracer is an Observer that logs placements and retractions instead of
// animating them. Useful when the output is not a terminal.
type Tracer struct {
	log *logrus.Logger
}

func NewTracer(log *logrus.Logger) *Tracer {
	return &Tracer{log: log}
}

func (t *Tracer) CellFilled(row, col, value int) {
	t.log.WithFields(logrus.Fields{
		"row":   row,
		"col":   col,
		"value": value,
	}).Debug("placed value")
}

func (t *Tracer) CellCleared(row, col int) {
	t.log.WithFields(logrus.Fields{
		"row": row,
		"col": col,
	}).Debug("retracted value")
}
