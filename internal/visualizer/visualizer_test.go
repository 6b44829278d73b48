package visualizer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"hidato_go/internal/types"
)

func testBoard(t *testing.T) *types.Board {
	t.Helper()
	p := &types.Puzzle{
		Height: 2,
		Width:  2,
		Givens: [][]int{
			{1, 0},
			{types.Blocked, 4},
		},
	}
	b, err := types.NewBoard(p)
	if err != nil {
		t.Fatalf("NewBoard failed: %v", err)
	}
	return b
}

func TestRenderFrame(t *testing.T) {
	b := testBoard(t)
	var buf bytes.Buffer
	v := NewVisualizer(b, &buf)

	want := "┌─────┐\n" +
		"│ 1 . │\n" +
		"│ █ 4 │\n" +
		"└─────┘\n"
	if got := v.Render(); got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}

	v.Draw()
	if buf.String() != want {
		t.Fatalf("Draw wrote %q, want %q", buf.String(), want)
	}
}

func TestAnimationRepaintsOverPreviousFrame(t *testing.T) {
	b := testBoard(t)
	var buf bytes.Buffer
	v := NewVisualizer(b, &buf)
	v.Delay = 0
	b.SetObserver(v)

	v.Draw()
	buf.Reset()
	b.Place(types.Coord{Row: 0, Col: 1}, 2)

	out := buf.String()
	// 2 grid rows plus 2 border lines to climb back over
	if !strings.HasPrefix(out, "\033[4A") {
		t.Fatalf("repaint did not move the cursor up: %q", out)
	}
	if !strings.Contains(out, "\033[31m2\033[0m") {
		t.Fatalf("placed value not drawn in red: %q", out)
	}
}

func TestSolverValuesDrawnRedAndClearedAgain(t *testing.T) {
	b := testBoard(t)
	var buf bytes.Buffer
	v := NewVisualizer(b, &buf)
	v.Delay = 0
	b.SetObserver(v)

	b.Place(types.Coord{Row: 0, Col: 1}, 2)
	want := "┌─────┐\n" +
		"│ 1 \033[31m2\033[0m │\n" +
		"│ █ 4 │\n" +
		"└─────┘\n"
	if got := v.Render(); got != want {
		t.Fatalf("Render after place = %q, want %q", got, want)
	}

	b.Remove(types.Coord{Row: 0, Col: 1}, 2)
	if got := v.Render(); strings.Contains(got, "\033[31m") {
		t.Fatalf("red marker survived the retraction: %q", got)
	}
}

func TestNoColorRendersPlain(t *testing.T) {
	b := testBoard(t)
	var buf bytes.Buffer
	v := NewVisualizer(b, &buf)
	v.Delay = 0
	v.Color = false
	b.SetObserver(v)

	b.Place(types.Coord{Row: 0, Col: 1}, 2)
	want := "┌─────┐\n" +
		"│ 1 2 │\n" +
		"│ █ 4 │\n" +
		"└─────┘\n"
	if got := v.Render(); got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestTracerLogsPlacements(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	tr := NewTracer(logger)

	tr.CellFilled(1, 2, 7)
	tr.CellCleared(1, 2)

	if len(hook.Entries) != 2 {
		t.Fatalf("%d log entries, want 2", len(hook.Entries))
	}
	fill := hook.Entries[0]
	if fill.Message != "placed value" || fill.Data["value"] != 7 {
		t.Fatalf("unexpected fill entry: %q %v", fill.Message, fill.Data)
	}
	retract := hook.Entries[1]
	if retract.Message != "retracted value" || retract.Data["row"] != 1 || retract.Data["col"] != 2 {
		t.Fatalf("unexpected retract entry: %q %v", retract.Message, retract.Data)
	}
}
