package types

import (
	"encoding/json"
	"fmt"
)

// Blocked is the Givens marker for a cell outside the puzzle.
const Blocked = -1

// CellKind classifies a grid cell.
type CellKind uint8

const (
	// CellBlocked cells are not part of the puzzle.
	CellBlocked CellKind = iota
	// CellFixed cells carry a pre-given clue and never change during search.
	CellFixed
	// CellOpen cells start empty and are filled by the solver.
	CellOpen
)

// Cell is one grid square. Value is meaningful for fixed cells (the clue)
// and open cells (0 while unfilled, otherwise the tentatively placed value).
type Cell struct {
	Kind  CellKind
	Value int
}

// Coord identifies a grid cell by row and column.
type Coord struct {
	Row int
	Col int
}

// Unplaced is the sentinel location of a value not yet on the grid.
var Unplaced = Coord{-1, -1}

func (c Coord) String() string {
	return fmt.Sprintf("(r%d, c%d)", c.Row, c.Col)
}

// Translate returns the coordinate shifted by the given row/column deltas.
func (c Coord) Translate(dr, dc int) Coord {
	return Coord{c.Row + dr, c.Col + dc}
}

// Chebyshev returns the king-move distance to target: the minimum number of
// 8-directional steps between the two cells.
func (c Coord) Chebyshev(target Coord) int {
	dr := c.Row - target.Row
	if dr < 0 {
		dr = -dr
	}
	dc := c.Col - target.Col
	if dc < 0 {
		dc = -dc
	}
	if dr > dc {
		return dr
	}
	return dc
}

// KingOffsets lists the 8 king-move neighbor offsets in the canonical
// exploration order: a compass sweep starting at (+1,0) and continuing
// (+1,+1), (0,+1), (-1,+1), (-1,0), (-1,-1), (0,-1), (+1,-1). The solver
// relies on this exact order, so it lives here rather than being redefined
// per package.
var KingOffsets = [8]Coord{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// Observer receives a notification after every board mutation, in mutation
// order. Implementations must not mutate the board.
type Observer interface {
	// CellFilled reports that value is now displayed at (row, col).
	CellFilled(row, col, value int)
	// CellCleared reports that (row, col) no longer displays a value.
	CellCleared(row, col int)
}

// Puzzle is the serializable form of a Hidato puzzle. Givens uses -1 for
// blocked cells, 0 for open cells and positive integers for clues. Solution,
// when present, is a completed assignment in the same layout.
type Puzzle struct {
	Height     int     `json:"height"`
	Width      int     `json:"width"`
	Givens     [][]int `json:"givens"`
	Solution   [][]int `json:"solution,omitempty"`
	MaxValue   int     `json:"maxValue"`
	Difficulty int     `json:"difficulty,omitempty"`
}

// NewPuzzle creates an all-open puzzle of the given dimensions.
func NewPuzzle(height, width int) *Puzzle {
	givens := make([][]int, height)
	for i := range givens {
		givens[i] = make([]int, width)
	}
	return &Puzzle{
		Height: height,
		Width:  width,
		Givens: givens,
	}
}

// Dimensions returns the puzzle size as "HxW".
func (p *Puzzle) Dimensions() string {
	return fmt.Sprintf("%dx%d", p.Height, p.Width)
}

// ToJSON converts the puzzle to JSON bytes
func (p *Puzzle) ToJSON() ([]byte, error) {
	return json.Marshal(p)
}

// FromJSON creates a Puzzle from JSON bytes
func FromJSON(data []byte) (*Puzzle, error) {
	var p Puzzle
	err := json.Unmarshal(data, &p)
	return &p, err
}

// Board is the live search state: the grid contents plus the value→location
// index. Both structures always agree: for every value v with a known
// location, the cell there holds v, and no other cell does. All mutation
// goes through Place and Remove; the solver owns the board exclusively
// while searching.
type Board struct {
	height   int
	width    int
	maxValue int
	cells    [][]Cell
	index    []Coord // 1..maxValue; slot 0 unused
	observer Observer
}

// NewBoard builds the grid and value index from a parsed puzzle. Clues
// populate both structures immediately; every other value starts unplaced.
// Structural problems (bad dimensions, duplicate clues, no clues, stray
// negative cells) are reported as errors. MaxValue on the puzzle is ignored;
// the highest clue is always recomputed from Givens.
func NewBoard(p *Puzzle) (*Board, error) {
	if p.Height < 2 || p.Width < 2 {
		return nil, fmt.Errorf("grid dimensions out of bounds: %dx%d (both must be >= 2)", p.Height, p.Width)
	}
	if len(p.Givens) != p.Height {
		return nil, fmt.Errorf("givens have %d rows, want %d", len(p.Givens), p.Height)
	}

	b := &Board{
		height: p.Height,
		width:  p.Width,
		cells:  make([][]Cell, p.Height),
	}

	maxValue := 0
	for r, row := range p.Givens {
		if len(row) != p.Width {
			return nil, fmt.Errorf("row %d has %d cells, want %d", r, len(row), p.Width)
		}
		b.cells[r] = make([]Cell, p.Width)
		for c, v := range row {
			switch {
			case v == Blocked:
				b.cells[r][c] = Cell{Kind: CellBlocked}
			case v == 0:
				b.cells[r][c] = Cell{Kind: CellOpen}
			case v > 0:
				b.cells[r][c] = Cell{Kind: CellFixed, Value: v}
				if v > maxValue {
					maxValue = v
				}
			default:
				return nil, fmt.Errorf("cell (%d,%d) holds invalid value %d", r, c, v)
			}
		}
	}
	if maxValue < 1 {
		return nil, fmt.Errorf("puzzle has no clues: the highest value cannot be determined")
	}

	b.maxValue = maxValue
	b.index = make([]Coord, maxValue+1)
	for v := range b.index {
		b.index[v] = Unplaced
	}
	for r := range b.cells {
		for c, cell := range b.cells[r] {
			if cell.Kind != CellFixed {
				continue
			}
			if b.index[cell.Value] != Unplaced {
				return nil, fmt.Errorf("value %d appears at both %s and %s", cell.Value, b.index[cell.Value], Coord{r, c})
			}
			b.index[cell.Value] = Coord{r, c}
		}
	}
	return b, nil
}

func (b *Board) Height() int   { return b.height }
func (b *Board) Width() int    { return b.width }
func (b *Board) MaxValue() int { return b.maxValue }

// SetObserver installs the mutation observer. A nil observer disables
// notifications.
func (b *Board) SetObserver(o Observer) { b.observer = o }

// InBounds reports whether the coordinate lies on the grid.
func (b *Board) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < b.height && c.Col >= 0 && c.Col < b.width
}

// CellAt returns the cell at c. The coordinate must be in bounds.
func (b *Board) CellAt(c Coord) Cell {
	return b.cells[c.Row][c.Col]
}

// Free reports whether the cell at c is open and currently unfilled, i.e.
// available for a placement. The coordinate must be in bounds.
func (b *Board) Free(c Coord) bool {
	cell := b.cells[c.Row][c.Col]
	return cell.Kind == CellOpen && cell.Value == 0
}

// LocationOf returns the current location of value and whether it is placed.
func (b *Board) LocationOf(value int) (Coord, bool) {
	loc := b.index[value]
	return loc, loc != Unplaced
}

// PuzzleCells returns the number of cells that take part in the puzzle
// (fixed plus open).
func (b *Board) PuzzleCells() int {
	n := 0
	for r := range b.cells {
		for _, cell := range b.cells[r] {
			if cell.Kind != CellBlocked {
				n++
			}
		}
	}
	return n
}

// Place writes value into the free cell at loc and records its location in
// the index, then notifies the observer. The value must be unplaced and the
// cell free; violating either is a bug in the caller and panics.
func (b *Board) Place(loc Coord, value int) {
	if value < 1 || value > b.maxValue {
		panic(fmt.Sprintf("place: value %d outside 1..%d", value, b.maxValue))
	}
	if b.index[value] != Unplaced {
		panic(fmt.Sprintf("place: value %d already placed at %s", value, b.index[value]))
	}
	if !b.InBounds(loc) || !b.Free(loc) {
		panic(fmt.Sprintf("place: cell %s is not free for value %d", loc, value))
	}
	b.cells[loc.Row][loc.Col].Value = value
	b.index[value] = loc
	if b.observer != nil {
		b.observer.CellFilled(loc.Row, loc.Col, value)
	}
}

// Remove undoes a prior Place of value at loc: the cell returns to unfilled
// and the value to unplaced, then the observer is notified. The cell must be
// an open cell currently holding value; anything else panics.
func (b *Board) Remove(loc Coord, value int) {
	if value < 1 || value > b.maxValue {
		panic(fmt.Sprintf("remove: value %d outside 1..%d", value, b.maxValue))
	}
	if !b.InBounds(loc) {
		panic(fmt.Sprintf("remove: %s out of bounds", loc))
	}
	cell := b.cells[loc.Row][loc.Col]
	if cell.Kind != CellOpen || cell.Value != value {
		panic(fmt.Sprintf("remove: cell %s does not hold open value %d", loc, value))
	}
	b.cells[loc.Row][loc.Col].Value = 0
	b.index[value] = Unplaced
	if b.observer != nil {
		b.observer.CellCleared(loc.Row, loc.Col)
	}
}

// Reset clears every solver placement, restoring the board to its
// post-construction state. Fixed clues are untouched. No observer
// notifications are emitted; callers redraw if they need to.
func (b *Board) Reset() {
	for r := range b.cells {
		for c := range b.cells[r] {
			if b.cells[r][c].Kind == CellOpen {
				b.cells[r][c].Value = 0
			}
		}
	}
	for v := 1; v <= b.maxValue; v++ {
		b.index[v] = Unplaced
	}
	for r := range b.cells {
		for c, cell := range b.cells[r] {
			if cell.Kind == CellFixed {
				b.index[cell.Value] = Coord{r, c}
			}
		}
	}
}

// Values returns a snapshot of the grid in Givens layout: -1 for blocked
// cells, otherwise the current value (0 if still unfilled).
func (b *Board) Values() [][]int {
	out := make([][]int, b.height)
	for r := range b.cells {
		out[r] = make([]int, b.width)
		for c, cell := range b.cells[r] {
			if cell.Kind == CellBlocked {
				out[r][c] = Blocked
			} else {
				out[r][c] = cell.Value
			}
		}
	}
	return out
}
