// Package solver implements the depth-first backtracking search that
// completes a Hidato board: starting from the clues, it places each missing
// value king-move-adjacent to its predecessor, prunes candidates that cannot
// reach the next placed value in the remaining steps, and undoes every
// placement whose subtree fails.
package solver

import (
	"errors"
	"fmt"
	"time"

	"hidato_go/internal/types"
)

var (
	// ErrMissingFirst reports a puzzle whose value 1 is not given as a clue;
	// the chain has no start location without it.
	ErrMissingFirst = errors.New("value 1 is not given as a clue")
	// ErrCellCount reports a puzzle whose usable cell count differs from the
	// highest clue, so the values 1..N cannot cover the cells exactly.
	ErrCellCount = errors.New("puzzle cell count does not match the highest clue")
)

// Result summarizes a completed search.
type Result struct {
	Solved   bool
	Steps    int
	Duration time.Duration
}

// Solver runs the search over a single Board, which it owns exclusively for
// the duration of Solve. The search is purely sequential: state changes in
// strict place/remove pairs matching recursion entry and exit.
type Solver struct {
	board *types.Board
	steps int
}

func New(board *types.Board) *Solver {
	return &Solver{board: board}
}

// Solve checks the search preconditions and then explores to completion.
// A puzzle with no valid completion is a normal outcome (Solved false plus
// the step count that proved exhaustion), not an error; errors are reserved
// for malformed input. On success the board is left holding the completed
// assignment.
func (s *Solver) Solve() (Result, error) {
	start := time.Now()
	if err := s.validate(); err != nil {
		return Result{}, err
	}
	s.steps = 0
	if !s.consistentClues() {
		// A non-adjacent pair of consecutive clues can never be repaired by
		// search, and exploring anyway could fill the remaining cells around
		// the broken link and claim success.
		return Result{Solved: false, Duration: time.Since(start)}, nil
	}
	solved := s.explore()
	return Result{Solved: solved, Steps: s.steps, Duration: time.Since(start)}, nil
}

// validate enforces the input preconditions the search relies on. The
// highest value is a clue by construction (it is the highest clue), which
// guarantees findAnchor always finds a placed value ahead of any missing one.
func (s *Solver) validate() error {
	if _, ok := s.board.LocationOf(1); !ok {
		return ErrMissingFirst
	}
	if cells := s.board.PuzzleCells(); cells != s.board.MaxValue() {
		return fmt.Errorf("%w: %d usable cells for values 1..%d", ErrCellCount, cells, s.board.MaxValue())
	}
	return nil
}

// consistentClues reports whether every pair of consecutive values that are
// both clues sits on adjacent cells. Clue locations never move, so one bad
// pair means the puzzle has no completion.
func (s *Solver) consistentClues() bool {
	for v := 1; v < s.board.MaxValue(); v++ {
		locA, ok := s.board.LocationOf(v)
		if !ok || s.board.CellAt(locA).Kind != types.CellFixed {
			continue
		}
		locB, ok := s.board.LocationOf(v + 1)
		if !ok || s.board.CellAt(locB).Kind != types.CellFixed {
			continue
		}
		if locA.Chebyshev(locB) != 1 {
			return false
		}
	}
	return true
}

// explore performs one search step. It finds the smallest missing value,
// tries each of the 8 cells around that value's predecessor in the canonical
// offset order, and recurses. Success propagates up immediately with the
// placements intact; a failed branch is undone before the next candidate.
func (s *Solver) explore() bool {
	s.steps++

	// The next number to place is the smallest missing value; every value
	// below it is already on the grid, so its predecessor has a location.
	next := s.findMissingValue()
	if next == 0 {
		return true
	}

	// The anchor is the nearest placed value ahead of next. A valid chain
	// from next to the anchor takes at least anchor-next king moves, so any
	// candidate further away than that budget is hopeless.
	anchor := s.findAnchor(next)
	anchorLoc, _ := s.board.LocationOf(anchor)
	budget := anchor - next

	startLoc, _ := s.board.LocationOf(next - 1)

	for _, d := range types.KingOffsets {
		cand := startLoc.Translate(d.Row, d.Col)
		if !s.board.InBounds(cand) || !s.board.Free(cand) {
			continue
		}
		if cand.Chebyshev(anchorLoc) > budget {
			continue
		}

		s.board.Place(cand, next)
		if s.explore() {
			return true
		}
		s.board.Remove(cand, next)
	}
	return false
}

// findMissingValue returns the smallest value not yet on the grid, or 0 if
// every value is placed.
func (s *Solver) findMissingValue() int {
	for v := 1; v <= s.board.MaxValue(); v++ {
		if _, ok := s.board.LocationOf(v); !ok {
			return v
		}
	}
	return 0
}

// findAnchor returns the smallest placed value above next. The highest value
// is a clue and clues are never removed, so the scan cannot come up empty
// for a missing value.
func (s *Solver) findAnchor(next int) int {
	for v := next + 1; v <= s.board.MaxValue(); v++ {
		if _, ok := s.board.LocationOf(v); ok {
			return v
		}
	}
	panic(fmt.Sprintf("no placed value above %d", next))
}
