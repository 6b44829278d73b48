package generator

import (
	"reflect"
	"testing"

	"hidato_go/internal/solver"
	"hidato_go/internal/types"
)

func TestGenerateProducesSolvablePuzzle(t *testing.T) {
	g := NewClassicGenerator(5, 5)
	g.SetSeed(42)
	if err := g.SetDifficulty(3); err != nil {
		t.Fatalf("SetDifficulty failed: %v", err)
	}

	p, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if p.MaxValue != 25 {
		t.Fatalf("MaxValue = %d, want 25", p.MaxValue)
	}

	// solution is a single chain covering every cell
	loc := make(map[int]types.Coord)
	for r, row := range p.Solution {
		for c, v := range row {
			if v < 1 || v > p.MaxValue {
				t.Fatalf("solution holds %d at (%d,%d)", v, r, c)
			}
			if _, dup := loc[v]; dup {
				t.Fatalf("solution repeats value %d", v)
			}
			loc[v] = types.Coord{Row: r, Col: c}
		}
	}
	for v := 2; v <= p.MaxValue; v++ {
		if loc[v-1].Chebyshev(loc[v]) != 1 {
			t.Fatalf("solution values %d and %d are not adjacent", v-1, v)
		}
	}

	// clues agree with the solution
	for r, row := range p.Givens {
		for c, v := range row {
			if v > 0 && p.Solution[r][c] != v {
				t.Fatalf("clue %d at (%d,%d) contradicts solution %d", v, r, c, p.Solution[r][c])
			}
		}
	}

	// and the solver can fill it back in
	b, err := types.NewBoard(p)
	if err != nil {
		t.Fatalf("NewBoard failed: %v", err)
	}
	res, err := solver.New(b).Solve()
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !res.Solved {
		t.Fatalf("generated puzzle not solvable after %d steps", res.Steps)
	}
}

func TestGenerateWithBlockedCells(t *testing.T) {
	g := NewClassicGenerator(6, 6)
	g.SetSeed(7)
	if err := g.SetBlockedRatio(0.1); err != nil {
		t.Fatalf("SetBlockedRatio failed: %v", err)
	}

	p, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if p.MaxValue != 33 {
		t.Fatalf("MaxValue = %d, want 33 (36 cells minus 3 holes)", p.MaxValue)
	}

	blocked := 0
	for r, row := range p.Givens {
		for c, v := range row {
			if (v == types.Blocked) != (p.Solution[r][c] == types.Blocked) {
				t.Fatalf("hole mismatch at (%d,%d)", r, c)
			}
			if v == types.Blocked {
				blocked++
			}
		}
	}
	if blocked != 3 {
		t.Fatalf("%d blocked cells, want 3", blocked)
	}

	b, err := types.NewBoard(p)
	if err != nil {
		t.Fatalf("NewBoard failed: %v", err)
	}
	res, err := solver.New(b).Solve()
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !res.Solved {
		t.Fatalf("generated puzzle not solvable after %d steps", res.Steps)
	}
}

func TestGenerateSeedReproducible(t *testing.T) {
	first := NewClassicGenerator(5, 5)
	first.SetSeed(99)
	a, err := first.Generate()
	if err != nil {
		t.Fatalf("first Generate failed: %v", err)
	}

	second := NewClassicGenerator(5, 5)
	second.SetSeed(99)
	b, err := second.Generate()
	if err != nil {
		t.Fatalf("second Generate failed: %v", err)
	}

	if !reflect.DeepEqual(a.Givens, b.Givens) || !reflect.DeepEqual(a.Solution, b.Solution) {
		t.Fatal("same seed produced different puzzles")
	}
}

func TestGenerateHidesCluesByDifficulty(t *testing.T) {
	g := NewClassicGenerator(5, 5)
	g.SetSeed(1)
	if err := g.SetDifficulty(5); err != nil {
		t.Fatalf("SetDifficulty failed: %v", err)
	}

	p, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	clues := 0
	sawFirst, sawLast := false, false
	for _, row := range p.Givens {
		for _, v := range row {
			if v > 0 {
				clues++
			}
			if v == 1 {
				sawFirst = true
			}
			if v == p.MaxValue {
				sawLast = true
			}
		}
	}
	// difficulty 5 hides 70% of 25 values, endpoints always stay
	if clues != 8 {
		t.Fatalf("%d clues left, want 8", clues)
	}
	if !sawFirst || !sawLast {
		t.Fatalf("endpoints removed: 1 present %v, %d present %v", sawFirst, p.MaxValue, sawLast)
	}
}

func TestSetDifficultyValidates(t *testing.T) {
	g := NewClassicGenerator(5, 5)
	for _, level := range []int{0, 6, -1} {
		if err := g.SetDifficulty(level); err == nil {
			t.Fatalf("SetDifficulty accepted %d", level)
		}
	}
	for level := 1; level <= 5; level++ {
		if err := g.SetDifficulty(level); err != nil {
			t.Fatalf("SetDifficulty rejected %d: %v", level, err)
		}
	}
}

func TestSetBlockedRatioValidates(t *testing.T) {
	g := NewClassicGenerator(5, 5)
	for _, ratio := range []float64{-0.1, 0.31, 1} {
		if err := g.SetBlockedRatio(ratio); err == nil {
			t.Fatalf("SetBlockedRatio accepted %v", ratio)
		}
	}
	for _, ratio := range []float64{0, 0.15, 0.3} {
		if err := g.SetBlockedRatio(ratio); err != nil {
			t.Fatalf("SetBlockedRatio rejected %v: %v", ratio, err)
		}
	}
}

func TestGenerateRejectsTinyGrid(t *testing.T) {
	g := NewClassicGenerator(1, 5)
	if _, err := g.Generate(); err == nil {
		t.Fatal("Generate accepted a 1-row grid")
	}
}
