package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"hidato_go/internal/types"
)

// HidatoGenerator interface defines methods for generating Hidato puzzles
type HidatoGenerator interface {
	Generate() (*types.Puzzle, error)
	SetDifficulty(level int) error
}

// ClassicGenerator implements HidatoGenerator
type ClassicGenerator struct {
	difficulty   int
	height       int
	width        int
	blockedRatio float64
	maxRetries   int
	rng          *rand.Rand
}

func NewClassicGenerator(height, width int) *ClassicGenerator {
	return &ClassicGenerator{
		difficulty: 1,
		height:     height,
		width:      width,
		maxRetries: 10, // Default max retries
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *ClassicGenerator) SetMaxRetries(retries int) {
	g.maxRetries = retries
}

// SetSeed makes generation reproducible.
func (g *ClassicGenerator) SetSeed(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
}

func (g *ClassicGenerator) SetDifficulty(level int) error {
	if level < 1 || level > 5 {
		return errors.New("difficulty must be between 1 and 5")
	}
	g.difficulty = level
	return nil
}

// SetBlockedRatio controls the share of cells turned into holes. Ratios
// above 0.3 tend to cut the grid into pieces no path can cover.
func (g *ClassicGenerator) SetBlockedRatio(ratio float64) error {
	if ratio < 0 || ratio > 0.3 {
		return errors.New("blocked ratio must be between 0 and 0.3")
	}
	g.blockedRatio = ratio
	return nil
}

// Generate carves a random king-move path that covers every open cell,
// numbers it 1..N and then hides clues according to the difficulty.
func (g *ClassicGenerator) Generate() (*types.Puzzle, error) {
	if g.height < 2 || g.width < 2 {
		return nil, errors.New("grid dimensions must be at least 2x2")
	}

	startTime := time.Now()
	maxTime := time.Duration(g.getMaxGenerationTime()) * time.Millisecond
	retries := 0

	for retries < g.maxRetries {
		fmt.Printf("Attempt %d/%d...\n", retries+1, g.maxRetries)
		solution, open := g.newSolutionGrid()
		start := g.randomOpenCell(solution)

		if g.walk(solution, start, 1, open, startTime, maxTime) {
			fmt.Printf("Successfully generated puzzle on attempt %d\n", retries+1)
			p := types.NewPuzzle(g.height, g.width)
			p.MaxValue = open
			p.Difficulty = g.difficulty

			// Copy solution
			p.Solution = make([][]int, g.height)
			for i := range solution {
				p.Solution[i] = make([]int, g.width)
				copy(p.Solution[i], solution[i])
				copy(p.Givens[i], solution[i])
			}

			// Remove clues based on difficulty
			g.removeClues(p)
			return p, nil
		}

		fmt.Printf("Failed to carve a path on attempt %d\n", retries+1)
		retries++
	}

	return nil, fmt.Errorf("failed to generate valid puzzle after %d attempts", g.maxRetries)
}

// walk extends the path one cell at a time, backtracking when it runs into
// a dead end. The grid doubles as the solution: 0 is unvisited, -1 blocked.
func (g *ClassicGenerator) walk(grid [][]int, pos types.Coord, value, total int, startTime time.Time, maxTime time.Duration) bool {
	if time.Since(startTime) > maxTime {
		return false
	}

	grid[pos.Row][pos.Col] = value
	if value == total {
		return true
	}

	for _, off := range g.shuffledOffsets() {
		next := pos.Translate(off.Row, off.Col)
		if next.Row < 0 || next.Row >= g.height || next.Col < 0 || next.Col >= g.width {
			continue
		}
		if grid[next.Row][next.Col] != 0 {
			continue
		}
		if g.walk(grid, next, value+1, total, startTime, maxTime) {
			return true
		}
	}

	grid[pos.Row][pos.Col] = 0
	return false
}

func (g *ClassicGenerator) newSolutionGrid() ([][]int, int) {
	grid := make([][]int, g.height)
	for i := range grid {
		grid[i] = make([]int, g.width)
	}

	total := g.height * g.width
	blockedCount := int(g.blockedRatio * float64(total))
	cells := g.rng.Perm(total)
	for i := 0; i < blockedCount; i++ {
		idx := cells[i]
		grid[idx/g.width][idx%g.width] = types.Blocked
	}

	return grid, total - blockedCount
}

func (g *ClassicGenerator) randomOpenCell(grid [][]int) types.Coord {
	open := make([]types.Coord, 0, g.height*g.width)
	for r := range grid {
		for c, v := range grid[r] {
			if v == 0 {
				open = append(open, types.Coord{Row: r, Col: c})
			}
		}
	}
	return open[g.rng.Intn(len(open))]
}

func (g *ClassicGenerator) shuffledOffsets() []types.Coord {
	offs := make([]types.Coord, len(types.KingOffsets))
	copy(offs, types.KingOffsets[:])
	g.rng.Shuffle(len(offs), func(i, j int) {
		offs[i], offs[j] = offs[j], offs[i]
	})
	return offs
}

func (g *ClassicGenerator) getMaxGenerationTime() int {
	return max(5000, g.height*g.width*50)
}

func (g *ClassicGenerator) removeClues(p *types.Puzzle) {
	// 1 and MaxValue stay on the board, everything in between may go
	candidates := make([]types.Coord, 0, p.MaxValue)
	for r, row := range p.Givens {
		for c, v := range row {
			if v > 1 && v < p.MaxValue {
				candidates = append(candidates, types.Coord{Row: r, Col: c})
			}
		}
	}

	g.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	// Calculate clues to remove based on difficulty (1-5)
	// Difficulty 1: 30%, 2: 40%, 3: 50%, 4: 60%, 5: 70%
	cluesToRemove := (g.difficulty*10 + 20) * p.MaxValue / 100
	if cluesToRemove > len(candidates) {
		cluesToRemove = len(candidates)
	}

	for i := 0; i < cluesToRemove; i++ {
		cell := candidates[i]
		p.Givens[cell.Row][cell.Col] = 0
	}
}
