// Package parser reads and writes the Hidato text format: a header line
// "H W" followed by H rows of exactly W whitespace-separated tokens, where a
// token is 0 (open cell), a positive integer (clue) or "x" (blocked cell).
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"hidato_go/internal/types"
)

// Parse reads one puzzle from r. Syntax problems and structurally broken
// grids (wrong row lengths, stray tokens, negative numbers, duplicate clues,
// no clues at all, dimensions below 2) are reported as errors; content after
// the last declared row is ignored.
func Parse(r io.Reader) (*types.Puzzle, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("empty input: missing dimension header")
	}
	fields := strings.Fields(sc.Text())
	if len(fields) != 2 {
		return nil, fmt.Errorf("header must be \"height width\", got %q", strings.TrimSpace(sc.Text()))
	}
	height, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("invalid height %q", fields[0])
	}
	width, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("invalid width %q", fields[1])
	}
	if height < 2 || width < 2 {
		return nil, fmt.Errorf("grid dimensions out of bounds: %dx%d (both must be >= 2)", height, width)
	}

	p := types.NewPuzzle(height, width)
	seen := make(map[int]types.Coord)
	for row := 0; row < height; row++ {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("unexpected end of input: got %d of %d rows", row, height)
		}
		tokens := strings.Fields(sc.Text())
		if len(tokens) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d", row, len(tokens), width)
		}
		for col, tok := range tokens {
			if tok == "x" {
				p.Givens[row][col] = types.Blocked
				continue
			}
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("row %d: %q is neither an integer nor \"x\"", row, tok)
			}
			if v < 0 {
				return nil, fmt.Errorf("row %d: negative value %d", row, v)
			}
			if v > 0 {
				loc := types.Coord{Row: row, Col: col}
				if prev, ok := seen[v]; ok {
					return nil, fmt.Errorf("value %d appears at both %s and %s", v, prev, loc)
				}
				seen[v] = loc
				if v > p.MaxValue {
					p.MaxValue = v
				}
			}
			p.Givens[row][col] = v
		}
	}
	if p.MaxValue == 0 {
		return nil, errors.New("puzzle has no clues")
	}
	return p, nil
}

// ParseFile reads a puzzle from the file at path.
func ParseFile(path string) (*types.Puzzle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open puzzle file: %v", err)
	}
	defer f.Close()
	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %v", path, err)
	}
	return p, nil
}

// Format renders the puzzle givens in the text form understood by Parse,
// with columns padded to the widest clue. Parse(Format(p)) reproduces p.
func Format(p *types.Puzzle) string {
	cellWidth := 1
	for _, row := range p.Givens {
		for _, v := range row {
			if n := len(strconv.Itoa(v)); v > 0 && n > cellWidth {
				cellWidth = n
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d %d\n", p.Height, p.Width)
	for _, row := range p.Givens {
		for col, v := range row {
			if col > 0 {
				b.WriteByte(' ')
			}
			if v == types.Blocked {
				fmt.Fprintf(&b, "%*s", cellWidth, "x")
			} else {
				fmt.Fprintf(&b, "%*d", cellWidth, v)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
