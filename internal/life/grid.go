package life

import (
	"fmt"
	"strings"
)

type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

// Grid is a fixed-size matrix of cells. The zero value is not usable; build
// grids with New, Parse or one of the generation functions.
type Grid struct {
	rows, cols int
	cells      [][]Cell
}

// New returns an all-dead grid. It panics if either dimension is not positive.
func New(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("life: invalid grid size %dx%d", rows, cols))
	}
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
	}
	return &Grid{rows: rows, cols: cols, cells: cells}
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether (r, c) addresses a cell of the grid.
func (g *Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols
}

// At returns the cell at (r, c); positions outside the grid read as Dead.
func (g *Grid) At(r, c int) Cell {
	if !g.InBounds(r, c) {
		return Dead
	}
	return g.cells[r][c]
}

// Alive reports whether the cell at (r, c) is live.
func (g *Grid) Alive(r, c int) bool { return g.At(r, c) == Alive }

// Set returns a copy of g with (r, c) set to v. Only the touched row is
// copied; the rest are shared with g.
func (g *Grid) Set(r, c int, v Cell) (*Grid, error) {
	if !g.InBounds(r, c) {
		return nil, fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrOutOfBounds, r, c, g.rows, g.cols)
	}
	if v != Dead {
		v = Alive
	}
	next := &Grid{rows: g.rows, cols: g.cols, cells: make([][]Cell, g.rows)}
	copy(next.cells, g.cells)
	row := make([]Cell, g.cols)
	copy(row, g.cells[r])
	row[c] = v
	next.cells[r] = row
	return next, nil
}

// Toggle returns a copy of g with (r, c) flipped.
func (g *Grid) Toggle(r, c int) (*Grid, error) {
	if !g.InBounds(r, c) {
		return nil, fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrOutOfBounds, r, c, g.rows, g.cols)
	}
	return g.Set(r, c, 1-g.cells[r][c])
}

// Population counts live cells.
func (g *Grid) Population() int {
	n := 0
	for _, row := range g.cells {
		for _, v := range row {
			n += int(v)
		}
	}
	return n
}

// SameSize reports whether g and o have identical dimensions.
func (g *Grid) SameSize(o *Grid) bool {
	return o != nil && g.rows == o.rows && g.cols == o.cols
}

func (g *Grid) Equal(o *Grid) bool {
	if !g.SameSize(o) {
		return false
	}
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c] != o.cells[r][c] {
				return false
			}
		}
	}
	return true
}

// String renders the grid one row per line, '#' for live and '.' for dead.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.cols + 1) * g.rows)
	for r, row := range g.cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, v := range row {
			if v == Alive {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}

// Parse builds a grid from the String format. Blank lines are skipped and
// short rows are padded with dead cells to the widest row.
func Parse(s string) (*Grid, error) {
	var lines []string
	cols := 0
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(line) > cols {
			cols = len(line)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("life: empty pattern")
	}
	g := New(len(lines), cols)
	for r, line := range lines {
		for c, ch := range line {
			switch ch {
			case '#', 'O', '*':
				g.cells[r][c] = Alive
			case '.', '_':
			default:
				return nil, fmt.Errorf("life: unexpected %q at (%d,%d)", ch, r, c)
			}
		}
	}
	return g, nil
}
