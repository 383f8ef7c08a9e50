package life

// LiveNeighbors counts live cells in the Moore neighbourhood of (r, c).
// Neighbours outside the grid count as dead.
func (g *Grid) LiveNeighbors(r, c int) int {
	n := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n += int(g.At(r+dr, c+dc))
		}
	}
	return n
}

// Conway's rule: (alive && neighbors == 2) || neighbors == 3
func nextState(alive bool, neighbors int) Cell {
	if neighbors == 3 || (alive && neighbors == 2) {
		return Alive
	}
	return Dead
}

// Advance returns the next generation of g. Every output cell is computed from
// g alone; g itself is not modified.
func Advance(g *Grid) *Grid {
	out := New(g.rows, g.cols)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			out.cells[r][c] = nextState(g.cells[r][c] == Alive, g.LiveNeighbors(r, c))
		}
	}
	return out
}

// Next is shorthand for Advance(g).
func (g *Grid) Next() *Grid { return Advance(g) }
