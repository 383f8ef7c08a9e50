package life

import "math/rand/v2"

// DefaultDensity is the live-cell probability used by the Random control.
const DefaultDensity = 0.25

// NewRNG returns a deterministic source for Randomize.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// Randomize returns a grid the size of g where each cell is independently
// live with probability density. Density is clamped to [0, 1]; 0 yields an
// all-dead grid and 1 an all-live grid.
func Randomize(g *Grid, density float64, rng *rand.Rand) *Grid {
	if density < 0 {
		density = 0
	}
	if density > 1 {
		density = 1
	}
	out := New(g.rows, g.cols)
	for r := range out.cells {
		for c := range out.cells[r] {
			if rng.Float64() < density {
				out.cells[r][c] = Alive
			}
		}
	}
	return out
}
