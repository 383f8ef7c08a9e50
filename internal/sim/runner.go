package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/lifesim/internal/life"
)

// RunConfig describes a headless run.
type RunConfig struct {
	Generations int
	// StopWhenStable ends the run early once a generation equals its
	// predecessor.
	StopWhenStable bool
}

type Result struct {
	Populations []int
	Final       *life.Grid
	Generations int
	Stable      bool
}

// Run advances g up to cfg.Generations times without a timer, recording the
// population before the first and after every generation. Observers see a
// snapshot per generation.
func Run(ctx context.Context, g *life.Grid, cfg RunConfig, observers ...Observer) (*Result, error) {
	if cfg.Generations <= 0 {
		return nil, fmt.Errorf("generations must be positive, got %d", cfg.Generations)
	}

	result := &Result{
		Populations: make([]int, 0, cfg.Generations+1),
	}
	cur := g
	result.Populations = append(result.Populations, cur.Population())

	for i := 0; i < cfg.Generations; i++ {
		select {
		case <-ctx.Done():
			result.Final = cur
			return result, ctx.Err()
		default:
		}

		next := life.Advance(cur)
		pop := next.Population()
		result.Populations = append(result.Populations, pop)
		result.Generations++

		for _, o := range observers {
			o.OnChange(Snapshot{Grid: next, Generation: result.Generations, Population: pop})
		}

		if cfg.StopWhenStable && next.Equal(cur) {
			cur = next
			result.Stable = true
			break
		}
		cur = next
	}

	result.Final = cur
	return result, nil
}
