package sim

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/lifesim/internal/life"
)

// Ensemble runs independent random soups of the same size, one per seed.
type Ensemble struct {
	Rows, Cols int
	Density    float64
	SeedStart  int64
	NumRuns    int
}

func (e *Ensemble) Run(ctx context.Context, cfg RunConfig) ([]*Result, error) {
	results := make([]*Result, e.NumRuns)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.NumRuns; i++ {
		g.Go(func() error {
			start := life.Randomize(life.New(e.Rows, e.Cols), e.Density, life.NewRNG(e.SeedStart+int64(i)))
			res, err := Run(ctx, start, cfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
