package horary

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Sweep runs Locate for every number against the same base query using at most
// workers concurrent searches. Results keep the order of numbers. The first
// search error cancels the rest.
func (l *Locator) Sweep(ctx context.Context, base Query, numbers []int, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	for _, n := range numbers {
		if _, err := Lookup(n); err != nil {
			return nil, err
		}
	}

	results := make([]Result, len(numbers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, n := range numbers {
		g.Go(func() error {
			q := base
			q.Number = n
			res, err := l.Locate(gctx, q)
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
