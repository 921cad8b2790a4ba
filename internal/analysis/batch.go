package analysis

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// AnalyzeFiles analyzes documents in parallel with at most jobs concurrent
// runs. Results keep the input order. Runs share nothing but the read-only
// rule tables and dictionary. The only error is context cancellation.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, paths []string, jobs int) ([]*Result, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = a.AnalyzeFile(ctx, path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
