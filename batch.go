//==============================================================================
// batch: concurrent solving of multiple MPS files
//==============================================================================

package mip

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// FileResult holds the outcome of solving one file in a batch. Err is set
// when the file could not be read or the model failed validation; Solution
// is set otherwise, whatever its status.
type FileResult struct {
	Path     string
	Solution *Solution
	Err      error
}

// SolveFiles reads and solves each MPS file concurrently, running at most
// workers solves at a time (workers < 1 means one per file). Each solve uses
// its own Solver so the files share nothing. Results are returned in the
// order of paths. Cancelling ctx stops unstarted solves; the per-file errors
// of a cancelled batch report context.Canceled.
// In case of failure, function returns an error.
func SolveFiles(ctx context.Context, paths []string, opts SolveOptions, workers int, solverOpts ...Option) ([]FileResult, error) {
	results := make([]FileResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, path := range paths {
		i, path := i, path
		results[i].Path = path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			prob, err := ReadMPSFile(path)
			if err != nil {
				results[i].Err = err
				return nil
			}
			sol, err := NewSolver(solverOpts...).Solve(prob, opts)
			results[i].Solution, results[i].Err = sol, err
			return nil
		})
	}
	// Workers report per-file outcomes through results, never an error, so
	// Wait only propagates a context failure.
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
