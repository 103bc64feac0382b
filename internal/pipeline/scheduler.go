package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ProcessFunc produces the Outcome for one path.
type ProcessFunc func(ctx context.Context, path string) Outcome

// Progress is emitted once per completed path, in completion order.
type Progress struct {
	Outcome Outcome
	Done    int
	Total   int
}

// Schedule runs process over paths with at most n running at once and
// returns when every path has exactly one Outcome. notify may be nil; it is
// called serially.
//
// Cancelling ctx stops new launches: paths not yet started are recorded as
// Skipped (interrupted). Started pipelines run to completion on a context
// detached from ctx so no file is left half-processed.
func Schedule(ctx context.Context, paths []string, n int, process ProcessFunc, notify func(Progress)) RunSummary {
	if n < 1 {
		n = 1
	}
	summary := RunSummary{Total: len(paths)}

	var mu sync.Mutex
	record := func(o Outcome) {
		mu.Lock()
		defer mu.Unlock()
		summary.Add(o)
		if notify != nil {
			notify(Progress{Outcome: o, Done: summary.Done, Total: summary.Total})
		}
	}

	work := context.WithoutCancel(ctx)
	var g errgroup.Group
	g.SetLimit(n)
	for i, path := range paths {
		if ctx.Err() != nil {
			for _, rest := range paths[i:] {
				record(skipped(rest, SkipInterrupted))
			}
			break
		}
		g.Go(func() error {
			record(runContained(work, process, path))
			return nil
		})
	}
	_ = g.Wait()

	mu.Lock()
	defer mu.Unlock()
	return summary
}

func runContained(ctx context.Context, process ProcessFunc, path string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = failed(path, fmt.Errorf("panic: %v", r))
		}
	}()
	return process(ctx, path)
}
