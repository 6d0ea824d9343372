package compiler

import (
	"context"
	"runtime"
	"sync"
)

// FileResult pairs a fixture path with its compile outcome.
type FileResult struct {
	Path   string
	Result *Result
	Err    error
}

// CompileAll compiles paths with a pool of workers and returns the
// outcomes in input order. Workers stop picking up files once ctx is done;
// files never started report the context error. A worker count below one
// uses GOMAXPROCS.
func (c *Compiler) CompileAll(ctx context.Context, paths []string, workers int) []FileResult {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(paths))

	results := make([]FileResult, len(paths))
	tasks := make(chan int)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range tasks {
				res, err := c.CompileFile(ctx, paths[i])
				results[i] = FileResult{Path: paths[i], Result: res, Err: err}
			}
		}()
	}

	next := 0
feed:
	for ; next < len(paths); next++ {
		select {
		case <-ctx.Done():
			break feed
		case tasks <- next:
		}
	}
	close(tasks)
	wg.Wait()

	for i := next; i < len(paths); i++ {
		results[i] = FileResult{Path: paths[i], Err: ctx.Err()}
	}
	return results
}
