// Package workerpool provides bounded concurrent processing of work items.
package workerpool

import (
	"context"
	"sync"
)

// Process fans items out over at most workers goroutines and waits for all of
// them. The first error returned by process cancels the remaining work and is
// returned; a process function that absorbs its own failures makes the whole
// pass best-effort.
func Process[T any](ctx context.Context, workers int, items []T, process func(context.Context, T) error) error {
	if workers < 1 {
		workers = 1
	}
	if len(items) == 0 {
		return ctx.Err()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tasks := make(chan T, workers)
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case item, ok := <-tasks:
					if !ok {
						return
					}
					if err := process(ctx, item); err != nil {
						select {
						case errs <- err:
						default:
						}
						cancel()
						return
					}
				}
			}
		}()
	}

	go func() {
		defer close(tasks)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case tasks <- item:
			}
		}
	}()

	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return err
		}
	}
	return ctx.Err()
}
