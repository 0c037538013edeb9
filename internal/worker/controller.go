package worker

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type WorkerFactoryFunc func(ctx context.Context, i int) func() error
type OnExitFunc func()

// Controller starts numWorkers workers built by f and waits for all of them.
// The first worker error cancels the context handed to the others.
func Controller(
	ctx context.Context,
	numWorkers int,
	f WorkerFactoryFunc,
	onExit OnExitFunc,
) error {
	defer func() {
		if onExit != nil {
			onExit()
		}
	}()

	if numWorkers <= 0 {
		numWorkers = 1
	}

	var group, groupctx = errgroup.WithContext(ctx)

	for i := 0; i < numWorkers; i++ {
		group.Go(f(groupctx, i))
	}

	return group.Wait()
}

// ForEach calls fn for every item with at most numWorkers calls in flight.
// Items are handed out in order. Results written by fn at index i stay in
// input order whatever the completion order.
func ForEach[T any](
	ctx context.Context,
	numWorkers int,
	items []T,
	fn func(ctx context.Context, i int, item T) error,
) error {
	if len(items) == 0 {
		return nil
	}

	if numWorkers > len(items) {
		numWorkers = len(items)
	}

	var indexes = make(chan int, len(items))

	for i := range items {
		indexes <- i
	}

	close(indexes)

	return Controller(
		ctx,
		numWorkers,
		func(ctx context.Context, _ int) func() error {
			return func() error {
				for i := range indexes {
					if err := ctx.Err(); err != nil {
						return err
					}

					if err := fn(ctx, i, items[i]); err != nil {
						return err
					}
				}

				return nil
			}
		},
		nil,
	)
}
