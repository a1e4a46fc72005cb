package worker

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ProcessFunc is the function signature for processing a single input.
type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

// Pool is a generic worker pool with configurable concurrency.
type Pool[T any, R any] struct {
	workers int
	process ProcessFunc[T, R]
}

// NewPool creates a new worker pool. Fewer than one worker means one.
func NewPool[T any, R any](workers int, fn ProcessFunc[T, R]) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[T, R]{
		workers: workers,
		process: fn,
	}
}

// Workers returns the concurrency limit.
func (p *Pool[T, R]) Workers() int {
	return p.workers
}

// Run processes inputs with at most Workers() calls in flight and returns the
// results in input order.
//
// After the first failure no further inputs are started; calls already in
// flight run to completion. The first error is returned. The context passed
// to process is not cancelled by a sibling failure, so in-flight work settles
// on its own.
func (p *Pool[T, R]) Run(ctx context.Context, inputs []T) ([]R, error) {
	results := make([]R, len(inputs))

	var g errgroup.Group
	g.SetLimit(p.workers)

	var failed atomic.Bool
	for i, input := range inputs {
		if failed.Load() {
			break
		}
		if err := ctx.Err(); err != nil {
			failed.Store(true)
			g.Go(func() error { return err })
			break
		}

		// Go blocks until a slot is free.
		g.Go(func() error {
			if failed.Load() {
				return nil
			}
			result, err := p.process(ctx, input)
			if err != nil {
				failed.Store(true)
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
