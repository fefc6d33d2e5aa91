// Package parallel implements the data-parallel chunk executor and future
// composition discipline used by the domain, msm and groth16 packages.
//
// Work units are uniform-cost slices: the Scheduler splits by CPU count and
// hands each worker a disjoint sub-range of indices, never an aliased
// pointer. Futures are handles to pool-submitted goroutines; callers chain
// as many as they like with Go, then block on Wait.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Execute splits [0, n) into contiguous chunks (one per worker, bounded by
// nbTasks when > 0) and runs fn(start, end) on each chunk concurrently. It
// blocks until every chunk has completed. There are no cooperative
// suspension points inside fn; each worker runs its chunk to completion.
func Execute(n int, fn func(start, end int), nbTasks ...int) {
	nbIterations := n
	if nbIterations == 0 {
		return
	}

	numCPU := runtime.NumCPU()
	if len(nbTasks) > 0 && nbTasks[0] > 0 {
		numCPU = nbTasks[0]
	}
	if numCPU > nbIterations {
		numCPU = nbIterations
	}

	var g errgroup.Group
	chunkSize := (nbIterations + numCPU - 1) / numCPU
	for start := 0; start < nbIterations; start += chunkSize {
		start := start
		end := start + chunkSize
		if end > nbIterations {
			end = nbIterations
		}
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	// chunk bodies never return an error; Wait only blocks until all are done.
	_ = g.Wait()
}

// Future is a handle to a pool-submitted task that produces a value of type
// T or fails. Wait blocks until the task has finished. A Future has no
// method that chains a continuation onto its result: dependent work is
// started only after Wait (or Join) has returned.
type Future[T any] struct {
	g   *errgroup.Group
	ctx context.Context
	out *T
}

// Go submits fn to run on a pool goroutine and returns a Future observing
// its result. The composite future is poisoned (first error wins) if fn
// returns an error; there is no retry and no cancellation of sibling tasks
// beyond what errgroup.WithContext already provides.
func Go[T any](parent context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	g, ctx := errgroup.WithContext(parent)
	var out T
	f := &Future[T]{g: g, ctx: ctx, out: &out}
	g.Go(func() error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return f
}

// Wait blocks until the task completes and returns its value or error.
func (f *Future[T]) Wait() (T, error) {
	err := f.g.Wait()
	return *f.out, err
}

// Join blocks on all of the given futures in deterministic (index) order
// and returns their values, or the first error encountered in that order.
// Prove collects its Ar and Bs1 results through it.
func Join[T any](futures ...*Future[T]) ([]T, error) {
	out := make([]T, len(futures))
	for i, f := range futures {
		v, err := f.Wait()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
