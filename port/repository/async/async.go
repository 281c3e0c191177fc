// Package async provides the asynchronous form of the repository contracts.
//
// An asynchronous operation has the same semantics as its synchronous counterpart,
// it only runs on its own goroutine, and the caller collects the result with Future.Await.
// Ordering guarantees hold relative to the caller once each future is awaited.
package async

import (
	"context"
	"sync"
)

// Future is the one-shot result of an operation running in the background.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go starts fn on a new goroutine, and returns the Future of its result.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.value, f.err = fn()
	}()
	return f
}

// Await blocks until the result is available, or the context is done.
// The operation itself is not cancelled when the context is done.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel that is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Lookup is the result of a read that may not find its subject.
type Lookup[M any] struct {
	Model M
	Found bool
}

// AwaitAll waits for every future and returns the first error in the order of the futures.
func AwaitAll[T any](ctx context.Context, fs ...*Future[T]) ([]T, error) {
	var (
		out  = make([]T, len(fs))
		errs = make([]error, len(fs))
		wg   sync.WaitGroup
	)
	for i, f := range fs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out[i], errs[i] = f.Await(ctx)
		}()
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return out, err
		}
	}
	return out, nil
}
