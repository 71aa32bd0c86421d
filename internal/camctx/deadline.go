package camctx

import (
	"context"
	"errors"
	"time"
)

// ErrDeadlineExceeded is returned by WithDeadline when the operation does
// not settle within its deadline.
var ErrDeadlineExceeded = errors.New("operation deadline exceeded")

// WithDeadline races op against a timer and returns whichever settles first.
// The losing operation is actively cancelled through its context: a slow
// call that ignores the deadline must not keep consuming resources or race
// to mutate shared state after the caller has moved on. A late result from
// the cancelled branch is discarded (the result channel is buffered, so the
// goroutine never leaks).
func WithDeadline[T any](ctx context.Context, deadline time.Duration, op func(context.Context) (T, error)) (T, error) {
	opCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}

	results := make(chan outcome, 1)
	go func() {
		value, err := op(opCtx)
		results <- outcome{value: value, err: err}
	}()

	timer := time.NewTimer(deadline)
	defer timer.Stop()

	select {
	case res := <-results:
		return res.value, res.err
	case <-timer.C:
		cancel()
		var zero T
		return zero, ErrDeadlineExceeded
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
