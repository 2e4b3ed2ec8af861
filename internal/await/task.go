// Package await turns host computations running on other goroutines into
// promises settled on the agent's engine goroutine.
package await

import (
	"context"
)

// Result is the outcome of a host computation delivered over a channel.
type Result struct {
	Value any
	Err   error
}

// Task is a handle to a host computation started with Go or GoVoid.
type Task struct {
	done   chan struct{}
	void   bool
	result any
	err    error
}

// Go runs fn on a new goroutine.
func Go(ctx context.Context, fn func(context.Context) (any, error)) *Task {
	return start(ctx, fn, false)
}

// GoVoid runs fn on a new goroutine. The task settles with no value.
func GoVoid(ctx context.Context, fn func(context.Context) error) *Task {
	return start(ctx, func(ctx context.Context) (any, error) {
		return nil, fn(ctx)
	}, true)
}

func start(ctx context.Context, fn func(context.Context) (any, error), void bool) *Task {
	t := &Task{done: make(chan struct{}), void: void}
	go func() {
		defer close(t.done)
		t.result, t.err = fn(ctx)
	}()
	return t
}

// Done is closed once the computation has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Result blocks until the computation finishes and returns its outcome.
func (t *Task) Result() (any, error) {
	<-t.done
	return t.result, t.err
}

// IsVoid reports whether the task was started with GoVoid.
func (t *Task) IsVoid() bool {
	return t.void
}
