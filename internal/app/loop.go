// ABOUTME: Single-goroutine event loop that runs controller handlers one at a time.
// ABOUTME: Hosts with concurrent input post work here instead of calling the controller directly.
package app

import (
	"context"
	"errors"
)

// ErrLoopStopped is returned when work is posted to a loop that has exited.
var ErrLoopStopped = errors.New("event loop stopped")

type job struct {
	fn   func()
	done chan struct{}
}

// Loop runs posted functions sequentially, each to completion.
type Loop struct {
	jobs    chan job
	stopped chan struct{}
}

// NewLoop creates a loop with the given queue size.
func NewLoop(queue int) *Loop {
	return &Loop{
		jobs:    make(chan job, queue),
		stopped: make(chan struct{}),
	}
}

// Run processes jobs until ctx is canceled. It must be called once.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.stopped)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case j := <-l.jobs:
			j.fn()
			if j.done != nil {
				close(j.done)
			}
		}
	}
}

// Post enqueues fn without waiting for it to run.
func (l *Loop) Post(ctx context.Context, fn func()) error {
	return l.enqueue(ctx, job{fn: fn})
}

// Do enqueues fn and waits until it has run.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	j := job{fn: fn, done: make(chan struct{})}
	if err := l.enqueue(ctx, j); err != nil {
		return err
	}
	select {
	case <-j.done:
		return nil
	case <-l.stopped:
		// The job may have been the last one run.
		select {
		case <-j.done:
			return nil
		default:
			return ErrLoopStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loop) enqueue(ctx context.Context, j job) error {
	select {
	case <-l.stopped:
		return ErrLoopStopped
	default:
	}
	select {
	case l.jobs <- j:
		return nil
	case <-l.stopped:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}
