// Package eventloop provides the single cooperative thread every engine callback runs on.
// Pointer events, mutation notifications and timer callbacks are all queued as tasks and
// executed one at a time by Run, so engine state is never touched concurrently.
package eventloop

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

// ErrStopped is returned by Do when the loop is no longer running
var ErrStopped = errors.New("event loop stopped")

// Timer is a cancelable scheduled callback
type Timer interface {
	// Stop prevents the callback from running. It returns false if the callback already ran
	// or was already stopped. Must be called from the loop.
	Stop() bool
}

// Loop is a task queue drained by a single goroutine
type Loop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

// New makes a loop with the given task queue capacity
func New(capacity int) *Loop {
	if capacity <= 0 {
		capacity = 256
	}
	return &Loop{tasks: make(chan func(), capacity), done: make(chan struct{})}
}

// Run executes queued tasks until ctx is canceled
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.done) })
	lgr.Printf("[DEBUG] event loop started")
	for {
		select {
		case <-ctx.Done():
			lgr.Printf("[DEBUG] event loop stopped")
			return ctx.Err()
		case fn := <-l.tasks:
			l.exec(fn)
		}
	}
}

// Post queues fn for execution on the loop. Returns false if the loop is stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do runs fn on the loop and waits for it to finish
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrStopped
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return fmt.Errorf("wait for loop task: %w", ctx.Err())
	}
}

// AfterFunc schedules fn to run on the loop after d
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			// stop may have been called after the timer fired but before this task ran
			if t.stopped {
				return
			}
			t.fired = true
			fn()
		})
	})
	return t
}

// exec runs a single task, containing panics so one faulty callback can't stop the loop
func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[WARN] event loop task panic: %v\n%s", r, debug.Stack())
		}
	}()
	fn()
}

type loopTimer struct {
	timer   *time.Timer
	stopped bool
	fired   bool
}

func (t *loopTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.timer.Stop()
	return true
}
