// Package scheduler re-runs filtering passes when the page structure changes.
//
// Observer is a two-state machine, Idle and PendingDebounce. A structural mutation moves it
// to PendingDebounce and (re)starts the debounce timer; when the timer fires with no further
// mutation, it returns to Idle and runs one pass. Independently, one pass runs after the
// initial delay to catch content present before observation began.
//
// All callbacks run on the event loop, so no locking is needed. Timer callbacks check the
// current state and generation instead of trusting Stop.
package scheduler

import (
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/cardfilter/pkg/domain"
	"github.com/umputun/cardfilter/pkg/eventloop"
	"github.com/umputun/cardfilter/pkg/page"
)

//go:generate moq -out mocks/runner.go -pkg mocks -skip-ensure -fmt goimports . Runner

// Runner runs a filtering pass
type Runner interface {
	RunPass() domain.PassResult
}

// Clock schedules callbacks on the event loop
type Clock interface {
	AfterFunc(d time.Duration, fn func()) eventloop.Timer
}

// Source delivers structural mutations of the page
type Source interface {
	Observe(fn func(page.Mutation)) (cancel func())
}

// State of the observer
type State int

// observer states
const (
	StateIdle State = iota
	StatePendingDebounce
)

func (s State) String() string {
	if s == StatePendingDebounce {
		return "pending-debounce"
	}
	return "idle"
}

// Config holds observer timing
type Config struct {
	InitialDelay time.Duration
	Debounce     time.Duration
}

// Observer triggers debounced filtering passes on page mutations
type Observer struct {
	clock  Clock
	source Source
	runner Runner
	cfg    Config

	state    State
	gen      uint64
	debounce eventloop.Timer
	initial  eventloop.Timer
	cancel   func()
	passes   int
}

// New makes an observer. Zero timings fall back to 1s initial delay and 300ms debounce.
func New(clock Clock, source Source, runner Runner, cfg Config) *Observer {
	if cfg.InitialDelay == 0 {
		cfg.InitialDelay = time.Second
	}
	if cfg.Debounce == 0 {
		cfg.Debounce = 300 * time.Millisecond
	}
	return &Observer{clock: clock, source: source, runner: runner, cfg: cfg}
}

// Start subscribes to mutations and schedules the initial pass. Must be called on the event loop.
func (o *Observer) Start() {
	if o.cancel != nil {
		return
	}
	o.cancel = o.source.Observe(o.onMutation)
	o.initial = o.clock.AfterFunc(o.cfg.InitialDelay, func() {
		if o.cancel == nil {
			return // stopped
		}
		lgr.Printf("[DEBUG] initial pass")
		o.run()
	})
	lgr.Printf("[INFO] observer started, initial pass in %v, debounce %v", o.cfg.InitialDelay, o.cfg.Debounce)
}

// Stop unsubscribes and cancels pending timers
func (o *Observer) Stop() {
	if o.cancel == nil {
		return
	}
	o.cancel()
	o.cancel = nil
	if o.initial != nil {
		o.initial.Stop()
	}
	if o.debounce != nil {
		o.debounce.Stop()
	}
	o.gen++
	o.state = StateIdle
	lgr.Printf("[INFO] observer stopped after %d passes", o.passes)
}

// State returns the current state
func (o *Observer) State() State {
	return o.state
}

// Passes returns the number of passes run so far
func (o *Observer) Passes() int {
	return o.passes
}

// onMutation resets the debounce timer. Changes to filter-owned overlays are not content and are ignored.
func (o *Observer) onMutation(m page.Mutation) {
	if m.Overlay || o.cancel == nil {
		return
	}
	if o.debounce != nil {
		o.debounce.Stop()
	}
	o.gen++
	gen := o.gen
	o.state = StatePendingDebounce
	o.debounce = o.clock.AfterFunc(o.cfg.Debounce, func() {
		if o.gen != gen || o.state != StatePendingDebounce {
			return // superseded by a later mutation or stopped
		}
		o.state = StateIdle
		o.run()
	})
}

func (o *Observer) run() {
	o.passes++
	res := o.runner.RunPass()
	if res.Faults > 0 {
		lgr.Printf("[WARN] pass %d skipped %d faulty cards", o.passes, res.Faults)
	}
}
