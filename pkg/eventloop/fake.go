package eventloop

import (
	"sort"
	"time"
)

// Fake is a virtual-time scheduler for tests. Callbacks run synchronously inside Advance,
// in deadline order, on the calling goroutine.
type Fake struct {
	now    time.Duration
	seq    int
	timers []*fakeTimer
}

// NewFake makes a fake scheduler at virtual time zero
func NewFake() *Fake {
	return &Fake{}
}

// AfterFunc schedules fn at now+d
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.seq++
	t := &fakeTimer{at: f.now + d, seq: f.seq, fn: fn}
	f.timers = append(f.timers, t)
	return t
}

// Advance moves virtual time forward, firing every timer due on the way,
// including timers scheduled by callbacks within the window
func (f *Fake) Advance(d time.Duration) {
	target := f.now + d
	for {
		next := f.nextDue(target)
		if next == nil {
			break
		}
		f.now = next.at
		next.fired = true
		next.fn()
	}
	f.now = target
}

// Elapsed returns the virtual time passed since creation
func (f *Fake) Elapsed() time.Duration {
	return f.now
}

// Pending returns the number of timers neither fired nor stopped
func (f *Fake) Pending() int {
	count := 0
	for _, t := range f.timers {
		if !t.fired && !t.stopped {
			count++
		}
	}
	return count
}

func (f *Fake) nextDue(limit time.Duration) *fakeTimer {
	live := f.timers[:0]
	for _, t := range f.timers {
		if !t.fired && !t.stopped {
			live = append(live, t)
		}
	}
	f.timers = live
	sort.SliceStable(f.timers, func(i, j int) bool {
		if f.timers[i].at == f.timers[j].at {
			return f.timers[i].seq < f.timers[j].seq
		}
		return f.timers[i].at < f.timers[j].at
	})
	if len(f.timers) == 0 || f.timers[0].at > limit {
		return nil
	}
	return f.timers[0]
}

type fakeTimer struct {
	at      time.Duration
	seq     int
	fn      func()
	fired   bool
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
