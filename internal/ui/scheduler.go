package ui

import (
	"sort"
	"sync"
	"time"
)

// Timer is the cancellation hook of a scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the
	// call stopped it, false if it already ran or was stopped.
	Stop() bool
}

// Scheduler runs a callback after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealScheduler schedules on the wall clock via time.AfterFunc.
type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualScheduler only runs callbacks when Advance moves its clock past
// their deadline. Use it wherever a delayed transition must fire
// deterministically.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	pending []*manualTimer
}

type manualTimer struct {
	s       *ManualScheduler
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// AfterFunc registers f to run once the clock has advanced by d.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &manualTimer{s: s, at: s.now + d, f: f}
	s.pending = append(s.pending, t)
	return t
}

// Advance moves the clock forward by d and runs, in deadline order,
// every callback that became due. Callbacks run without the scheduler
// lock held, so they may schedule again.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d

	var due []*manualTimer
	rest := s.pending[:0]
	for _, t := range s.pending {
		switch {
		case t.stopped:
		case t.at <= s.now:
			t.fired = true
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	s.pending = rest
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

// Pending reports how many callbacks are waiting to run.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}
