package testutil

import (
	"sort"
	"time"

	"github.com/vanderheijden86/spotlight/pkg/spotlight"
)

// FakeScheduler is a manual clock for driving a spotlight.Manager in tests.
// Callbacks only run from Advance, in due-time order; callbacks due at the
// same instant run in the order they were scheduled.
type FakeScheduler struct {
	now    time.Duration
	seq    uint64
	timers []*fakeTimer
}

type fakeTimer struct {
	s       *FakeScheduler
	at      time.Duration
	seq     uint64
	f       func()
	stopped bool
	fired   bool
}

// Stop implements spotlight.Timer.
func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewFakeScheduler returns a scheduler at time zero.
func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{}
}

// AfterFunc implements spotlight.Scheduler.
func (s *FakeScheduler) AfterFunc(d time.Duration, f func()) spotlight.Timer {
	s.seq++
	t := &fakeTimer{s: s, at: s.now + max(d, 0), seq: s.seq, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Now returns the elapsed fake time.
func (s *FakeScheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of callbacks that have not run or been stopped.
func (s *FakeScheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, running every callback that falls
// due, including ones scheduled by callbacks during the advance.
func (s *FakeScheduler) Advance(d time.Duration) {
	end := s.now + max(d, 0)
	for {
		t := s.next(end)
		if t == nil {
			break
		}
		s.now = t.at
		t.fired = true
		t.f()
	}
	s.now = end
	s.compact()
}

// Flush runs every pending callback regardless of its due time.
func (s *FakeScheduler) Flush() {
	for s.Pending() > 0 {
		var latest time.Duration
		for _, t := range s.timers {
			if !t.stopped && !t.fired && t.at > latest {
				latest = t.at
			}
		}
		s.Advance(latest - s.now)
	}
}

func (s *FakeScheduler) next(end time.Duration) *fakeTimer {
	var due []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= end {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}

func (s *FakeScheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	s.timers = live
}
