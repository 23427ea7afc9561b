package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/spotlight/pkg/spotlight"
)

// timerFiredMsg is delivered when a TeaScheduler timer elapses. Ids are
// only unique per scheduler, so the message carries its owner.
type timerFiredMsg struct {
	s  *TeaScheduler
	id uint64
}

type teaTimer struct {
	s   *TeaScheduler
	id  uint64
	due time.Time
	f   func()
}

// Stop implements spotlight.Timer.
func (t *teaTimer) Stop() bool {
	if _, ok := t.s.timers[t.id]; !ok {
		return false
	}
	delete(t.s.timers, t.id)
	return true
}

// TeaScheduler runs spotlight callbacks on the bubbletea Update goroutine.
// AfterFunc queues a tea.Tick; the host returns Drain() from Update and
// routes the resulting messages back through Handle.
type TeaScheduler struct {
	nextID uint64
	timers map[uint64]*teaTimer
	queued []tea.Cmd
	now    func() time.Time
}

// NewTeaScheduler returns an empty scheduler.
func NewTeaScheduler() *TeaScheduler {
	return &TeaScheduler{timers: make(map[uint64]*teaTimer), now: time.Now}
}

// AfterFunc implements spotlight.Scheduler.
func (s *TeaScheduler) AfterFunc(d time.Duration, f func()) spotlight.Timer {
	s.nextID++
	id := s.nextID
	t := &teaTimer{s: s, id: id, due: s.now().Add(d), f: f}
	s.timers[id] = t
	s.queued = append(s.queued, tea.Tick(max(d, 0), func(time.Time) tea.Msg {
		return timerFiredMsg{s: s, id: id}
	}))
	return t
}

// Drain returns the ticks queued since the last call.
func (s *TeaScheduler) Drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

// Handle runs the callback for a timer message. It reports whether msg
// belonged to the scheduler; timers fired by another scheduler are left for
// their owner.
func (s *TeaScheduler) Handle(msg tea.Msg) bool {
	fired, ok := msg.(timerFiredMsg)
	if !ok || fired.s != s {
		return false
	}
	t, live := s.timers[fired.id]
	if !live {
		return true
	}
	delete(s.timers, fired.id)
	t.f()
	return true
}

// Pending returns the number of live timers.
func (s *TeaScheduler) Pending() int {
	return len(s.timers)
}
