package metrics

import "sync/atomic"

// Counter is a monotonically increasing event count.
type Counter struct {
	name string
	n    atomic.Int64
}

func newCounter(name string) *Counter {
	return &Counter{name: name}
}

// Inc adds one.
func (c *Counter) Inc() {
	if !enabled {
		return
	}
	c.n.Add(1)
}

// Name returns the counter name.
func (c *Counter) Name() string { return c.name }

// Value returns the current count.
func (c *Counter) Value() int64 { return c.n.Load() }

// Reset sets the count to zero.
func (c *Counter) Reset() { c.n.Store(0) }

// Session outcome counters.
var (
	SessionsShown      = newCounter("sessions_shown")
	SessionsFinished   = newCounter("sessions_finished")
	SessionsUnexpected = newCounter("sessions_unexpected")
	SessionsSuperseded = newCounter("sessions_superseded")
	OutOfBounds        = newCounter("out_of_bounds")
	Recomputes         = newCounter("recomputes")
)

// AllCounters returns all registered counters.
func AllCounters() []*Counter {
	return []*Counter{
		SessionsShown,
		SessionsFinished,
		SessionsUnexpected,
		SessionsSuperseded,
		OutOfBounds,
		Recomputes,
	}
}

// CounterValues returns a name → value snapshot.
func CounterValues() map[string]int64 {
	out := make(map[string]int64, len(AllCounters()))
	for _, c := range AllCounters() {
		out[c.name] = c.Value()
	}
	return out
}
