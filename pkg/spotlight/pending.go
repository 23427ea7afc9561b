package spotlight

import (
	"context"
	"sync"
)

// Outcome is how a session ended.
type Outcome int

const (
	// OutcomeFinished: closed by a tap, the next control or Close.
	OutcomeFinished Outcome = iota
	// OutcomeUnexpected: force-closed because the target left the window
	// after a resize.
	OutcomeUnexpected
	// OutcomeSuperseded: replaced by a newer Show before finishing.
	OutcomeSuperseded
)

// Success reports whether the session finished normally.
func (o Outcome) Success() bool {
	return o == OutcomeFinished
}

// Err maps the outcome to the error a Pending resolves with.
func (o Outcome) Err() error {
	switch o {
	case OutcomeUnexpected:
		return ErrTargetOutOfBounds
	case OutcomeSuperseded:
		return ErrSuperseded
	default:
		return nil
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeFinished:
		return "finished"
	case OutcomeUnexpected:
		return "unexpected"
	case OutcomeSuperseded:
		return "superseded"
	default:
		return "unknown"
	}
}

// Pending is the one-shot result of ShowAwait. It may be waited on from any
// goroutine.
type Pending struct {
	once sync.Once
	done chan struct{}
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func (p *Pending) resolve(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}

// Done is closed once the result is available.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Err returns the result; it is only meaningful after Done is closed.
func (p *Pending) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Wait blocks until the result is available or ctx ends.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
