package spotlight

import "time"

// Scheduler runs deferred callbacks. Implementations must invoke f on the
// same goroutine that drives the Manager.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending deferred callback.
type Timer interface {
	// Stop cancels the callback; it reports whether it was still pending.
	Stop() bool
}

// Fader animates a surface's alpha. done, when non-nil, runs once the
// target alpha is reached; it does not run if the fade is superseded by a
// later Fade on the same surface.
type Fader interface {
	Fade(s *Surface, to float64, d time.Duration, done func())
}

// DefaultFadeSteps is the frame count StepFader uses when Steps is zero.
const DefaultFadeSteps = 6

// StepFader fades by scheduling evenly spaced alpha updates.
type StepFader struct {
	Scheduler Scheduler
	Steps     int
}

// Fade implements Fader.
func (f StepFader) Fade(s *Surface, to float64, d time.Duration, done func()) {
	s.fadeGen++
	gen := s.fadeGen

	steps := f.Steps
	if steps <= 0 {
		steps = DefaultFadeSteps
	}
	if d <= 0 || f.Scheduler == nil {
		s.SetAlpha(to)
		if done != nil {
			done()
		}
		return
	}

	from := s.Alpha()
	for i := 1; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		last := i == steps
		f.Scheduler.AfterFunc(time.Duration(float64(d)*frac), func() {
			if s.fadeGen != gen {
				return
			}
			s.SetAlpha(from + (to-from)*frac)
			if last && done != nil {
				done()
			}
		})
	}
}

// InstantFader applies the target alpha immediately.
type InstantFader struct{}

// Fade implements Fader.
func (InstantFader) Fade(s *Surface, to float64, _ time.Duration, done func()) {
	s.fadeGen++
	s.SetAlpha(to)
	if done != nil {
		done()
	}
}
