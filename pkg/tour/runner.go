package tour

import (
	"errors"
	"fmt"

	"github.com/vanderheijden86/spotlight/pkg/debug"
	"github.com/vanderheijden86/spotlight/pkg/geometry"
	"github.com/vanderheijden86/spotlight/pkg/spotlight"
)

var (
	// ErrStopped is reported when a running tour is stopped by its caller.
	ErrStopped = errors.New("tour stopped")

	// ErrNothingToShow is reported for a step the presenter could not show
	// at all: the root is not in a window or the target is gone.
	ErrNothingToShow = errors.New("nothing to show")
)

// Presenter shows one instruction at a time. ui.Overlay implements it.
// started is false when nothing was shown; onFinish then never runs.
type Presenter interface {
	Present(instr spotlight.Instruction, onFinish func(spotlight.Outcome)) (started bool, err error)
}

// Runner walks a tour, starting each step from the previous step's
// completion. It is not safe for concurrent use; like the manager it runs
// on the host's event goroutine.
type Runner struct {
	tour *Tour
	root *geometry.Element
	p    Presenter

	index   int
	running bool
	gen     uint64

	// OnStep, when set, is called as each step is shown.
	OnStep func(index int, step Step)
	// OnDone, when set, is called once when the tour ends: nil after the
	// last step, otherwise the reason it stopped early.
	OnDone func(err error)
}

// NewRunner returns a runner for t over root's element tree.
func NewRunner(t *Tour, root *geometry.Element, p Presenter) *Runner {
	return &Runner{tour: t, root: root, p: p, index: -1}
}

// Start shows the first step. Starting a running tour restarts it.
func (r *Runner) Start() {
	r.gen++
	r.index = -1
	r.running = true
	r.advance()
}

// Running reports whether the tour is in progress.
func (r *Runner) Running() bool { return r.running }

// Index is the current step, or -1 before the tour starts.
func (r *Runner) Index() int { return r.index }

// Len is the number of steps.
func (r *Runner) Len() int { return len(r.tour.Steps) }

// Stop ends the tour; the step on screen stays until it is closed, but its
// completion no longer advances the tour.
func (r *Runner) Stop() {
	if r.running {
		r.finish(ErrStopped)
	}
}

func (r *Runner) advance() {
	for r.running {
		r.index++
		if r.index >= len(r.tour.Steps) {
			r.finish(nil)
			return
		}
		step := r.tour.Steps[r.index]
		err := r.present(r.index, step)
		if err == nil {
			return
		}
		if step.Optional {
			debug.Log("tour %s: skipping optional step %d: %v", r.tour.Name, r.index+1, err)
			continue
		}
		r.finish(fmt.Errorf("step %d (%s): %w", r.index+1, step.Target, err))
	}
}

func (r *Runner) present(index int, step Step) error {
	instr, err := step.Instruction(r.root)
	if err != nil {
		return err
	}
	gen := r.gen
	started, err := r.p.Present(instr, func(o spotlight.Outcome) { r.stepFinished(gen, index, o) })
	if err != nil {
		return err
	}
	if !started {
		return ErrNothingToShow
	}
	if r.OnStep != nil {
		r.OnStep(index, step)
	}
	return nil
}

func (r *Runner) stepFinished(gen uint64, index int, o spotlight.Outcome) {
	if !r.running || gen != r.gen || index != r.index {
		return
	}
	switch o {
	case spotlight.OutcomeFinished:
		r.advance()
	default:
		r.finish(fmt.Errorf("step %d (%s): %w", index+1, r.tour.Steps[index].Target, o.Err()))
	}
}

func (r *Runner) finish(err error) {
	r.running = false
	debug.Log("tour %s finished after step %d: %v", r.tour.Name, r.index+1, err)
	if r.OnDone != nil {
		r.OnDone(err)
	}
}
