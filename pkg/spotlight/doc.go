// Package spotlight is the overlay engine behind on-screen onboarding: it
// dims the window except for a cutout around a target element, shows a
// message bubble with an arrow pointing at it, and reports once when the
// user taps through, presses next, or the caller closes it.
//
// The engine is host-agnostic. A host supplies the window as a
// geometry.Element tree, a Scheduler that runs deferred callbacks on the
// host's event goroutine, and forwards taps and resizes:
//
//	m := spotlight.NewManager(sched)
//	instr := spotlight.NewInstruction(spotlight.WeakElement(button),
//	    spotlight.Message{Text: "Press here to sync"},
//	    spotlight.WithNextButton(spotlight.SimpleNext{Label: "Next"}))
//	if err := m.Show(instr, window, func(o spotlight.Outcome) {
//	    // chain the next step here
//	}); err != nil {
//	    // errors.Is(err, spotlight.ErrTargetOutOfBounds)
//	}
//
// Package ui provides the bubbletea host.
package spotlight
