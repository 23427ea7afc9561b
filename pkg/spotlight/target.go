package spotlight

import (
	"weak"

	"github.com/vanderheijden86/spotlight/pkg/geometry"
)

// Target locates the element an instruction highlights. Implementations
// must not keep the element alive: ok is false once the element is gone or
// no longer attached to a window, and the manager treats that as nothing to
// show.
type Target interface {
	FrameInWindow() (geometry.Rect, bool)
}

// TargetFunc adapts a function to Target.
type TargetFunc func() (geometry.Rect, bool)

// FrameInWindow calls f.
func (f TargetFunc) FrameInWindow() (geometry.Rect, bool) {
	return f()
}

type weakElement struct {
	p weak.Pointer[geometry.Element]
}

// WeakElement returns a Target that refers to e without extending its
// lifetime.
func WeakElement(e *geometry.Element) Target {
	return weakElement{p: weak.Make(e)}
}

func (w weakElement) FrameInWindow() (geometry.Rect, bool) {
	e := w.p.Value()
	if e == nil {
		return geometry.Rect{}, false
	}
	return e.FrameInWindow()
}
