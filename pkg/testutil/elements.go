package testutil

import (
	"testing"

	"github.com/vanderheijden86/spotlight/pkg/geometry"
)

// Screen is a window with a few named elements, sized like the fixtures the
// overlay tests place bubbles against.
type Screen struct {
	Window *geometry.Element
	Header *geometry.Element
	Button *geometry.Element
	Footer *geometry.Element
}

// NewScreen builds a w×h window holding a header pane, a button inside it
// at (bx, by) of size bw×bh, and a one-row footer.
func NewScreen(w, h, bx, by, bw, bh int) *Screen {
	win := geometry.NewWindow(geometry.Size{W: w, H: h})
	header := geometry.NewElement("header", geometry.R(0, 0, w, h-1))
	button := geometry.NewElement("button", geometry.R(bx, by, bw, bh))
	footer := geometry.NewElement("footer", geometry.R(0, h-1, w, 1))
	header.AddChild(button)
	win.AddChild(header)
	win.AddChild(footer)
	return &Screen{Window: win, Header: header, Button: button, Footer: footer}
}

// Resize changes the window size.
func (s *Screen) Resize(w, h int) {
	s.Window.SetSize(geometry.Size{W: w, H: h})
}

// AssertRect fails the test when got differs from want.
func AssertRect(t *testing.T, what string, got, want geometry.Rect) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}

// Recorder collects session outcomes in the order they were reported.
type Recorder[T any] struct {
	Got []T
}

// Record appends v.
func (r *Recorder[T]) Record(v T) {
	r.Got = append(r.Got, v)
}

// AssertCount fails the test when the number of recorded values is not n.
func (r *Recorder[T]) AssertCount(t *testing.T, n int) {
	t.Helper()
	if len(r.Got) != n {
		t.Fatalf("recorded %d values (%v), want %d", len(r.Got), r.Got, n)
	}
}
