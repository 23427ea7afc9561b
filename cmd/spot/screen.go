package main

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/spotlight/pkg/geometry"
	"github.com/vanderheijden86/spotlight/pkg/ui"
)

const listRows = 5

// screen is the demo app the tour walks through: a header with three
// buttons, a list of rows and a status footer. Elements are created once
// and re-framed on resize so instructions keep pointing at them.
type screen struct {
	window   *geometry.Element
	header   *geometry.Element
	hello    *geometry.Element
	tap      *geometry.Element
	settings *geometry.Element
	list     *geometry.Element
	rows     []*geometry.Element
	footer   *geometry.Element

	theme  ui.Theme
	status string
	taps   int
}

func newScreen(theme ui.Theme, w, h int) *screen {
	s := &screen{
		window:   geometry.NewWindow(geometry.Size{W: w, H: h}),
		header:   geometry.NewElement("header", geometry.Rect{}),
		hello:    geometry.NewElement("hello", geometry.Rect{}),
		tap:      geometry.NewElement("tap", geometry.Rect{}),
		settings: geometry.NewElement("settings", geometry.Rect{}),
		list:     geometry.NewElement("list", geometry.Rect{}),
		footer:   geometry.NewElement("footer", geometry.Rect{}),
		theme:    theme,
		status:   "ready",
	}
	s.window.SafeInsets = geometry.Insets{Bottom: 1}

	s.header.AddChild(s.hello)
	s.header.AddChild(s.tap)
	s.header.AddChild(s.settings)
	s.window.AddChild(s.header)
	s.window.AddChild(s.list)
	for i := range listRows {
		row := geometry.NewElement(fmt.Sprintf("row-%d", i), geometry.Rect{})
		s.list.AddChild(row)
		s.rows = append(s.rows, row)
	}
	s.window.AddChild(s.footer)

	s.hello.OnTap = func(geometry.Point) { s.status = "hello!" }
	s.tap.OnTap = func(geometry.Point) {
		s.taps++
		s.status = fmt.Sprintf("tapped %d times", s.taps)
	}
	s.settings.OnTap = func(geometry.Point) { s.status = "settings are not part of the demo" }
	for i, row := range s.rows {
		row.OnTap = func(geometry.Point) { s.status = fmt.Sprintf("opened row %d", i) }
	}

	s.layout()
	return s
}

// resize applies a new window size and re-frames every element.
func (s *screen) resize(w, h int) {
	s.window.SetSize(geometry.Size{W: w, H: h})
	s.layout()
}

func (s *screen) layout() {
	w, h := s.window.Frame.W, s.window.Frame.H
	s.header.Frame = geometry.R(0, 0, w, 3)
	s.hello.Frame = geometry.R(2, 1, 9, 1)
	s.tap.Frame = geometry.R(13, 1, 10, 1)
	s.settings.Frame = geometry.R(max(w-14, 25), 1, 12, 1)
	s.list.Frame = geometry.R(0, 3, w, max(h-4, 0))
	for i, row := range s.rows {
		row.Frame = geometry.R(2, 1+i*2, max(w-4, 0), 1)
	}
	s.footer.Frame = geometry.R(0, max(h-1, 0), w, 1)
}

// View draws the screen at the window size.
func (s *screen) View() string {
	w, h := s.window.Frame.W, s.window.Frame.H
	if w <= 0 || h <= 0 {
		return ""
	}
	blank := strings.Repeat(" ", w)
	lines := make([]string, h)
	for i := range lines {
		lines[i] = blank
	}
	out := strings.Join(lines, "\n")

	title := s.theme.Header.Width(w).Render("spot")
	out = ui.PlaceAt(out, title, 0, 0, w, h)

	for _, b := range []struct {
		el    *geometry.Element
		label string
	}{
		{s.hello, "[ Hello ]"},
		{s.tap, "[ Tap me ]"},
		{s.settings, "[ Settings ]"},
	} {
		r, ok := b.el.FrameInWindow()
		if !ok {
			continue
		}
		out = ui.PlaceAt(out, s.theme.Button.Render(b.label), r.X, r.Y, w, h)
	}

	for i, row := range s.rows {
		r, ok := row.FrameInWindow()
		if !ok || r.MaxY() >= h-1 {
			continue
		}
		text := s.theme.Base.Width(r.W).MaxWidth(r.W).Render(fmt.Sprintf("• item %d", i+1))
		out = ui.PlaceAt(out, text, r.X, r.Y, w, h)
	}

	if r, ok := s.footer.FrameInWindow(); ok {
		out = ui.PlaceAt(out, s.theme.Footer.Width(w).MaxWidth(w).Render(s.status), r.X, r.Y, w, h)
	}
	return out
}
