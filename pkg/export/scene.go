package export

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/vanderheijden86/spotlight/pkg/geometry"
	"github.com/vanderheijden86/spotlight/pkg/spotlight"
)

// tintRects covers every window cell outside the cutout with row-wise
// rectangles, in cells.
func tintRects(s Snapshot) []geometry.Rect {
	mask := s.Mask()
	w, h := s.Window.W, s.Window.H
	var out []geometry.Rect
	for y := 0; y < h; y++ {
		x0, x1, ok := mask.Span(y)
		if !ok {
			// Merge runs of fully tinted rows.
			if n := len(out); n > 0 && out[n-1].X == 0 && out[n-1].W == w && out[n-1].MaxY() == y {
				out[n-1].H++
				continue
			}
			out = append(out, geometry.R(0, y, w, 1))
			continue
		}
		x0, x1 = max(x0, 0), min(x1, w)
		if x0 > 0 {
			out = append(out, geometry.R(0, y, x0, 1))
		}
		if x1 < w {
			out = append(out, geometry.R(x1, y, w-x1, 1))
		}
	}
	return out
}

// cutoutOutline is the stair-stepped outline of the rounded cutout in cell
// corners: down the right edge, then back up the left edge.
func cutoutOutline(s Snapshot) []geometry.Point {
	mask := s.Mask()
	c := mask.Cutout()
	var right, left []geometry.Point
	for y := c.MinY(); y < c.MaxY(); y++ {
		x0, x1, ok := mask.Span(y)
		if !ok {
			continue
		}
		right = append(right, geometry.Pt(x1, y), geometry.Pt(x1, y+1))
		left = append(left, geometry.Pt(x0, y), geometry.Pt(x0, y+1))
	}
	out := right
	for i := len(left) - 1; i >= 0; i-- {
		out = append(out, left[i])
	}
	return out
}

// messageLines wraps the message to the bubble interior, leaving the last
// row free for the next control when there is one.
func messageLines(s Snapshot) []string {
	b := s.Layout.Bubble
	width := max(b.W-2, 1)
	rows := b.H
	if !s.Layout.Control.Empty() {
		rows -= s.Layout.Control.H
	}
	if rows <= 0 {
		return nil
	}
	lines := strings.Split(wordwrap.String(s.Message, width), "\n")
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for i, l := range lines {
		lines[i] = truncate(strings.TrimRight(l, " "), width)
	}
	return lines
}

// arrowTriangle returns the arrow cell's triangle in pixels, apex toward
// the highlight.
func arrowTriangle(l spotlight.Layout) (xs, ys []int) {
	x := l.Arrow.X * CellW
	y := l.Arrow.Y * CellH
	if l.Direction == spotlight.Above {
		return []int{x, x + CellW, x + CellW/2}, []int{y + 2, y + 2, y + CellH - 2}
	}
	return []int{x + CellW/2, x + CellW, x}, []int{y + 2, y + CellH - 2, y + CellH - 2}
}

func px(r geometry.Rect) (x, y, w, h int) {
	return r.X * CellW, r.Y * CellH, r.W * CellW, r.H * CellH
}
