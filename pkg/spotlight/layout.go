package spotlight

import (
	"fmt"

	"github.com/vanderheijden86/spotlight/pkg/geometry"
)

// Direction is where the bubble sits relative to the highlight.
type Direction int

const (
	Below Direction = iota
	Above
)

func (d Direction) String() string {
	if d == Above {
		return "above"
	}
	return "below"
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "below":
		*d = Below
	case "above":
		*d = Above
	default:
		return fmt.Errorf("unknown direction %q", text)
	}
	return nil
}

// Arrow glyphs point from the bubble toward the highlight.
const (
	ArrowUp   = "▲"
	ArrowDown = "▼"
)

// Glyph returns the arrow glyph for the direction.
func (d Direction) Glyph() string {
	if d == Above {
		return ArrowDown
	}
	return ArrowUp
}

// Layout is the placed result of a session: where the cutout, bubble,
// arrow and next control are. Everything except Cutout is in window
// coordinates.
type Layout struct {
	Geometry
	Bubble    geometry.Rect  `json:"bubble"`
	Arrow     geometry.Point `json:"arrow"`
	Direction Direction      `json:"direction"`
	// Control is the next button or custom view; empty when absent.
	Control geometry.Rect `json:"control"`
}

// BubbleMaxWidth is the widest a bubble may be inside window.
func BubbleMaxWidth(window geometry.Rect, safe geometry.Insets, m BubbleMetrics) int {
	return max(window.W-safe.Horizontal()-2*m.SideMargin, 1)
}

// PlaceBubble positions a bubble of the given size around g.Highlight.
// The bubble goes below the highlight unless the room between the
// highlight's bottom edge and the window's bottom edge is smaller than the
// bubble height plus the arrow stand-off, in which case it goes above.
func PlaceBubble(g Geometry, bubble geometry.Size, window geometry.Rect, safe geometry.Insets, m BubbleMetrics) Layout {
	hl := g.Highlight
	l := Layout{Geometry: g}

	if window.H-hl.MaxY() < bubble.H+m.StandOff() {
		l.Direction = Above
		arrowY := hl.MinY() - m.ArrowMargin - m.ArrowHeight
		l.Arrow.Y = arrowY
		l.Bubble.Y = arrowY - bubble.H
	} else {
		l.Direction = Below
		arrowY := hl.MaxY() + m.ArrowMargin
		l.Arrow.Y = arrowY
		l.Bubble.Y = arrowY + m.ArrowHeight
	}
	l.Bubble.W = bubble.W
	l.Bubble.H = bubble.H

	lo := window.MinX() + safe.Left + m.SideMargin
	hi := window.MaxX() - safe.Right - m.SideMargin
	cx := hl.Center().X

	l.Bubble.X = max(min(cx-bubble.W/2, hi-bubble.W), lo)

	ax := cx
	if bubble.W > 2 {
		ax = clamp(ax, l.Bubble.MinX()+1, l.Bubble.MaxX()-2)
	}
	l.Arrow.X = clamp(ax, lo, max(hi-1, lo))
	return l
}
