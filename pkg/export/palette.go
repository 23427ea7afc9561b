package export

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Cell size in pixels. basicfont.Face7x13 fits with a pixel of leading.
const (
	CellW = 8
	CellH = 16
)

var (
	colorBackdrop  = color.RGBA{R: 40, G: 42, B: 54, A: 255}    // Dracula background
	colorElement   = color.RGBA{R: 68, G: 71, B: 90, A: 255}    // current line
	colorStroke    = color.RGBA{R: 98, G: 114, B: 164, A: 255}  // comment
	colorLabel     = color.RGBA{R: 248, G: 248, B: 242, A: 255} // foreground
	colorBubble    = color.RGBA{R: 107, G: 71, B: 217, A: 255}
	colorBubbleFg  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorHighlight = color.RGBA{R: 80, G: 250, B: 123, A: 255} // green
)

// parseColor converts a hex string, falling back to def when s is empty or
// malformed.
func parseColor(s string, def color.RGBA) color.RGBA {
	if s == "" {
		return def
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return def
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// tintColor is the tint as a non-premultiplied colour with its opacity.
func tintColor(s Snapshot) color.NRGBA {
	c := parseColor(s.Tint.Color, color.RGBA{A: 255})
	a := min(max(s.Tint.Opacity, 0), 1)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a*255 + 0.5)}
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
