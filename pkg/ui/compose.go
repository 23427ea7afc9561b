package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// PlaceAt draws fg over bg with fg's top-left cell at (x, y). bg is treated
// as a width×height canvas: short lines are padded and the result is clipped
// to the canvas. Styling on both sides is kept.
func PlaceAt(bg, fg string, x, y, width, height int) string {
	lines := canvas(bg, width, height)
	for i, fgLine := range strings.Split(fg, "\n") {
		row := y + i
		if row < 0 || row >= height {
			continue
		}
		w := ansi.StringWidth(fgLine)
		start, end := max(x, 0), min(x+w, width)
		if start >= end {
			continue
		}
		seg := ansi.Cut(fgLine, start-x, end-x)
		line := lines[row]
		lines[row] = ansi.Cut(line, 0, start) + seg + ansi.Cut(line, end, width)
	}
	return strings.Join(lines, "\n")
}

func canvas(s string, width, height int) []string {
	src := strings.Split(s, "\n")
	lines := make([]string, height)
	for i := range lines {
		var line string
		if i < len(src) {
			line = ansi.Truncate(src[i], width, "")
		}
		if w := ansi.StringWidth(line); w < width {
			line += strings.Repeat(" ", width-w)
		}
		lines[i] = line
	}
	return lines
}
