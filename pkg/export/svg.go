package export

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// WriteSVG renders s as SVG. The tint is a single even-odd path so the
// cutout stays a real hole when the SVG is composited over something else.
func WriteSVG(w io.Writer, s Snapshot) error {
	if s.Window.W <= 0 || s.Window.H <= 0 {
		return fmt.Errorf("empty window %v", s.Window)
	}
	width, height := s.Window.W*CellW, s.Window.H*CellH

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title("spotlight snapshot")
	canvas.Rect(0, 0, width, height, fmt.Sprintf("fill:%s", css(colorBackdrop)))

	for _, b := range s.Elements {
		x, y, bw, bh := px(b.Frame)
		canvas.Roundrect(x, y, bw, bh, 4, 4,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(colorElement), css(colorStroke)))
		if b.Frame.W > 2 {
			canvas.Text(x+4, y+12, truncate(b.Name, b.Frame.W-1),
				fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorLabel)))
		}
	}

	tint := tintColor(s)
	canvas.Path(tintPath(s, width, height),
		fmt.Sprintf("fill:#%02x%02x%02x;fill-opacity:%.3f;fill-rule:evenodd", tint.R, tint.G, tint.B, float64(tint.A)/255))

	bg := parseColor(s.Background, colorBubble)
	fg := parseColor(s.Foreground, colorBubbleFg)
	bx, by, bw, bh := px(s.Layout.Bubble)
	canvas.Roundrect(bx, by, bw, bh, 6, 6, fmt.Sprintf("fill:%s", css(bg)))
	xs, ys := arrowTriangle(s.Layout)
	canvas.Polygon(xs, ys, fmt.Sprintf("fill:%s", css(bg)))

	textStyle := fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(fg))
	for i, line := range messageLines(s) {
		canvas.Text(bx+CellW, by+(i+1)*CellH-4, line, textStyle)
	}
	if s.NextLabel != "" && !s.Layout.Control.Empty() {
		cx, cy, _, _ := px(s.Layout.Control)
		canvas.Text(cx, cy+CellH-4, s.NextLabel,
			fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace;font-weight:bold", css(colorHighlight)))
	}

	canvas.End()
	return nil
}

// tintPath is the window rectangle with the cutout outline as a second
// subpath.
func tintPath(s Snapshot, width, height int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "M0 0 H%d V%d H0 Z", width, height)
	outline := cutoutOutline(s)
	for i, p := range outline {
		cmd := " L"
		if i == 0 {
			cmd = " M"
		}
		fmt.Fprintf(&b, "%s%d %d", cmd, p.X*CellW, p.Y*CellH)
	}
	if len(outline) > 0 {
		b.WriteString(" Z")
	}
	return b.String()
}
