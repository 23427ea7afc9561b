package export

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"
)

func drawPNG(s Snapshot) (*gg.Context, error) {
	if s.Window.W <= 0 || s.Window.H <= 0 {
		return nil, fmt.Errorf("empty window %v", s.Window)
	}
	dc := gg.NewContext(s.Window.W*CellW, s.Window.H*CellH)
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	for _, b := range s.Elements {
		x, y, w, h := px(b.Frame)
		dc.SetColor(colorElement)
		dc.DrawRoundedRectangle(float64(x), float64(y), float64(w), float64(h), 4)
		dc.Fill()
		dc.SetColor(colorStroke)
		dc.SetLineWidth(1)
		dc.DrawRoundedRectangle(float64(x), float64(y), float64(w), float64(h), 4)
		dc.Stroke()
		if b.Frame.W > 2 {
			dc.SetColor(colorLabel)
			dc.DrawStringAnchored(truncate(b.Name, b.Frame.W-1), float64(x+4), float64(y+CellH/2), 0, 0.5)
		}
	}

	dc.SetColor(tintColor(s))
	for _, r := range tintRects(s) {
		x, y, w, h := px(r)
		dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
		dc.Fill()
	}

	bg := parseColor(s.Background, colorBubble)
	fg := parseColor(s.Foreground, colorBubbleFg)
	bx, by, bw, bh := px(s.Layout.Bubble)
	dc.SetColor(bg)
	dc.DrawRoundedRectangle(float64(bx), float64(by), float64(bw), float64(bh), 6)
	dc.Fill()

	xs, ys := arrowTriangle(s.Layout)
	dc.NewSubPath()
	dc.MoveTo(float64(xs[0]), float64(ys[0]))
	dc.LineTo(float64(xs[1]), float64(ys[1]))
	dc.LineTo(float64(xs[2]), float64(ys[2]))
	dc.ClosePath()
	dc.Fill()

	dc.SetColor(fg)
	for i, line := range messageLines(s) {
		dc.DrawStringAnchored(line, float64(bx+CellW), float64(by+i*CellH+CellH/2), 0, 0.5)
	}
	if s.NextLabel != "" && !s.Layout.Control.Empty() {
		cx, cy, _, _ := px(s.Layout.Control)
		dc.SetColor(colorHighlight)
		dc.DrawStringAnchored(s.NextLabel, float64(cx), float64(cy+CellH/2), 0, 0.5)
	}
	return dc, nil
}

// WritePNG renders s as a PNG image.
func WritePNG(w io.Writer, s Snapshot) error {
	img, err := Image(s)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Image renders s into an in-memory image.
func Image(s Snapshot) (image.Image, error) {
	dc, err := drawPNG(s)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}
