package spotlight

import (
	"fmt"

	"github.com/vanderheijden86/spotlight/pkg/geometry"
)

// DefaultOuterMargin is how far the overlay surface extends past every edge
// of the window. It keeps the surface covering the screen while a resize is
// still settling.
const DefaultOuterMargin = 500

// Geometry is the result of resolving an instruction against a window.
type Geometry struct {
	// Highlight is the highlighted rectangle in window coordinates, after
	// source-rect and expansion adjustments.
	Highlight geometry.Rect `json:"highlight"`
	// Cutout is Highlight in overlay-local coordinates.
	Cutout geometry.Rect `json:"cutout"`
	// Overlay is the surface's frame in window coordinates.
	Overlay geometry.Rect `json:"overlay"`
	Margin  int           `json:"margin"`
}

// ToOverlay converts a window point into overlay-local coordinates.
func (g Geometry) ToOverlay(p geometry.Point) geometry.Point {
	return p.Add(geometry.Pt(g.Margin, g.Margin))
}

// OverlayFrame returns the surface frame for a window of the given bounds.
func OverlayFrame(window geometry.Rect, margin int) geometry.Rect {
	return window.Expand(geometry.Uniform(margin))
}

// ComputeGeometry resolves the cutout for a target frame (window
// coordinates). expansion is applied as edge insets, so negative values
// grow the highlight and positive values shrink it. It fails with
// ErrTargetOutOfBounds when the adjusted rectangle is empty or does not fit
// inside window.
func ComputeGeometry(frame geometry.Rect, sourceRect *geometry.Rect, expansion geometry.Insets, window geometry.Rect, margin int) (Geometry, error) {
	highlight := frame
	if sourceRect != nil {
		highlight = geometry.Rect{
			X: frame.X + sourceRect.X,
			Y: frame.Y + sourceRect.Y,
			W: sourceRect.W,
			H: sourceRect.H,
		}
	}
	highlight = highlight.Inset(expansion)

	if highlight.W <= 0 || highlight.H <= 0 {
		return Geometry{}, fmt.Errorf("highlight %v is empty: %w", highlight, ErrTargetOutOfBounds)
	}

	if highlight.MinX() < 0 ||
		highlight.MinY() < 0 ||
		highlight.MaxX() > window.W ||
		highlight.MaxY() > window.H {
		return Geometry{}, fmt.Errorf("highlight %v outside window %v: %w", highlight, window.Size(), ErrTargetOutOfBounds)
	}

	return Geometry{
		Highlight: highlight,
		Cutout:    highlight.Offset(margin, margin),
		Overlay:   OverlayFrame(window, margin),
		Margin:    margin,
	}, nil
}

func (i Instruction) computeGeometry(window geometry.Rect, margin int) (Geometry, bool, error) {
	frame, ok := i.target.FrameInWindow()
	if !ok {
		return Geometry{}, false, nil
	}
	g, err := ComputeGeometry(frame, i.sourceRect, i.cutoutExpansion, window, margin)
	return g, true, err
}
