package spotlight

import "github.com/vanderheijden86/spotlight/pkg/geometry"

// Mask describes which overlay cells are transparent: the cutout rectangle
// with its corners rounded off. It is a pure value; recomputing it for the
// same rectangle and radius yields an identical mask.
type Mask struct {
	cutout geometry.Rect
	radius int
}

// NewMask builds the mask for cutout. The radius is clamped so that every
// row of the cutout keeps at least one transparent cell; a one-row cutout is
// never rounded.
func NewMask(cutout geometry.Rect, radius int) Mask {
	radius = max(radius, 0)
	radius = min(radius, (cutout.H-1)/2, (cutout.W-1)/2)
	return Mask{cutout: cutout, radius: max(radius, 0)}
}

// Cutout returns the unrounded cutout rectangle.
func (m Mask) Cutout() geometry.Rect { return m.cutout }

// Radius returns the effective corner radius.
func (m Mask) Radius() int { return m.radius }

// Span returns the transparent columns [x0, x1) of row y. ok is false when
// the row is entirely tinted.
func (m Mask) Span(y int) (x0, x1 int, ok bool) {
	c := m.cutout
	if c.Empty() || y < c.MinY() || y >= c.MaxY() {
		return 0, 0, false
	}
	d := min(y-c.MinY(), c.MaxY()-1-y)
	inset := 0
	if d < m.radius {
		inset = m.radius - d
	}
	return c.MinX() + inset, c.MaxX() - inset, true
}

// Transparent reports whether the cell at p shows the content underneath.
func (m Mask) Transparent(p geometry.Point) bool {
	x0, x1, ok := m.Span(p.Y)
	return ok && p.X >= x0 && p.X < x1
}
