// Package geometry provides the cell-grid rectangle math used by the
// spotlight overlay: expansion and inset of rectangles, containment, and
// conversion of element frames into their window's coordinate space.
//
// All values are terminal cells. Rectangles are half-open: a Rect covers
// columns [X, X+W) and rows [Y, Y+H).
package geometry

import "fmt"

// Point is a cell position.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Size is a width/height pair.
type Size struct {
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

// R is shorthand for Rect{X: x, Y: y, W: w, H: h}.
func R(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectFromSize returns a rect at the origin with the given size.
func RectFromSize(s Size) Rect {
	return Rect{W: s.W, H: s.H}
}

func (r Rect) MinX() int { return r.X }
func (r Rect) MinY() int { return r.Y }
func (r Rect) MaxX() int { return r.X + r.W }
func (r Rect) MaxY() int { return r.Y + r.H }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rect's dimensions.
func (r Rect) Size() Size { return Size{W: r.W, H: r.H} }

// Center returns the middle cell, rounding toward the origin.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// Within reports whether r lies entirely inside outer. Edges may touch.
func (r Rect) Within(outer Rect) bool {
	return r.MinX() >= outer.MinX() &&
		r.MinY() >= outer.MinY() &&
		r.MaxX() <= outer.MaxX() &&
		r.MaxY() <= outer.MaxY()
}

// Intersect returns the overlapping area of r and s, or the zero Rect.
func (r Rect) Intersect(s Rect) Rect {
	x0, y0 := max(r.MinX(), s.MinX()), max(r.MinY(), s.MinY())
	x1, y1 := min(r.MaxX(), s.MaxX()), min(r.MaxY(), s.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Expand grows r outward by the insets. Negative insets shrink it.
func (r Rect) Expand(in Insets) Rect {
	return Rect{
		X: r.X - in.Left,
		Y: r.Y - in.Top,
		W: r.W + in.Left + in.Right,
		H: r.H + in.Top + in.Bottom,
	}
}

// Inset shrinks r by the insets; the inverse of Expand.
func (r Rect) Inset(in Insets) Rect {
	return r.Expand(in.Negate())
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d %dx%d]", r.X, r.Y, r.W, r.H)
}

// Insets are per-edge distances.
type Insets struct {
	Top    int `json:"top" yaml:"top"`
	Left   int `json:"left" yaml:"left"`
	Bottom int `json:"bottom" yaml:"bottom"`
	Right  int `json:"right" yaml:"right"`
}

// Uniform returns insets of n on every edge.
func Uniform(n int) Insets {
	return Insets{Top: n, Left: n, Bottom: n, Right: n}
}

// Negate flips the sign of every edge.
func (in Insets) Negate() Insets {
	return Insets{Top: -in.Top, Left: -in.Left, Bottom: -in.Bottom, Right: -in.Right}
}

// Horizontal is Left+Right.
func (in Insets) Horizontal() int { return in.Left + in.Right }

// Vertical is Top+Bottom.
func (in Insets) Vertical() int { return in.Top + in.Bottom }
