package geometry

// Element is a node in a retained layout tree. Frame is expressed in the
// parent's coordinate space; a window is a parentless root whose frame
// origin is the screen origin.
//
// Hosts describe what they rendered (buttons, panes, list rows) with
// Elements so the overlay can resolve an element's on-screen bounds and
// route pass-through taps back to it.
type Element struct {
	Name  string
	Frame Rect

	// SafeInsets is only meaningful on windows: the margins that overlay
	// chrome should avoid (status lines, borders).
	SafeInsets Insets

	// OnTap, when set, is invoked by hosts that dispatch a tap to this
	// element. The point is in the element's local coordinates.
	OnTap func(Point)

	parent   *Element
	children []*Element
	window   bool
}

// NewWindow returns a root element of the given size.
func NewWindow(size Size) *Element {
	return &Element{Name: "window", Frame: RectFromSize(size), window: true}
}

// NewElement returns a detached element with the given frame.
func NewElement(name string, frame Rect) *Element {
	return &Element{Name: name, Frame: frame}
}

// IsWindow reports whether e is a window root.
func (e *Element) IsWindow() bool {
	return e != nil && e.window
}

// Parent returns the element's parent, or nil.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns the element's children in back-to-front order.
func (e *Element) Children() []*Element {
	return e.children
}

// AddChild attaches c as the front-most child of e, detaching it from any
// previous parent.
func (e *Element) AddChild(c *Element) *Element {
	if c == nil || c == e {
		return e
	}
	c.RemoveFromParent()
	c.parent = e
	e.children = append(e.children, c)
	return e
}

// RemoveFromParent detaches e from its parent.
func (e *Element) RemoveFromParent() {
	p := e.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// Window returns the window root e is attached to, or nil when e is not
// part of a window's hierarchy.
func (e *Element) Window() *Element {
	for n := e; n != nil; n = n.parent {
		if n.window {
			return n
		}
	}
	return nil
}

// Bounds returns the window's own coordinate space: origin zero, frame size.
func (e *Element) Bounds() Rect {
	return RectFromSize(e.Frame.Size())
}

// SetSize resizes e in place, keeping its origin.
func (e *Element) SetSize(s Size) {
	e.Frame.W = s.W
	e.Frame.H = s.H
}

// ConvertToWindow converts r from e's local space into the coordinate space
// of e's window. ok is false when e is detached.
func (e *Element) ConvertToWindow(r Rect) (Rect, bool) {
	if e == nil {
		return Rect{}, false
	}
	for n := e; n != nil; n = n.parent {
		if n.window {
			return r, true
		}
		r = r.Offset(n.Frame.X, n.Frame.Y)
	}
	return Rect{}, false
}

// FrameInWindow returns e's frame in its window's coordinate space. A
// window's own frame in itself is its bounds. ok is false when e has no
// window ancestor.
func (e *Element) FrameInWindow() (Rect, bool) {
	if e == nil {
		return Rect{}, false
	}
	if e.window {
		return e.Bounds(), true
	}
	if e.parent == nil {
		return Rect{}, false
	}
	return e.parent.ConvertToWindow(e.Frame)
}

// HitTest returns the deepest element under p, where p is in e's local
// coordinates. Front-most children win. Returns nil when p is outside e.
func (e *Element) HitTest(p Point) *Element {
	local := e.Bounds()
	if !local.Contains(p) {
		return nil
	}
	for i := len(e.children) - 1; i >= 0; i-- {
		c := e.children[i]
		if hit := c.HitTest(p.Sub(c.Frame.Origin())); hit != nil {
			return hit
		}
	}
	return e
}

// Find returns the first descendant (depth-first, including e) named name.
func (e *Element) Find(name string) *Element {
	if e.Name == name {
		return e
	}
	for _, c := range e.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// DispatchTap hit-tests p (window coordinates when e is a window) and calls
// OnTap on the deepest element that has a handler, walking up through
// ancestors. It reports whether a handler ran.
func (e *Element) DispatchTap(p Point) bool {
	for hit := e.HitTest(p); hit != nil; hit = hit.parent {
		if hit.OnTap == nil {
			continue
		}
		frame, ok := hit.FrameInWindow()
		if !ok {
			return false
		}
		hit.OnTap(p.Sub(frame.Origin()))
		return true
	}
	return false
}
