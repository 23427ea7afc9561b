package spotlight

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vanderheijden86/spotlight/pkg/geometry"
)

// Tint is the overlay colour and how strongly it covers the content.
type Tint struct {
	Color   string  `yaml:"color" json:"color"`
	Opacity float64 `yaml:"opacity" json:"opacity"`
}

// DefaultTint darkens content outside the cutout.
var DefaultTint = Tint{Color: "#000000", Opacity: 0.4}

// DefaultTextColor is the colour dimmed text fades from.
const DefaultTextColor = "#F8F8F2"

// Hit is the result of dispatching a tap to a surface.
type Hit int

const (
	// HitPassThrough means the tap belongs to whatever lies under the cutout.
	HitPassThrough Hit = iota
	// HitConsumed means the surface handled (or swallowed) the tap.
	HitConsumed
)

func (h Hit) String() string {
	if h == HitPassThrough {
		return "pass-through"
	}
	return "consumed"
}

// Surface is the translucent layer covering the window (plus an outer
// margin) with a rounded cutout. Points handed to it are overlay-local.
type Surface struct {
	tint         Tint
	cornerRadius int

	frame    geometry.Rect // window coordinates
	width    int
	hasWidth bool

	cutout  geometry.Rect
	hasMask bool
	mask    Mask

	blocksTapInside bool
	alpha           float64
	fadeGen         uint64

	// OnWidthChanged fires once per distinct non-zero width after the first
	// layout.
	OnWidthChanged func()
	// OnHitInsideCutout fires for taps inside the cutout that are not
	// blocked; the tap then passes through.
	OnHitInsideCutout func()
	// OnTap receives every tap the surface consumes.
	OnTap func(geometry.Point)
}

// NewSurface returns a surface with no cutout, fully transparent.
func NewSurface(tint Tint, cornerRadius int) *Surface {
	return &Surface{tint: tint, cornerRadius: max(cornerRadius, 0)}
}

// Tint returns the overlay colour and opacity.
func (s *Surface) Tint() Tint { return s.tint }

// CornerRadius returns the requested cutout corner radius.
func (s *Surface) CornerRadius() int { return s.cornerRadius }

// Frame returns the surface frame in window coordinates.
func (s *Surface) Frame() geometry.Rect { return s.frame }

// Alpha is the current fade level, 0 (invisible) to 1.
func (s *Surface) Alpha() float64 { return s.alpha }

// SetAlpha clamps and stores the fade level.
func (s *Surface) SetAlpha(a float64) {
	s.alpha = min(max(a, 0), 1)
}

// SetBlocksTapInsideCutout controls whether cutout taps are swallowed.
func (s *Surface) SetBlocksTapInsideCutout(b bool) {
	s.blocksTapInside = b
}

// Layout sets the surface frame. A change of width after the first layout
// notifies OnWidthChanged.
func (s *Surface) Layout(frame geometry.Rect) {
	s.frame = frame
	w := frame.W
	if s.hasWidth && s.width != w && w > 0 && s.OnWidthChanged != nil {
		s.OnWidthChanged()
	}
	s.width = w
	s.hasWidth = true
}

// SetCutout replaces the cutout rectangle (overlay-local) and recomputes
// the mask.
func (s *Surface) SetCutout(r geometry.Rect) {
	s.cutout = r
	s.mask = NewMask(r, s.cornerRadius)
	s.hasMask = true
}

// Cutout returns the cutout rectangle and whether one is set.
func (s *Surface) Cutout() (geometry.Rect, bool) {
	return s.cutout, s.hasMask
}

// Mask returns the current mask.
func (s *Surface) Mask() Mask { return s.mask }

// InCutout reports whether p (overlay-local) lies inside the cutout rectangle.
func (s *Surface) InCutout(p geometry.Point) bool {
	return s.hasMask && s.cutout.Contains(p)
}

// Dispatch classifies a tap at p (overlay-local). Unblocked cutout taps
// notify OnHitInsideCutout and pass through; everything else is consumed
// and delivered to OnTap.
func (s *Surface) Dispatch(p geometry.Point) Hit {
	if s.InCutout(p) && !s.blocksTapInside {
		if s.OnHitInsideCutout != nil {
			s.OnHitInsideCutout()
		}
		return HitPassThrough
	}
	if s.OnTap != nil {
		s.OnTap(p)
	}
	return HitConsumed
}

func (s *Surface) detachObservers() {
	s.OnWidthChanged = nil
	s.OnHitInsideCutout = nil
	s.OnTap = nil
}

// RenderOptions controls Surface.Render.
type RenderOptions struct {
	Renderer  *lipgloss.Renderer
	TextColor string
	Width     int
	Height    int
}

// Render composites the surface over bg, a window-sized view. Cells inside
// the mask keep their styling; the rest are stripped and redrawn in the
// text colour blended toward the tint by the current alpha.
func (s *Surface) Render(bg string, opt RenderOptions) string {
	if s.alpha <= 0 {
		return bg
	}
	r := opt.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	dimStyle := r.NewStyle().Foreground(lipgloss.Color(s.dimColor(opt.TextColor)))
	dim := func(seg string) string {
		if seg == "" {
			return ""
		}
		return dimStyle.Render(ansi.Strip(seg))
	}

	lines := strings.Split(bg, "\n")
	out := make([]string, opt.Height)
	for y := 0; y < opt.Height; y++ {
		var line string
		if y < len(lines) {
			line = lines[y]
		}
		if w := ansi.StringWidth(line); w < opt.Width {
			line += strings.Repeat(" ", opt.Width-w)
		}

		x0, x1, ok := 0, 0, false
		if s.hasMask {
			x0, x1, ok = s.mask.Span(y - s.frame.Y)
		}
		if !ok {
			out[y] = dim(ansi.Cut(line, 0, opt.Width))
			continue
		}
		wx0 := clamp(x0+s.frame.X, 0, opt.Width)
		wx1 := clamp(x1+s.frame.X, 0, opt.Width)
		out[y] = dim(ansi.Cut(line, 0, wx0)) + ansi.Cut(line, wx0, wx1) + dim(ansi.Cut(line, wx1, opt.Width))
	}
	return strings.Join(out, "\n")
}

func (s *Surface) dimColor(text string) string {
	base, err := colorful.Hex(text)
	if err != nil {
		base, _ = colorful.Hex(DefaultTextColor)
	}
	tint, err := colorful.Hex(s.tint.Color)
	if err != nil {
		tint, _ = colorful.Hex(DefaultTint.Color)
	}
	return base.BlendRgb(tint, s.tint.Opacity*s.alpha).Clamped().Hex()
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
