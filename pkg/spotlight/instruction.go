package spotlight

import (
	"github.com/vanderheijden86/spotlight/pkg/geometry"
)

// DefaultMessageMaxWidth caps the bubble width when a Message leaves
// MaxWidth unset.
const DefaultMessageMaxWidth = 48

// DefaultCornerRadius is the cutout corner radius in cells.
const DefaultCornerRadius = 1

// Message is the instructional content of a bubble.
type Message struct {
	Text string
	// Markdown renders Text through the manager's MessageRenderer instead of
	// plain word wrapping.
	Markdown   bool
	Background string // hex, e.g. "#6B47D9"
	Foreground string // hex; empty uses the terminal default
	MaxWidth   int    // cells; 0 means DefaultMessageMaxWidth
}

func (m Message) maxWidth() int {
	if m.MaxWidth <= 0 {
		return DefaultMessageMaxWidth
	}
	return m.MaxWidth
}

// View is caller-supplied content placed inside the bubble as-is.
type View interface {
	View() string
}

// TapHandler is implemented by custom next views that want taps delivered
// to them. The point is relative to the view's top-left cell.
type TapHandler interface {
	HandleTap(geometry.Point)
}

// NextButton describes the bubble's advance control. It is either a
// SimpleNext or a CustomNext.
type NextButton interface {
	isNextButton()
}

// SimpleNext renders a minimal control with Label; activating it advances.
type SimpleNext struct {
	Label string
}

// CustomNext places a caller-owned view. The caller wires its own
// interaction and typically calls Manager.Close.
type CustomNext struct {
	View View
}

func (SimpleNext) isNextButton() {}
func (CustomNext) isNextButton() {}

// Policy controls how taps on the overlay are treated. The three flags are
// independent.
type Policy struct {
	// BlocksTapOutsideCutout ignores taps outside the cutout; the overlay
	// does not close by itself.
	BlocksTapOutsideCutout bool
	// BlocksTapInsideCutout swallows taps inside the cutout: no close, no
	// pass-through.
	BlocksTapInsideCutout bool
	// IgnoresTapInsideCutout lets taps inside the cutout reach the element
	// underneath without closing the overlay.
	IgnoresTapInsideCutout bool
}

// Preset policies matching the classic interaction styles.
var (
	// PolicyMessageOnly closes on any tap and passes cutout taps through.
	PolicyMessageOnly = Policy{}
	// PolicyNextButton behaves like PolicyMessageOnly; pair it with a next button.
	PolicyNextButton = Policy{}
	// PolicyBlocksOutside only reacts to taps inside the cutout.
	PolicyBlocksOutside = Policy{BlocksTapOutsideCutout: true}
)

// Instruction describes one highlight step. Build it with NewInstruction;
// it is immutable afterwards.
type Instruction struct {
	target          Target
	message         Message
	next            NextButton
	sourceRect      *geometry.Rect
	cutoutExpansion geometry.Insets
	cornerRadius    int
	policy          Policy
}

// InstructionOption configures an Instruction.
type InstructionOption func(*Instruction)

// WithNextButton adds an advance control to the bubble.
func WithNextButton(b NextButton) InstructionOption {
	return func(i *Instruction) {
		i.next = b
	}
}

// WithSourceRect highlights only r, given in the target's local coordinates.
func WithSourceRect(r geometry.Rect) InstructionOption {
	return func(i *Instruction) {
		i.sourceRect = &r
	}
}

// WithCutoutExpansion insets the cutout by in: negative values grow it past
// the target, positive values shrink it.
func WithCutoutExpansion(in geometry.Insets) InstructionOption {
	return func(i *Instruction) {
		i.cutoutExpansion = in
	}
}

// WithCornerRadius sets the cutout corner radius in cells.
func WithCornerRadius(r int) InstructionOption {
	return func(i *Instruction) {
		i.cornerRadius = max(r, 0)
	}
}

// WithPolicy sets the tap policy.
func WithPolicy(p Policy) InstructionOption {
	return func(i *Instruction) {
		i.policy = p
	}
}

// NewInstruction builds an instruction highlighting target.
//
// It panics when a SimpleNext button is combined with
// BlocksTapOutsideCutout: the default next control must not be the only way
// out while every other tap is blocked. That is a programming error, not a
// runtime condition.
func NewInstruction(target Target, msg Message, opts ...InstructionOption) Instruction {
	i := Instruction{
		target:       target,
		message:      msg,
		cornerRadius: DefaultCornerRadius,
	}
	for _, opt := range opts {
		opt(&i)
	}
	if _, simple := i.next.(SimpleNext); simple && i.policy.BlocksTapOutsideCutout {
		panic("spotlight: BlocksTapOutsideCutout must be false with a SimpleNext button")
	}
	if target == nil {
		panic("spotlight: instruction target must not be nil")
	}
	return i
}

func (i Instruction) Target() Target { return i.target }
func (i Instruction) Message() Message { return i.message }
func (i Instruction) NextButton() NextButton { return i.next }
func (i Instruction) Policy() Policy { return i.policy }
func (i Instruction) CornerRadius() int { return i.cornerRadius }
func (i Instruction) Expansion() geometry.Insets { return i.cutoutExpansion }

// SourceRect returns the highlighted sub-rectangle, if any.
func (i Instruction) SourceRect() (geometry.Rect, bool) {
	if i.sourceRect == nil {
		return geometry.Rect{}, false
	}
	return *i.sourceRect, true
}
