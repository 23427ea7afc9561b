package spotlight

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/vanderheijden86/spotlight/pkg/debug"
	"github.com/vanderheijden86/spotlight/pkg/geometry"
)

// MessageRenderer turns markdown message text into styled terminal text no
// wider than width cells.
type MessageRenderer interface {
	RenderMessage(text string, width int) (string, error)
}

// BubbleMetrics are the fixed distances used to lay out and place the
// bubble, in cells.
type BubbleMetrics struct {
	PaddingTop            int `yaml:"padding_top" json:"padding_top"`
	PaddingSide           int `yaml:"padding_side" json:"padding_side"`
	PaddingBottom         int `yaml:"padding_bottom" json:"padding_bottom"`
	PaddingBottomWithNext int `yaml:"padding_bottom_with_next" json:"padding_bottom_with_next"`
	// SideMargin keeps the bubble and arrow away from the safe-area edges.
	SideMargin int `yaml:"side_margin" json:"side_margin"`
	// ArrowHeight is the number of rows the pointer glyph occupies.
	ArrowHeight int `yaml:"arrow_height" json:"arrow_height"`
	// ArrowMargin is the gap between the highlight and the arrow.
	ArrowMargin int `yaml:"arrow_margin" json:"arrow_margin"`
}

// DefaultBubbleMetrics suits an 80x24 terminal.
var DefaultBubbleMetrics = BubbleMetrics{
	PaddingTop:            1,
	PaddingSide:           2,
	PaddingBottom:         1,
	PaddingBottomWithNext: 0,
	SideMargin:            1,
	ArrowHeight:           1,
	ArrowMargin:           0,
}

// StandOff is the vertical room the arrow needs between highlight and bubble.
func (m BubbleMetrics) StandOff() int {
	return m.ArrowHeight + m.ArrowMargin
}

const borderWidth = 1

// Bubble is the laid-out message box: the message first, then the optional
// next control below it.
type Bubble struct {
	view string
	size geometry.Size
	// control is the next-button (or custom view) rect relative to the
	// bubble's top-left cell; empty when there is none.
	control geometry.Rect
	kind    controlKind
}

type controlKind int

const (
	controlNone controlKind = iota
	controlSimple
	controlCustom
)

// NewBubble lays out the instruction's message within maxWidth cells
// (border included).
func NewBubble(instr Instruction, maxWidth int, m BubbleMetrics, md MessageRenderer, r *lipgloss.Renderer) *Bubble {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	msg := instr.Message()
	maxWidth = min(maxWidth, msg.maxWidth())
	inner := max(maxWidth-2*borderWidth-2*m.PaddingSide, 1)

	body := wrapMessage(msg, inner, md)
	bodyLines := strings.Split(body, "\n")

	var (
		control     []string
		kind        controlKind
		controlW    int
		bottomPad   = m.PaddingBottom
		contentW    = lipgloss.Width(body)
		buttonStyle = r.NewStyle().Bold(true)
	)
	switch next := instr.NextButton().(type) {
	case SimpleNext:
		kind = controlSimple
		label := "[ " + runewidth.Truncate(next.Label, max(inner-4, 1), "…") + " ]"
		control = []string{buttonStyle.Render(label)}
		controlW = runewidth.StringWidth(label)
	case CustomNext:
		kind = controlCustom
		if next.View != nil {
			v := next.View.View()
			control = strings.Split(v, "\n")
			controlW = min(lipgloss.Width(v), inner)
		}
	}
	if kind != controlNone {
		bottomPad = m.PaddingBottomWithNext
	}
	contentW = min(max(contentW, controlW, 1), inner)

	rows := append([]string(nil), bodyLines...)
	for _, line := range control {
		line = ansi.Truncate(line, contentW, "")
		pad := contentW - ansi.StringWidth(line)
		rows = append(rows, strings.Repeat(" ", max(pad, 0))+line)
	}

	style := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(m.PaddingTop, m.PaddingSide, bottomPad, m.PaddingSide).
		Width(contentW + 2*m.PaddingSide)
	if msg.Background != "" {
		bg := lipgloss.Color(msg.Background)
		style = style.Background(bg).BorderForeground(bg)
	}
	if msg.Foreground != "" {
		style = style.Foreground(lipgloss.Color(msg.Foreground))
	}

	view := style.Render(strings.Join(rows, "\n"))
	b := &Bubble{
		view: view,
		size: geometry.Size{W: lipgloss.Width(view), H: lipgloss.Height(view)},
		kind: kind,
	}
	if kind != controlNone && len(control) > 0 {
		b.control = geometry.Rect{
			X: borderWidth + m.PaddingSide + contentW - controlW,
			Y: borderWidth + m.PaddingTop + len(bodyLines),
			W: controlW,
			H: len(control),
		}
	}
	return b
}

func wrapMessage(msg Message, width int, md MessageRenderer) string {
	if msg.Markdown && md != nil {
		out, err := md.RenderMessage(msg.Text, width)
		if err == nil {
			return ansi.Hardwrap(strings.Trim(out, "\n"), width, true)
		}
		debug.Log("markdown render failed, falling back to plain text: %v", err)
	}
	return ansi.Hardwrap(wordwrap.String(msg.Text, width), width, true)
}

// View returns the rendered bubble.
func (b *Bubble) View() string { return b.view }

// Size returns the laid-out size, border included.
func (b *Bubble) Size() geometry.Size { return b.size }

// ControlRect returns the next control's rect relative to the bubble.
func (b *Bubble) ControlRect() (geometry.Rect, bool) {
	return b.control, !b.control.Empty()
}
