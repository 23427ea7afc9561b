package spotlight_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/spotlight/pkg/geometry"
	"github.com/vanderheijden86/spotlight/pkg/spotlight"
)

func plainRenderer() *lipgloss.Renderer {
	return lipgloss.NewRenderer(io.Discard)
}

func staticTarget(r geometry.Rect) spotlight.Target {
	return spotlight.TargetFunc(func() (geometry.Rect, bool) { return r, true })
}

func TestBubblePaddingRule(t *testing.T) {
	m := spotlight.DefaultBubbleMetrics
	msg := spotlight.Message{Text: "Hello"}
	target := staticTarget(geometry.R(0, 0, 1, 1))

	plain := spotlight.NewBubble(spotlight.NewInstruction(target, msg), 40, m, nil, plainRenderer())
	if want := 2 + m.PaddingTop + 1 + m.PaddingBottom; plain.Size().H != want {
		t.Errorf("height without next = %d, want %d", plain.Size().H, want)
	}
	if _, ok := plain.ControlRect(); ok {
		t.Error("bubble without next button should have no control")
	}

	withNext := spotlight.NewBubble(spotlight.NewInstruction(target, msg,
		spotlight.WithNextButton(spotlight.SimpleNext{Label: "Next"})), 40, m, nil, plainRenderer())
	if want := 2 + m.PaddingTop + 1 + 1 + m.PaddingBottomWithNext; withNext.Size().H != want {
		t.Errorf("height with next = %d, want %d", withNext.Size().H, want)
	}
	ctrl, ok := withNext.ControlRect()
	if !ok {
		t.Fatal("expected a control rect")
	}
	if ctrl.W != len("[ Next ]") || ctrl.H != 1 {
		t.Errorf("control = %v, want 8x1", ctrl)
	}
	if !ctrl.Within(geometry.RectFromSize(withNext.Size())) {
		t.Errorf("control %v outside bubble %v", ctrl, withNext.Size())
	}
	if !strings.Contains(withNext.View(), "[ Next ]") {
		t.Errorf("view missing next label:\n%s", withNext.View())
	}
}

func TestBubbleWrapsToMaxWidth(t *testing.T) {
	msg := spotlight.Message{Text: strings.Repeat("word ", 40), MaxWidth: 30}
	b := spotlight.NewBubble(spotlight.NewInstruction(staticTarget(geometry.R(0, 0, 1, 1)), msg),
		80, spotlight.DefaultBubbleMetrics, nil, plainRenderer())
	if b.Size().W > 30 {
		t.Errorf("width %d exceeds message max width 30", b.Size().W)
	}
	if b.Size().H < 5 {
		t.Errorf("height %d, expected wrapped text", b.Size().H)
	}

	narrow := spotlight.NewBubble(spotlight.NewInstruction(staticTarget(geometry.R(0, 0, 1, 1)), msg),
		20, spotlight.DefaultBubbleMetrics, nil, plainRenderer())
	if narrow.Size().W > 20 {
		t.Errorf("width %d exceeds window cap 20", narrow.Size().W)
	}
}

type upperRenderer struct{ err error }

func (u upperRenderer) RenderMessage(text string, _ int) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	return strings.ToUpper(text), nil
}

func TestBubbleMarkdownRenderer(t *testing.T) {
	target := staticTarget(geometry.R(0, 0, 1, 1))
	instr := spotlight.NewInstruction(target, spotlight.Message{Text: "tap here", Markdown: true})

	b := spotlight.NewBubble(instr, 40, spotlight.DefaultBubbleMetrics, upperRenderer{}, plainRenderer())
	if !strings.Contains(b.View(), "TAP HERE") {
		t.Errorf("markdown renderer not used:\n%s", b.View())
	}

	b = spotlight.NewBubble(instr, 40, spotlight.DefaultBubbleMetrics, upperRenderer{err: errors.New("boom")}, plainRenderer())
	if !strings.Contains(b.View(), "tap here") {
		t.Errorf("failed render should fall back to plain text:\n%s", b.View())
	}
}

type staticView string

func (v staticView) View() string { return string(v) }

func TestBubbleCustomNext(t *testing.T) {
	instr := spotlight.NewInstruction(staticTarget(geometry.R(0, 0, 1, 1)),
		spotlight.Message{Text: "Hello there"},
		spotlight.WithNextButton(spotlight.CustomNext{View: staticView("<ok>\n<skip>")}))
	b := spotlight.NewBubble(instr, 40, spotlight.DefaultBubbleMetrics, nil, plainRenderer())
	ctrl, ok := b.ControlRect()
	if !ok {
		t.Fatal("expected a control rect")
	}
	if ctrl.W != 6 || ctrl.H != 2 {
		t.Errorf("control = %v, want 6x2", ctrl)
	}
}
