package ui

import (
	"errors"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/spotlight/pkg/config"
	"github.com/vanderheijden86/spotlight/pkg/geometry"
	"github.com/vanderheijden86/spotlight/pkg/spotlight"
)

type overlayFixture struct {
	o      *Overlay
	button *geometry.Element
	taps   int
	clock  time.Time
	got    []spotlight.Outcome
}

func newOverlayFixture(t *testing.T) *overlayFixture {
	t.Helper()
	f := &overlayFixture{clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

	win := geometry.NewWindow(geometry.Size{W: 40, H: 12})
	f.button = geometry.NewElement("sync", geometry.R(5, 3, 10, 1))
	f.button.OnTap = func(geometry.Point) { f.taps++ }
	win.AddChild(f.button)

	theme := DefaultTheme(lipgloss.NewRenderer(io.Discard))
	f.o = NewOverlay(win, theme, config.DefaultConfig())
	f.o.sched.now = func() time.Time { return f.clock }
	return f
}

func (f *overlayFixture) show(t *testing.T, opts ...spotlight.InstructionOption) {
	t.Helper()
	instr := spotlight.NewInstruction(spotlight.WeakElement(f.button),
		spotlight.Message{Text: "Press to sync"}, opts...)
	cmd, err := f.o.Show(instr, func(o spotlight.Outcome) { f.got = append(f.got, o) })
	if err != nil {
		t.Fatalf("Show: %v", err)
	}
	if cmd == nil {
		t.Fatal("Show should return the fade timers")
	}
}

// drain delivers every pending timer message in due order, advancing the
// fake clock as it goes.
func (f *overlayFixture) drain() {
	s := f.o.sched
	for range 1000 {
		ts := make([]*teaTimer, 0, len(s.timers))
		for _, t := range s.timers {
			ts = append(ts, t)
		}
		if len(ts) == 0 {
			return
		}
		sort.Slice(ts, func(i, j int) bool {
			if !ts[i].due.Equal(ts[j].due) {
				return ts[i].due.Before(ts[j].due)
			}
			return ts[i].id < ts[j].id
		})
		f.clock = ts[0].due
		f.o.Update(timerFiredMsg{s: s, id: ts[0].id})
	}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func screen(w, h int) string {
	row := strings.Repeat("·", w)
	rows := make([]string, h)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

func TestOverlayViewDrawsBubbleAfterFadeIn(t *testing.T) {
	f := newOverlayFixture(t)
	bg := screen(40, 12)
	f.show(t)

	if out := f.o.View(bg); strings.Contains(out, "Press to sync") {
		t.Error("bubble should not be drawn before the fade-in")
	}
	f.drain()

	out := f.o.View(bg)
	if !strings.Contains(out, "Press to sync") {
		t.Errorf("bubble missing:\n%s", out)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 12 {
		t.Fatalf("view has %d lines, want 12", len(lines))
	}
	l, _ := f.o.Manager().Layout()
	if got := []rune(lines[l.Arrow.Y])[l.Arrow.X]; string(got) != spotlight.ArrowUp {
		t.Errorf("arrow cell = %q, want %q", got, spotlight.ArrowUp)
	}
	f.o.Dispose()
	if out := f.o.View(bg); out != bg {
		t.Error("disposed overlay should leave the view untouched")
	}
}

func TestOverlayTapPassesThroughToElement(t *testing.T) {
	f := newOverlayFixture(t)
	f.show(t)
	f.drain()

	handled, _ := f.o.Update(release(7, 3))
	if !handled {
		t.Error("tap on an active overlay should be handled")
	}
	if f.taps != 1 {
		t.Errorf("button taps = %d, want 1", f.taps)
	}
	if f.o.Manager().State() != spotlight.StateClosing {
		t.Errorf("state = %s, want closing", f.o.Manager().State())
	}
	f.drain()
	if len(f.got) != 1 || f.got[0] != spotlight.OutcomeFinished {
		t.Errorf("outcomes = %v, want [finished]", f.got)
	}
	if f.o.Active() {
		t.Error("overlay should be gone after the close delay")
	}

	if handled, _ := f.o.Update(release(7, 3)); handled {
		t.Error("inactive overlay should not handle taps")
	}
}

func TestOverlaySwallowsOtherMouseEvents(t *testing.T) {
	f := newOverlayFixture(t)
	f.show(t)

	handled, _ := f.o.Update(tea.MouseMsg{X: 7, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !handled || f.taps != 0 || !f.o.Manager().IsStarted() {
		t.Errorf("press: handled = %v, taps = %d, started = %v", handled, f.taps, f.o.Manager().IsStarted())
	}
}

func TestOverlayKeys(t *testing.T) {
	next := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}
	esc := tea.KeyMsg{Type: tea.KeyEscape}
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	t.Run("next needs a next button", func(t *testing.T) {
		f := newOverlayFixture(t)
		f.show(t)
		if handled, _ := f.o.Update(next); !handled {
			t.Error("keys should be swallowed while showing")
		}
		if !f.o.Manager().IsStarted() {
			t.Error("next without a next button should not close")
		}

		f = newOverlayFixture(t)
		f.show(t, spotlight.WithNextButton(spotlight.SimpleNext{Label: "Next"}))
		f.o.Update(next)
		f.drain()
		if len(f.got) != 1 {
			t.Errorf("outcomes = %v, want one", f.got)
		}
	})

	t.Run("close", func(t *testing.T) {
		f := newOverlayFixture(t)
		f.show(t)
		f.o.Update(esc)
		f.drain()
		if len(f.got) != 1 || f.taps != 0 {
			t.Errorf("outcomes = %v, taps = %d", f.got, f.taps)
		}
	})

	t.Run("close blocked", func(t *testing.T) {
		f := newOverlayFixture(t)
		f.show(t, spotlight.WithPolicy(spotlight.PolicyBlocksOutside))
		f.o.Update(esc)
		if !f.o.Manager().IsStarted() {
			t.Error("close key should respect a blocked outside policy")
		}
	})

	t.Run("activate taps the target", func(t *testing.T) {
		f := newOverlayFixture(t)
		f.show(t)
		f.o.Update(enter)
		f.drain()
		if f.taps != 1 || len(f.got) != 1 {
			t.Errorf("taps = %d, outcomes = %v", f.taps, f.got)
		}
	})

	t.Run("inactive passes keys on", func(t *testing.T) {
		f := newOverlayFixture(t)
		if handled, _ := f.o.Update(esc); handled {
			t.Error("inactive overlay should not handle keys")
		}
	})
}

func TestOverlayResizeOutOfBounds(t *testing.T) {
	f := newOverlayFixture(t)
	f.show(t)
	f.drain()

	handled, _ := f.o.Update(tea.WindowSizeMsg{Width: 12, Height: 12})
	if handled {
		t.Error("size messages should reach the host")
	}
	if f.o.Window().Frame.W != 12 {
		t.Fatalf("window width = %d, want 12", f.o.Window().Frame.W)
	}
	if cmd := f.o.Relayout(); cmd == nil {
		t.Error("width change should schedule a recompute")
	}
	f.drain()
	if len(f.got) != 1 || f.got[0] != spotlight.OutcomeUnexpected {
		t.Errorf("outcomes = %v, want [unexpected]", f.got)
	}
}

func TestOverlayShowOutOfBounds(t *testing.T) {
	f := newOverlayFixture(t)
	f.button.Frame.X = 35
	instr := spotlight.NewInstruction(spotlight.WeakElement(f.button), spotlight.Message{Text: "x"})
	if _, err := f.o.Show(instr, nil); !errors.Is(err, spotlight.ErrTargetOutOfBounds) {
		t.Errorf("err = %v, want ErrTargetOutOfBounds", err)
	}
	if f.o.Active() {
		t.Error("nothing should be attached")
	}
}
