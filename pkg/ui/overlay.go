package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/spotlight/pkg/config"
	"github.com/vanderheijden86/spotlight/pkg/debug"
	"github.com/vanderheijden86/spotlight/pkg/geometry"
	"github.com/vanderheijden86/spotlight/pkg/metrics"
	"github.com/vanderheijden86/spotlight/pkg/spotlight"
)

// bubbleVisibleAlpha is the fade level from which the bubble is drawn.
const bubbleVisibleAlpha = 0.5

// Overlay hosts a spotlight.Manager inside a bubbletea program. The host
// model forwards every message to Update first and composites its own view
// through View.
type Overlay struct {
	mgr    *spotlight.Manager
	sched  *TeaScheduler
	window *geometry.Element
	theme  Theme
	keys   KeyMap

	textColor string
}

// NewOverlay builds an overlay for window using cfg.
func NewOverlay(window *geometry.Element, theme Theme, cfg config.Config) *Overlay {
	sched := NewTeaScheduler()
	opts := append(cfg.ManagerOptions(),
		spotlight.WithFader(spotlight.StepFader{Scheduler: sched, Steps: cfg.Overlay.FadeSteps}),
		spotlight.WithMessageRenderer(NewMarkdownRenderer(cfg.Bubble.MarkdownStyle)),
		spotlight.WithRenderer(theme.Renderer),
	)
	return &Overlay{
		mgr:       spotlight.NewManager(sched, opts...),
		sched:     sched,
		window:    window,
		theme:     theme,
		keys:      NewKeyMap(cfg.Keys),
		textColor: cfg.Overlay.TextColor,
	}
}

// Manager returns the underlying manager.
func (o *Overlay) Manager() *spotlight.Manager { return o.mgr }

// Window returns the root element the overlay covers.
func (o *Overlay) Window() *geometry.Element { return o.window }

// Keys returns the key bindings.
func (o *Overlay) Keys() KeyMap { return o.keys }

// Active reports whether any surface is on screen, including one that is
// fading out.
func (o *Overlay) Active() bool {
	return len(o.mgr.Attached()) > 0
}

// Show starts instr over the overlay's window. The returned command carries
// the fade and completion timers and must be returned from Update.
func (o *Overlay) Show(instr spotlight.Instruction, onFinish func(spotlight.Outcome)) (tea.Cmd, error) {
	err := o.mgr.Show(instr, o.window, onFinish)
	return o.sched.Drain(), err
}

// Present shows instr without returning its timers; they are picked up by
// the next Update or Flush. It lets callers that are not bubbletea-aware,
// such as a tour runner, drive the overlay. started is false when there was
// nothing to show and onFinish will never run.
func (o *Overlay) Present(instr spotlight.Instruction, onFinish func(spotlight.Outcome)) (started bool, err error) {
	return o.mgr.TryShow(instr, o.window, onFinish)
}

// Flush returns the timers queued outside Update.
func (o *Overlay) Flush() tea.Cmd {
	return o.sched.Drain()
}

// Close ends the current instruction successfully.
func (o *Overlay) Close() tea.Cmd {
	o.mgr.Close()
	return o.sched.Drain()
}

// Dispose removes the overlay immediately.
func (o *Overlay) Dispose() {
	o.mgr.Dispose()
}

// Update handles overlay messages. handled is true when msg was consumed
// and must not reach the host's own handling. Window size messages are
// applied and still reported unhandled so the host can re-lay itself out;
// the host should call Relayout once it has.
func (o *Overlay) Update(msg tea.Msg) (handled bool, cmd tea.Cmd) {
	defer func() { cmd = tea.Batch(cmd, o.sched.Drain()) }()

	if o.sched.Handle(msg) {
		return true, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		o.window.SetSize(geometry.Size{W: msg.Width, H: msg.Height})
		return false, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return o.Active(), nil
		}
		return o.tap(geometry.Pt(msg.X, msg.Y)), nil

	case tea.KeyMsg:
		if !o.Active() {
			return false, nil
		}
		if !o.mgr.IsStarted() {
			return true, nil
		}
		instr, _ := o.mgr.Instruction()
		switch {
		case key.Matches(msg, o.keys.Next):
			if _, ok := instr.NextButton().(spotlight.SimpleNext); ok {
				o.mgr.Next()
			}
		case key.Matches(msg, o.keys.Activate):
			if l, ok := o.mgr.Layout(); ok {
				o.tap(l.Highlight.Center())
			}
		case key.Matches(msg, o.keys.Close):
			if !instr.Policy().BlocksTapOutsideCutout {
				o.mgr.Close()
			}
		}
		return true, nil
	}
	return false, nil
}

// Relayout tells the manager the window may have changed size.
func (o *Overlay) Relayout() tea.Cmd {
	o.mgr.Resize()
	return o.sched.Drain()
}

// tap routes a tap to the manager and, when it passes through, to the
// host element under it. It reports whether the overlay consumed the tap.
func (o *Overlay) tap(p geometry.Point) bool {
	if !o.Active() {
		return false
	}
	if o.mgr.HandleTap(p) {
		debug.Log("tap %v passed through", p)
		o.window.DispatchTap(p)
	}
	return true
}

// View composites the attached surfaces, bubbles and arrows over bg, the
// host's window-sized view.
func (o *Overlay) View(bg string) string {
	if !o.Active() {
		return bg
	}
	defer metrics.Timer(metrics.Render)()

	w, h := o.window.Frame.W, o.window.Frame.H
	opt := spotlight.RenderOptions{
		Renderer:  o.theme.Renderer,
		TextColor: o.textColor,
		Width:     w,
		Height:    h,
	}
	out := bg
	for _, a := range o.mgr.Attached() {
		out = a.Surface.Render(out, opt)
		if a.Bubble == nil || a.Surface.Alpha() < bubbleVisibleAlpha {
			continue
		}
		l := a.Layout
		out = PlaceAt(out, a.Bubble.View(), l.Bubble.X, l.Bubble.Y, w, h)
		arrow := o.theme.ArrowStyle(a.Instruction.Message().Background).Render(l.Direction.Glyph())
		out = PlaceAt(out, arrow, l.Arrow.X, l.Arrow.Y, w, h)
	}
	return out
}
