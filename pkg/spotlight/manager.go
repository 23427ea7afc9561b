package spotlight

import (
	"time"
	"weak"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/spotlight/pkg/debug"
	"github.com/vanderheijden86/spotlight/pkg/geometry"
	"github.com/vanderheijden86/spotlight/pkg/metrics"
)

// Default timings.
const (
	// DefaultCloseDelay separates a close from its completion so a tap that
	// passed through the cutout is handled by the underlying element before
	// the caller hears about the close.
	DefaultCloseDelay = 300 * time.Millisecond
	// DefaultWidthSettleDelay lets the host finish its own layout before the
	// geometry is recomputed after a width change.
	DefaultWidthSettleDelay = 50 * time.Millisecond
	// DefaultFadeDuration is the overlay fade in/out time.
	DefaultFadeDuration = 300 * time.Millisecond
)

// State is the manager's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateShowing
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateShowing:
		return "showing"
	case StateClosing:
		return "closing"
	default:
		return "idle"
	}
}

// Attached is a surface currently on screen together with the bubble and
// layout drawn on it. Surfaces stay attached while they fade out.
type Attached struct {
	Instruction Instruction
	Surface     *Surface
	Bubble      *Bubble
	Layout      Layout
}

type session struct {
	id          uint64
	instruction Instruction
	window      weak.Pointer[geometry.Element]
	attached    *Attached
	state       State
	onFinish    func(Outcome)
	finished    bool
	recompute   Timer
}

func (s *session) complete(o Outcome) {
	if s.finished {
		return
	}
	s.finished = true
	switch o {
	case OutcomeFinished:
		metrics.SessionsFinished.Inc()
	case OutcomeUnexpected:
		metrics.SessionsUnexpected.Inc()
	case OutcomeSuperseded:
		metrics.SessionsSuperseded.Inc()
	}
	debug.Log("session %d completed: %s", s.id, o)
	if s.onFinish != nil {
		s.onFinish(o)
	}
}

// Option configures a Manager.
type Option func(*Manager)

// WithFader replaces the default StepFader.
func WithFader(f Fader) Option {
	return func(m *Manager) { m.fader = f }
}

// WithOverlayTint sets the overlay colour.
func WithOverlayTint(t Tint) Option {
	return func(m *Manager) { m.tint = t }
}

// WithOuterMargin sets how far the surface extends past the window.
func WithOuterMargin(n int) Option {
	return func(m *Manager) { m.margin = max(n, 0) }
}

// WithCloseDelay sets the delay between a close and its completion.
func WithCloseDelay(d time.Duration) Option {
	return func(m *Manager) { m.closeDelay = d }
}

// WithWidthSettleDelay sets the delay before recomputing after a resize.
func WithWidthSettleDelay(d time.Duration) Option {
	return func(m *Manager) { m.settleDelay = d }
}

// WithFadeDuration sets the overlay fade time.
func WithFadeDuration(d time.Duration) Option {
	return func(m *Manager) { m.fadeDuration = d }
}

// WithBubbleMetrics overrides bubble padding and arrow distances.
func WithBubbleMetrics(bm BubbleMetrics) Option {
	return func(m *Manager) { m.bubbleMetrics = bm }
}

// WithMessageRenderer sets the renderer used for markdown messages.
func WithMessageRenderer(r MessageRenderer) Option {
	return func(m *Manager) { m.md = r }
}

// WithRenderer sets the lipgloss renderer used for the bubble.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(m *Manager) { m.renderer = r }
}

// Manager shows one instruction at a time over a window and reports how
// each one ended. It is not safe for concurrent use: call it from the
// goroutine that runs the scheduler's callbacks.
type Manager struct {
	sched Scheduler
	fader Fader

	tint          Tint
	margin        int
	closeDelay    time.Duration
	settleDelay   time.Duration
	fadeDuration  time.Duration
	bubbleMetrics BubbleMetrics
	md            MessageRenderer
	renderer      *lipgloss.Renderer

	nextID   uint64
	current  *session
	attached []*Attached
}

// NewManager returns an idle manager that defers work through sched.
func NewManager(sched Scheduler, opts ...Option) *Manager {
	m := &Manager{
		sched:         sched,
		tint:          DefaultTint,
		margin:        DefaultOuterMargin,
		closeDelay:    DefaultCloseDelay,
		settleDelay:   DefaultWidthSettleDelay,
		fadeDuration:  DefaultFadeDuration,
		bubbleMetrics: DefaultBubbleMetrics,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.fader == nil {
		m.fader = StepFader{Scheduler: sched}
	}
	return m
}

// IsStarted reports whether an instruction is showing. It turns false as
// soon as a close begins.
func (m *Manager) IsStarted() bool {
	return m.current != nil && m.current.state == StateShowing
}

// State returns the lifecycle state.
func (m *Manager) State() State {
	if m.current == nil {
		return StateIdle
	}
	return m.current.state
}

// Layout returns the current session's layout.
func (m *Manager) Layout() (Layout, bool) {
	if m.current == nil {
		return Layout{}, false
	}
	return m.current.attached.Layout, true
}

// Instruction returns the instruction being shown.
func (m *Manager) Instruction() (Instruction, bool) {
	if m.current == nil {
		return Instruction{}, false
	}
	return m.current.instruction, true
}

// Attached returns the surfaces on screen, back to front.
func (m *Manager) Attached() []*Attached {
	return m.attached
}

// OuterMargin returns the surface margin.
func (m *Manager) OuterMargin() int { return m.margin }

// Show highlights instr's target inside the window that in belongs to and
// returns immediately. onFinish runs exactly once when the session ends.
//
// When in is not attached to a window, or the target cannot be located,
// Show does nothing and returns nil; onFinish never runs. When the
// highlight does not fit the window, Show returns ErrTargetOutOfBounds and
// onFinish never runs. A session already showing is superseded: it fades
// out and its own completion receives OutcomeSuperseded.
func (m *Manager) Show(instr Instruction, in *geometry.Element, onFinish func(Outcome)) error {
	_, err := m.show(instr, in, onFinish)
	return err
}

// TryShow is Show that also reports whether a session started. started is
// false, with a nil error, in the cases where Show silently does nothing.
func (m *Manager) TryShow(instr Instruction, in *geometry.Element, onFinish func(Outcome)) (started bool, err error) {
	return m.show(instr, in, onFinish)
}

// ShowAwait is Show with a one-shot result. The Pending resolves with nil
// on success, ErrTargetOutOfBounds if the show fails or the session closes
// unexpectedly, and ErrSuperseded if a newer Show replaces it. It resolves
// with nil immediately when there is nothing to show.
func (m *Manager) ShowAwait(instr Instruction, in *geometry.Element) *Pending {
	p := newPending()
	started, err := m.show(instr, in, func(o Outcome) { p.resolve(o.Err()) })
	if err != nil || !started {
		p.resolve(err)
	}
	return p
}

func (m *Manager) show(instr Instruction, in *geometry.Element, onFinish func(Outcome)) (bool, error) {
	win := in.Window()
	if win == nil {
		debug.Log("show: element not attached to a window, nothing to show")
		return false, nil
	}
	g, ok, err := instr.computeGeometry(win.Bounds(), m.margin)
	if !ok {
		debug.Log("show: target not attached, nothing to show")
		return false, nil
	}

	if prev := m.current; prev != nil && prev.state == StateShowing {
		m.supersede(prev)
	}
	if err != nil {
		metrics.OutOfBounds.Inc()
		debug.Log("show: %v", err)
		return false, err
	}

	m.nextID++
	s := &session{
		id:          m.nextID,
		instruction: instr,
		window:      weak.Make(win),
		state:       StateShowing,
		onFinish:    onFinish,
	}
	surface := NewSurface(m.tint, instr.CornerRadius())
	surface.SetBlocksTapInsideCutout(instr.Policy().BlocksTapInsideCutout)
	s.attached = &Attached{Instruction: instr, Surface: surface}
	m.layoutSession(s, win, g)
	surface.Layout(g.Overlay)

	m.current = s
	m.wire(s)
	m.attachOverlay(s.attached)
	metrics.SessionsShown.Inc()
	debug.Log("session %d showing: highlight %v, bubble %s", s.id, g.Highlight, s.attached.Layout.Direction)
	return true, nil
}

func (m *Manager) layoutSession(s *session, win *geometry.Element, g Geometry) {
	defer metrics.Timer(metrics.Layout)()

	bounds := win.Bounds()
	bubble := NewBubble(s.instruction, BubbleMaxWidth(bounds, win.SafeInsets, m.bubbleMetrics), m.bubbleMetrics, m.md, m.renderer)
	l := PlaceBubble(g, bubble.Size(), bounds, win.SafeInsets, m.bubbleMetrics)
	if ctrl, ok := bubble.ControlRect(); ok {
		l.Control = ctrl.Offset(l.Bubble.X, l.Bubble.Y)
	}
	s.attached.Surface.SetCutout(g.Cutout)
	s.attached.Bubble = bubble
	s.attached.Layout = l
}

func (m *Manager) wire(s *session) {
	surface := s.attached.Surface
	policy := s.instruction.Policy()

	surface.OnHitInsideCutout = func() {
		if !policy.IgnoresTapInsideCutout {
			m.closeSession(s, OutcomeFinished)
		}
	}
	surface.OnTap = func(p geometry.Point) {
		inside := surface.InCutout(p)
		if inside && (policy.BlocksTapInsideCutout || policy.IgnoresTapInsideCutout) {
			return
		}
		if !inside && policy.BlocksTapOutsideCutout {
			return
		}
		m.closeSession(s, OutcomeFinished)
	}
	surface.OnWidthChanged = func() {
		if s.recompute != nil {
			s.recompute.Stop()
		}
		s.recompute = m.sched.AfterFunc(m.settleDelay, func() {
			m.recomputeSession(s)
		})
	}
}

// Resize re-lays the current surface against its window's bounds. Hosts
// call it after the window size changes; a width change schedules a
// geometry recompute for the same instruction.
func (m *Manager) Resize() {
	s := m.current
	if s == nil || s.state != StateShowing {
		return
	}
	win := s.window.Value()
	if win == nil {
		return
	}
	s.attached.Surface.Layout(OverlayFrame(win.Bounds(), m.margin))
}

func (m *Manager) recomputeSession(s *session) {
	s.recompute = nil
	if m.current != s || s.state != StateShowing {
		return
	}
	win := s.window.Value()
	if win == nil {
		return
	}
	metrics.Recomputes.Inc()
	g, ok, err := s.instruction.computeGeometry(win.Bounds(), m.margin)
	if !ok {
		return
	}
	if err != nil {
		metrics.OutOfBounds.Inc()
		debug.Log("session %d recompute: %v", s.id, err)
		m.closeSession(s, OutcomeUnexpected)
		return
	}
	m.layoutSession(s, win, g)
	s.attached.Surface.Layout(g.Overlay)
	debug.Log("session %d recomputed: highlight %v", s.id, g.Highlight)
}

// HandleTap routes a tap at p (window coordinates). It reports whether the
// host should deliver the tap to its own element under p.
func (m *Manager) HandleTap(p geometry.Point) bool {
	s := m.current
	if s == nil || s.state != StateShowing {
		// A fading surface still covers the screen.
		return len(m.attached) == 0
	}
	l := s.attached.Layout
	if l.Control.Contains(p) {
		switch next := s.instruction.NextButton().(type) {
		case SimpleNext:
			m.Next()
		case CustomNext:
			if h, ok := next.View.(TapHandler); ok {
				h.HandleTap(p.Sub(l.Control.Origin()))
			}
		}
		return false
	}
	return s.attached.Surface.Dispatch(l.ToOverlay(p)) == HitPassThrough
}

// Next activates the next control: the session closes successfully.
func (m *Manager) Next() {
	m.closeSession(m.current, OutcomeFinished)
}

// Close ends the current session successfully. It is a no-op unless a
// session is showing, so repeated calls complete the session once.
func (m *Manager) Close() {
	m.closeSession(m.current, OutcomeFinished)
}

func (m *Manager) closeSession(s *session, o Outcome) {
	if s == nil || s != m.current || s.state != StateShowing {
		return
	}
	s.state = StateClosing
	s.attached.Surface.detachObservers()
	if s.recompute != nil {
		s.recompute.Stop()
		s.recompute = nil
	}
	debug.Log("session %d closing (%s)", s.id, o)

	m.sched.AfterFunc(m.closeDelay, func() {
		if m.current == s {
			m.current = nil
		}
		s.complete(o)
	})
	m.detachOverlay(s.attached, true)
}

func (m *Manager) supersede(s *session) {
	s.state = StateClosing
	s.attached.Surface.detachObservers()
	if s.recompute != nil {
		s.recompute.Stop()
		s.recompute = nil
	}
	if m.current == s {
		m.current = nil
	}
	debug.Log("session %d superseded", s.id)
	m.sched.AfterFunc(0, func() {
		s.complete(OutcomeSuperseded)
	})
	m.detachOverlay(s.attached, true)
}

// Dispose removes every surface without fading, for hosts that are shutting
// down. A session still showing completes with OutcomeSuperseded; pending
// close completions still fire.
func (m *Manager) Dispose() {
	if s := m.current; s != nil && s.state == StateShowing {
		s.state = StateClosing
		s.attached.Surface.detachObservers()
		if s.recompute != nil {
			s.recompute.Stop()
		}
		m.current = nil
		s.complete(OutcomeSuperseded)
	}
	for _, a := range append([]*Attached(nil), m.attached...) {
		a.Surface.fadeGen++
		m.detachOverlay(a, false)
	}
}

func (m *Manager) attachOverlay(a *Attached) {
	a.Surface.SetAlpha(0)
	m.attached = append(m.attached, a)
	m.fader.Fade(a.Surface, 1, m.fadeDuration, nil)
}

func (m *Manager) detachOverlay(a *Attached, fadeOut bool) {
	if !fadeOut {
		m.removeAttached(a)
		return
	}
	m.fader.Fade(a.Surface, 0, m.fadeDuration, func() {
		m.removeAttached(a)
	})
}

func (m *Manager) removeAttached(a *Attached) {
	for i, x := range m.attached {
		if x == a {
			m.attached = append(m.attached[:i], m.attached[i+1:]...)
			return
		}
	}
}
