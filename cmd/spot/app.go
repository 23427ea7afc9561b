package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/spotlight/pkg/config"
	"github.com/vanderheijden86/spotlight/pkg/debug"
	"github.com/vanderheijden86/spotlight/pkg/export"
	"github.com/vanderheijden86/spotlight/pkg/geometry"
	"github.com/vanderheijden86/spotlight/pkg/tour"
	"github.com/vanderheijden86/spotlight/pkg/ui"
	"github.com/vanderheijden86/spotlight/pkg/watcher"
)

var (
	forceQuit  = key.NewBinding(key.WithKeys("ctrl+c"))
	quitKey    = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
	restartKey = key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "restart tour"))
	copyKey    = key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy layout"))
)

// model hosts the demo screen and the overlay running the tour.
type model struct {
	screen  *screen
	overlay *ui.Overlay
	tour    *tour.Tour
	runner  *tour.Runner
	watch   *watcher.Watcher

	started bool
}

func newModel(cfg config.Config, theme ui.Theme, t *tour.Tour, w *watcher.Watcher) *model {
	s := newScreen(theme, 80, 24)
	m := &model{
		screen:  s,
		overlay: ui.NewOverlay(s.window, theme, cfg),
		watch:   w,
	}
	m.setTour(t)
	return m
}

func (m *model) setTour(t *tour.Tour) {
	if m.runner != nil {
		m.runner.Stop()
	}
	m.tour = t
	m.runner = tour.NewRunner(t, m.screen.window, m.overlay)
	m.runner.OnStep = func(i int, step tour.Step) {
		debug.Log("tour %s: step %d/%d on %s", t.Name, i+1, len(t.Steps), step.Target)
	}
	m.runner.OnDone = func(err error) {
		switch {
		case err == nil:
			m.screen.status = "tour complete. t restarts it, q quits"
		case errors.Is(err, tour.ErrStopped):
		default:
			m.screen.status = fmt.Sprintf("tour ended: %v", err)
		}
	}
}

func (m *model) Init() tea.Cmd {
	if m.watch != nil {
		return m.watch.WaitCmd()
	}
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The overlay swallows keys while it is up, so ctrl+c is checked first.
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, forceQuit) {
		return m, m.quit()
	}

	handled, cmd := m.overlay.Update(msg)
	if handled {
		return m, cmd
	}
	cmds := []tea.Cmd{cmd}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.screen.resize(msg.Width, msg.Height)
		cmds = append(cmds, m.overlay.Relayout())
		if !m.started {
			m.started = true
			m.runner.Start()
			cmds = append(cmds, m.overlay.Flush())
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			m.screen.window.DispatchTap(geometry.Pt(msg.X, msg.Y))
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, quitKey):
			return m, m.quit()
		case key.Matches(msg, restartKey):
			m.restart()
			cmds = append(cmds, m.overlay.Flush())
		case key.Matches(msg, copyKey):
			m.copyLayout()
		}

	case watcher.Event:
		m.reload(msg)
		cmds = append(cmds, m.overlay.Flush(), m.watch.WaitCmd())
	}
	return m, tea.Batch(cmds...)
}

func (m *model) quit() tea.Cmd {
	m.runner.Stop()
	m.overlay.Dispose()
	return tea.Quit
}

func (m *model) restart() {
	m.screen.status = "ready"
	m.runner.Start()
}

// reload swaps in the edited tour file and starts it from the top. A tour
// that fails to parse leaves the current one running.
func (m *model) reload(e watcher.Event) {
	if e.Err != nil {
		m.screen.status = fmt.Sprintf("watch: %v", e.Err)
		return
	}
	t, err := tour.Load(e.Path)
	if err != nil {
		m.screen.status = fmt.Sprintf("reload failed: %v", firstLine(err.Error()))
		return
	}
	m.setTour(t)
	m.restart()
	m.screen.status = fmt.Sprintf("reloaded %s", t.Name)
}

// copyLayout puts the current overlay layout on the clipboard as JSON.
func (m *model) copyLayout() {
	snap, err := export.FromManager(m.overlay.Manager(), m.screen.window)
	if err != nil {
		m.screen.status = err.Error()
		return
	}
	data, err := snap.MarshalIndent()
	if err != nil {
		m.screen.status = err.Error()
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		m.screen.status = fmt.Sprintf("clipboard: %v", err)
		return
	}
	m.screen.status = "layout copied"
}

func (m *model) View() string {
	return m.overlay.View(m.screen.View())
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
