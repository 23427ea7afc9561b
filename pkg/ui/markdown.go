package ui

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders bubble messages with glamour. Term renderers are
// built lazily per wrap width and reused.
type MarkdownRenderer struct {
	style string

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

// NewMarkdownRenderer returns a renderer for the named glamour style;
// "auto" or "" picks light or dark from the terminal background.
func NewMarkdownRenderer(style string) *MarkdownRenderer {
	return &MarkdownRenderer{style: style, renderers: make(map[int]*glamour.TermRenderer)}
}

// RenderMessage implements spotlight.MessageRenderer.
func (m *MarkdownRenderer) RenderMessage(text string, width int) (string, error) {
	r, err := m.renderer(width)
	if err != nil {
		return "", err
	}
	return r.Render(text)
}

func (m *MarkdownRenderer) renderer(width int) (*glamour.TermRenderer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.renderers[width]; ok {
		return r, nil
	}
	styleOpt := glamour.WithAutoStyle()
	if m.style != "" && m.style != "auto" {
		styleOpt = glamour.WithStandardStyle(m.style)
	}
	r, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	m.renderers[width] = r
	return r, nil
}
