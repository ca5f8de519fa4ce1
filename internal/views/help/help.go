// Package help renders the key binding guide overlay.
package help

import (
	"github.com/alearecuest/SuperSID-Pro/internal/theme"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// guide is the markdown source for the overlay.
const guide = `# SuperSID Console

Live VLF/LF signal monitor.

## Keys

| Key   | Action                |
| ----- | --------------------- |
| s     | start monitoring      |
| x     | stop monitoring       |
| c     | clear sample counter  |
| j/k   | select band           |
| enter | band history          |
| t     | station directory     |
| d     | debug log             |
| ?     | this help             |
| esc   | close overlay         |
| q     | quit                  |

Band readings stream once per second while monitoring is active.
The space weather summary refreshes every ten minutes.
`

// Model holds the rendered help text.
type Model struct {
	width    int
	rendered string
}

// New creates a help model.
func New() Model {
	return Model{}
}

// SetSize re-renders the markdown guide for the given width.
func (m *Model) SetSize(width, height int) {
	w := width - 8
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	if w == m.width && m.rendered != "" {
		return
	}
	m.width = w

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(w),
	)
	if err != nil {
		m.rendered = guide
		return
	}
	out, err := r.Render(guide)
	if err != nil {
		m.rendered = guide
		return
	}
	m.rendered = out
}

// View renders the help overlay.
func (m Model) View() string {
	content := m.rendered
	if content == "" {
		content = guide
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Padding(0, 1).
		Render(content)
}
