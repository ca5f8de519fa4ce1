// Package events renders the anomaly feed panel.
package events

import (
	"fmt"
	"time"

	"github.com/alearecuest/SuperSID-Pro/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

const (
	maxEntries = 100
	maxVisible = 5
)

// Event is one detector hit.
type Event struct {
	Time    time.Time
	Message string
}

// Model holds the anomaly feed state.
type Model struct {
	Width   int
	entries []Event
	total   int
}

// New creates an empty feed.
func New() Model {
	return Model{}
}

// Add appends the hits from one anomaly frame. The wire timestamp is in
// Unix seconds.
func (m *Model) Add(timestamp float64, anomalies []string) {
	when := time.Unix(int64(timestamp), 0)
	for _, a := range anomalies {
		m.entries = append(m.entries, Event{Time: when, Message: a})
		m.total++
	}
	if len(m.entries) > maxEntries {
		m.entries = m.entries[len(m.entries)-maxEntries:]
	}
}

// Total returns the number of hits seen since startup.
func (m Model) Total() int { return m.total }

// View renders the feed panel showing the most recent hits.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBright).
		Render("  Anomalies")

	if len(m.entries) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			theme.StyleDimmed.Render("  No anomalies detected."),
		)
	}

	start := len(m.entries) - maxVisible
	if start < 0 {
		start = 0
	}

	lines := []string{header}
	for _, e := range m.entries[start:] {
		msg := e.Message
		if len(msg) > width-14 && width > 14 {
			msg = msg[:width-17] + "..."
		}
		ts := theme.StyleDimmed.Render(e.Time.Format("15:04:05"))
		msgStr := lipgloss.NewStyle().Foreground(theme.ColorWarning).Render(msg)
		lines = append(lines, fmt.Sprintf("  %s %s", ts, msgStr))
	}
	if m.total > maxVisible {
		lines = append(lines, theme.StyleDimmed.Render(fmt.Sprintf("  %d total", m.total)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
