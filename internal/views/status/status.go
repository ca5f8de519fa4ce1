package status

import (
	"fmt"

	"github.com/alearecuest/SuperSID-Pro/internal/client"
	"github.com/alearecuest/SuperSID-Pro/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

// Model holds the status bar state.
type Model struct {
	Connected bool
	Monitor   client.MonitorStatus
	Weather   *client.SpaceWeatherSnapshot
	Samples   int
	Rate      float64
	Width     int
}

// New creates a status bar model.
func New() Model {
	return Model{}
}

// SetStream updates the sample statistics shown on the bar.
func (m *Model) SetStream(samples int, rate float64) {
	m.Samples = samples
	m.Rate = rate
}

// View renders the status bar.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	var connStr string
	if m.Connected {
		connStr = lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render("● Connected")
	} else {
		connStr = lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("○ Connecting...")
	}

	monStr := lipgloss.NewStyle().Foreground(theme.MonitorColor(m.Monitor.String())).
		Render("monitor: " + m.Monitor.String())

	stats := fmt.Sprintf("%d samples  %.1f/s", m.Samples, m.Rate)

	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | ")
	content := connStr + sep + monStr + sep + stats

	if m.Weather != nil {
		wx := fmt.Sprintf("%s wx: %s", theme.SeverityGlyph(m.Weather.Status), m.Weather.Status)
		content += sep + lipgloss.NewStyle().Foreground(theme.SeverityColor(m.Weather.Status)).Render(wx)
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)
}
