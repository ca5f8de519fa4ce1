// Package spaceweather renders the space weather summary panel.
package spaceweather

import (
	"fmt"

	"github.com/alearecuest/SuperSID-Pro/internal/client"
	"github.com/alearecuest/SuperSID-Pro/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

// Model holds the space weather panel state.
type Model struct {
	Width    int
	snapshot *client.SpaceWeatherSnapshot
	failures uint64
}

// New creates a space weather model.
func New() Model {
	return Model{}
}

// SetSnapshot replaces the displayed snapshot. Nil keeps the placeholder.
func (m *Model) SetSnapshot(s *client.SpaceWeatherSnapshot) {
	m.snapshot = s
}

// SetFailures updates the poll failure count flagged next to the timestamp.
func (m *Model) SetFailures(n uint64) {
	m.failures = n
}

// View renders the panel.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBright).
		Render("  Space Weather")

	if m.snapshot == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			theme.StyleDimmed.Render("  No summary yet."),
		)
	}

	s := m.snapshot
	status := s.Status
	if status == "" {
		status = "unknown"
	}
	statusStr := lipgloss.NewStyle().Foreground(theme.SeverityColor(s.Status)).
		Render(fmt.Sprintf("%s %s", theme.SeverityGlyph(s.Status), status))

	kp := "--"
	if s.KpIndex != nil {
		kp = fmt.Sprintf("%.1f", *s.KpIndex)
	}
	wind := s.SolarWindSpeed
	if wind == "" {
		wind = "--"
	}
	geo := s.GeomagneticStatus
	if geo == "" {
		geo = "--"
	}

	dim := theme.StyleDimmed
	lines := []string{
		header,
		"  " + statusStr,
		fmt.Sprintf("  %s %s   %s %s", dim.Render("Kp"), kp, dim.Render("wind"), wind),
		fmt.Sprintf("  %s %s", dim.Render("geomagnetic"), geo),
	}

	for _, a := range s.Alerts {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorWarning).Render("  ! "+a))
	}

	if s.LastUpdate != "" {
		upd := "  updated " + s.LastUpdate
		if m.failures > 0 {
			upd += fmt.Sprintf(" (stale, %d failed polls)", m.failures)
		}
		lines = append(lines, dim.Render(upd))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
