// Package banddetail provides the band history overlay with a sparkline of
// recent amplitudes.
package banddetail

import (
	"fmt"
	"strings"

	"github.com/alearecuest/SuperSID-Pro/internal/client"
	"github.com/alearecuest/SuperSID-Pro/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// historyMinutes is the window requested from the backend.
const historyMinutes = 60

// sparkGlyphs are the sparkline levels from lowest to highest.
var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// RecentLoadedMsg is returned after fetching band history.
type RecentLoadedMsg struct {
	Data *client.RecentData
	Err  error
}

// Model is the band detail overlay model.
type Model struct {
	api *client.APIClient

	band    string
	data    *client.RecentData
	loading bool
	errMsg  string

	width  int
	height int
}

// New creates a band detail model.
func New(api *client.APIClient) Model {
	return Model{api: api}
}

// Load resets the overlay to the given band and fires the history fetch.
func (m *Model) Load(band string) tea.Cmd {
	m.band = band
	m.data = nil
	m.errMsg = ""
	m.loading = true
	api := m.api
	return func() tea.Msg {
		data, err := api.Recent(band, historyMinutes)
		return RecentLoadedMsg{Data: data, Err: err}
	}
}

// SetSize updates the available rendering area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Band returns the band under display.
func (m Model) Band() string { return m.band }

// Update handles messages for the overlay.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if loaded, ok := msg.(RecentLoadedMsg); ok {
		m.loading = false
		if loaded.Err != nil {
			m.errMsg = loaded.Err.Error()
			return m, nil
		}
		m.data = loaded.Data
	}
	return m, nil
}

// View renders the overlay.
func (m Model) View() string {
	title := theme.StyleHeader.Render(fmt.Sprintf(" %s HISTORY ", m.band))
	help := theme.StyleDimmed.Render("  esc: close")

	var body string
	switch {
	case m.loading:
		body = theme.StyleDimmed.Render("  Loading history...")
	case m.errMsg != "":
		body = lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("  " + m.errMsg)
	case m.data == nil || len(m.data.Samples) == 0:
		body = theme.StyleDimmed.Render("  No samples in the window.")
	default:
		body = m.renderHistory()
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", help)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBorder).
		Padding(0, 1).
		Render(content)
}

func (m Model) renderHistory() string {
	samples := m.data.Samples

	width := m.width - 10
	if width < 20 {
		width = 20
	}
	if width > len(samples) {
		width = len(samples)
	}

	minAmp, maxAmp := samples[0].Amplitude, samples[0].Amplitude
	var sum float64
	for _, s := range samples {
		if s.Amplitude < minAmp {
			minAmp = s.Amplitude
		}
		if s.Amplitude > maxAmp {
			maxAmp = s.Amplitude
		}
		sum += s.Amplitude
	}

	// Downsample to the display width. A flat series renders at the
	// lowest level rather than dividing by a zero span.
	step := float64(len(samples)) / float64(width)
	span := maxAmp - minAmp
	var spark strings.Builder
	for i := 0; i < width; i++ {
		s := samples[int(float64(i)*step)]
		level := 0
		if span > 0 {
			level = int((s.Amplitude - minAmp) / span * float64(len(sparkGlyphs)-1))
		}
		spark.WriteRune(sparkGlyphs[level])
	}

	sparkStr := lipgloss.NewStyle().Foreground(theme.BandColor(m.band)).
		Render("  " + spark.String())

	stats := theme.StyleDimmed.Render(fmt.Sprintf(
		"  %d samples  min %.3f  avg %.3f  max %.3f  window %dm",
		len(samples), minAmp, sum/float64(len(samples)), maxAmp, historyMinutes))

	return lipgloss.JoinVertical(lipgloss.Left, sparkStr, "", stats)
}
