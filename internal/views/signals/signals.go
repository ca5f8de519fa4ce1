// Package signals renders the live band table with animated amplitude bars.
package signals

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alearecuest/SuperSID-Pro/internal/client"
	"github.com/alearecuest/SuperSID-Pro/internal/theme"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

// AnimFPS is the bar animation frame rate.
const AnimFPS = 20

// row is one band's display state. pos and vel drive the spring easing the
// bar toward the latest amplitude.
type row struct {
	band    string
	reading client.SignalReading
	pos     float64
	vel     float64
}

// Model holds the signals table state.
type Model struct {
	Width  int
	Cursor int

	spring  harmonica.Spring
	rows    []row
	index   map[string]int
	samples int
	rate    float64
}

// New creates a signals model.
func New() Model {
	return Model{
		spring: harmonica.NewSpring(harmonica.FPS(AnimFPS), 6.0, 0.7),
		index:  make(map[string]int),
	}
}

// SetReadings merges the latest reading per band. New bands are inserted and
// the rows stay sorted by band name.
func (m *Model) SetReadings(signals map[string]client.SignalReading) {
	changed := false
	for band, r := range signals {
		if i, ok := m.index[band]; ok {
			m.rows[i].reading = r
			continue
		}
		m.rows = append(m.rows, row{band: band, reading: r})
		changed = true
	}
	if changed {
		m.reindex()
	}
}

func (m *Model) reindex() {
	sort.Slice(m.rows, func(i, j int) bool { return m.rows[i].band < m.rows[j].band })
	for i := range m.rows {
		m.index[m.rows[i].band] = i
	}
}

// SetStats updates the footer sample statistics.
func (m *Model) SetStats(samples int, rate float64) {
	m.samples = samples
	m.rate = rate
}

// Step advances the bar animations by one frame.
func (m *Model) Step() {
	for i := range m.rows {
		m.rows[i].pos, m.rows[i].vel = m.spring.Update(
			m.rows[i].pos, m.rows[i].vel, m.rows[i].reading.Amplitude)
	}
}

// CursorUp moves the band selection up.
func (m *Model) CursorUp() {
	if m.Cursor > 0 {
		m.Cursor--
	}
}

// CursorDown moves the band selection down.
func (m *Model) CursorDown() {
	if m.Cursor < len(m.rows)-1 {
		m.Cursor++
	}
}

// Selected returns the band name under the cursor, or "" when empty.
func (m Model) Selected() string {
	if m.Cursor < 0 || m.Cursor >= len(m.rows) {
		return ""
	}
	return m.rows[m.Cursor].band
}

// Bands returns the number of bands on display.
func (m Model) Bands() int { return len(m.rows) }

// View renders the band table.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBright).
		Render("  Live Signals")

	if len(m.rows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			theme.StyleDimmed.Render("  Waiting for data..."),
		)
	}

	// Column widths (fixed layout).
	colBand := 10
	colFreq := 12
	colBar := 24
	colPhase := 8

	dimStyle := lipgloss.NewStyle().Foreground(theme.ColorDimmed)

	tableHeader := fmt.Sprintf("    %-*s %*s  %-*s %*s",
		colBand, "Band",
		colFreq, "Frequency",
		colBar, "Amplitude",
		colPhase, "Phase",
	)
	lines := []string{
		header,
		dimStyle.Render(tableHeader),
		dimStyle.Render("  " + strings.Repeat("─", min(width-4, colBand+colFreq+colBar+colPhase+8))),
	}

	for i, r := range m.rows {
		marker := "  "
		if i == m.Cursor {
			marker = lipgloss.NewStyle().Foreground(theme.ColorBright).Render("▸ ")
		}

		bandStr := lipgloss.NewStyle().Foreground(theme.BandColor(r.band)).
			Width(colBand).Render(r.band)

		freqStr := dimStyle.Width(colFreq).Align(lipgloss.Right).
			Render(fmt.Sprintf("%.1f Hz", r.reading.Frequency))

		bar := renderAmpBar(r.pos, r.reading.Amplitude, colBar-1)
		barStr := lipgloss.NewStyle().Width(colBar).Render(bar)

		phaseStr := dimStyle.Width(colPhase).Align(lipgloss.Right).
			Render(fmt.Sprintf("%+.2f", r.reading.Phase))

		lines = append(lines, fmt.Sprintf("  %s%s %s  %s %s",
			marker, bandStr, freqStr, barStr, phaseStr))
	}

	footer := dimStyle.Render(fmt.Sprintf("  %d samples  %.1f/s  %d bands",
		m.samples, m.rate, len(m.rows)))
	lines = append(lines, "", footer)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderAmpBar draws the animated amplitude bar with a numeric label. The
// fill follows the spring position while the label shows the raw reading.
func renderAmpBar(pos, amplitude float64, barWidth int) string {
	if barWidth < 8 {
		barWidth = 8
	}

	labelWidth := 5
	fillWidth := barWidth - labelWidth
	if fillWidth < 3 {
		fillWidth = 3
	}

	filled := max(0, min(int(pos*float64(fillWidth)), fillWidth))
	empty := fillWidth - filled

	color := theme.AmplitudeColor(amplitude)
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	bar += lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(strings.Repeat("░", empty))
	label := fmt.Sprintf(" %4.2f", amplitude)

	return bar + lipgloss.NewStyle().Foreground(color).Render(label)
}
