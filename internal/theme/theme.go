// Package theme provides the Lip Gloss color palette and reusable styles
// for the SuperSID TUI. It is a leaf package with no internal imports to
// avoid import cycles.
package theme

import "github.com/charmbracelet/lipgloss"

// Space weather severity colors.
var (
	ColorSeverityNormal   = lipgloss.Color("#22c55e")
	ColorSeverityModerate = lipgloss.Color("#d97706")
	ColorSeverityStorm    = lipgloss.Color("#dc2626")
	ColorSeveritySevere   = lipgloss.Color("#a855f7")
)

// Band colors.
var (
	ColorBand1   = lipgloss.Color("#06b6d4")
	ColorBand2   = lipgloss.Color("#3b82f6")
	ColorBand3   = lipgloss.Color("#a855f7")
	ColorBand4   = lipgloss.Color("#f59e0b")
	ColorDefault = lipgloss.Color("#9ca3af")
)

// Amplitude bar thresholds.
var (
	ColorAmpLow  = lipgloss.Color("#4b5563") // <40%
	ColorAmpMid  = lipgloss.Color("#d97706") // 40-75%
	ColorAmpHigh = lipgloss.Color("#22c55e") // >75%
)

// UI chrome colors.
var (
	ColorBorder  = lipgloss.Color("#4b5563")
	ColorDimmed  = lipgloss.Color("#6b7280")
	ColorBright  = lipgloss.Color("#f9fafb")
	ColorHealthy = lipgloss.Color("#22c55e")
	ColorWarning = lipgloss.Color("#d97706")
	ColorDanger  = lipgloss.Color("#dc2626")
)

// SeverityColor returns the color for a space weather status. Unknown
// statuses fall back to the default gray.
func SeverityColor(status string) lipgloss.Color {
	switch status {
	case "normal":
		return ColorSeverityNormal
	case "moderate":
		return ColorSeverityModerate
	case "storm":
		return ColorSeverityStorm
	case "severe":
		return ColorSeveritySevere
	default:
		return ColorDefault
	}
}

// SeverityGlyph returns a Unicode glyph for a space weather status.
func SeverityGlyph(status string) string {
	switch status {
	case "normal":
		return "●"
	case "moderate":
		return "◐"
	case "storm":
		return "▲"
	case "severe":
		return "✸"
	default:
		return "·"
	}
}

// BandColor returns the color for a band name.
func BandColor(band string) lipgloss.Color {
	switch band {
	case "BAND_1":
		return ColorBand1
	case "BAND_2":
		return ColorBand2
	case "BAND_3":
		return ColorBand3
	case "BAND_4":
		return ColorBand4
	default:
		return ColorDefault
	}
}

// AmplitudeColor returns the color for a normalized amplitude.
func AmplitudeColor(v float64) lipgloss.Color {
	switch {
	case v > 0.75:
		return ColorAmpHigh
	case v > 0.4:
		return ColorAmpMid
	default:
		return ColorAmpLow
	}
}

// StationStatusColor returns the color for a transmitter status.
func StationStatusColor(status string) lipgloss.Color {
	switch status {
	case "active":
		return ColorHealthy
	case "testing":
		return ColorWarning
	case "inactive":
		return ColorDanger
	default:
		return ColorDimmed
	}
}

// MonitorColor returns the color for a capture state string.
func MonitorColor(state string) lipgloss.Color {
	if state == "active" {
		return ColorHealthy
	}
	return ColorDimmed
}

// Reusable styles.
var (
	StyleBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)

	StyleDimmed = lipgloss.NewStyle().
			Foreground(ColorDimmed)

	StyleSelected = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)
)
