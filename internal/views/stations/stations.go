// Package stations provides the transmitter directory overlay.
package stations

import (
	"fmt"

	"github.com/alearecuest/SuperSID-Pro/internal/client"
	"github.com/alearecuest/SuperSID-Pro/internal/theme"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// typeFilters are the values the type filter cycles through.
var typeFilters = []string{"", "VLF", "LF"}

// LoadedMsg is returned after fetching the station list.
type LoadedMsg struct {
	Stations []client.Station
	Err      error
}

// KeyMap holds the stations-specific key bindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Type   key.Binding
	Search key.Binding
	Reload key.Binding
	Escape key.Binding
}

// DefaultKeyMap returns the default stations key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "prev station"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next station"),
		),
		Type: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle type"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "name filter"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// Model is the stations overlay model.
type Model struct {
	api  *client.APIClient
	keys KeyMap

	stations []client.Station
	cursor   int

	// typeIdx indexes typeFilters.
	typeIdx int

	// search is the name filter input. searching is true while it has focus.
	search    textinput.Model
	searching bool

	// loading is true while a fetch is in flight.
	loading bool

	// statusMsg is a transient error line.
	statusMsg string

	width  int
	height int
}

// New creates a stations model. It begins in the loading state.
func New(api *client.APIClient) Model {
	ti := textinput.New()
	ti.Placeholder = "station name"
	ti.Prompt = "/ "
	ti.CharLimit = 32
	ti.Width = 24
	return Model{
		api:     api,
		keys:    DefaultKeyMap(),
		search:  ti,
		loading: true,
	}
}

// Init fires the initial station fetch.
func (m Model) Init() tea.Cmd {
	return fetchStations(m.api, m.typeFilter(), m.search.Value())
}

// SetSize updates the available rendering area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Searching reports whether the name filter input has focus. The parent app
// must forward esc here instead of closing the overlay while it is set.
func (m Model) Searching() bool { return m.searching }

func (m Model) typeFilter() string {
	return typeFilters[m.typeIdx]
}

// Update handles messages for the stations overlay.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.statusMsg = "Error: " + msg.Err.Error()
			return m, nil
		}
		m.stations = msg.Stations
		if m.cursor >= len(m.stations) {
			m.cursor = max(0, len(m.stations)-1)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// While the filter input has focus it swallows everything except
	// enter (apply) and esc (cancel).
	if m.searching {
		switch msg.String() {
		case "enter":
			m.searching = false
			m.search.Blur()
			m.loading = true
			return m, fetchStations(m.api, m.typeFilter(), m.search.Value())
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.loading = true
			return m, fetchStations(m.api, m.typeFilter(), "")
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
	}

	// Clear transient status on any key press.
	m.statusMsg = ""

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.stations)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Type):
		m.typeIdx = (m.typeIdx + 1) % len(typeFilters)
		m.loading = true
		return m, fetchStations(m.api, m.typeFilter(), m.search.Value())

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, fetchStations(m.api, m.typeFilter(), m.search.Value())
	}

	return m, nil
}

// View renders the stations overlay.
func (m Model) View() string {
	if m.loading {
		return theme.StyleBorder.Padding(1, 2).Render("Loading stations...")
	}

	title := theme.StyleHeader.Render(" TRANSMITTER STATIONS ")

	filter := "all"
	if f := m.typeFilter(); f != "" {
		filter = f
	}
	filterStr := theme.StyleDimmed.Render("type: " + filter)
	if name := m.search.Value(); name != "" && !m.searching {
		filterStr += theme.StyleDimmed.Render(fmt.Sprintf("  name: %q", name))
	}

	sections := []string{title, filterStr}
	if m.searching {
		sections = append(sections, m.search.View())
	}
	sections = append(sections, "", m.renderTable(), "")
	sections = append(sections, theme.StyleDimmed.Render(
		"  j/k: move  t: cycle type  /: name filter  r: reload  esc: close"))
	if m.statusMsg != "" {
		sections = append(sections,
			lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("  "+m.statusMsg))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBorder).
		Padding(0, 1).
		Render(body)
}

func (m Model) renderTable() string {
	if len(m.stations) == 0 {
		return theme.StyleDimmed.Render("  No stations match.")
	}

	colName := 18
	colType := 5
	colFreq := 9
	colCountry := 12
	colStatus := 9
	colCoord := 16

	dimStyle := lipgloss.NewStyle().Foreground(theme.ColorDimmed)
	header := fmt.Sprintf("  %-*s %-*s %*s  %-*s %-*s %-*s",
		colName, "Name",
		colType, "Type",
		colFreq, "kHz",
		colCountry, "Country",
		colStatus, "Status",
		colCoord, "Coordinates",
	)
	lines := []string{dimStyle.Render(header)}

	for i, s := range m.stations {
		marker := "  "
		nameColor := theme.ColorDefault
		if i == m.cursor {
			marker = lipgloss.NewStyle().Foreground(theme.ColorBright).Render("▸ ")
			nameColor = theme.ColorBright
		}

		name := s.Name
		if len(name) > colName-1 {
			name = name[:colName-2] + "…"
		}

		line := fmt.Sprintf("%s%s %s %s  %s %s %s",
			marker,
			lipgloss.NewStyle().Foreground(nameColor).Width(colName).Render(name),
			dimStyle.Width(colType).Render(s.Type),
			lipgloss.NewStyle().Width(colFreq).Align(lipgloss.Right).Render(fmt.Sprintf("%.2f", s.Frequency)),
			dimStyle.Width(colCountry).Render(s.Country),
			lipgloss.NewStyle().Foreground(theme.StationStatusColor(s.Status)).Width(colStatus).Render(s.Status),
			dimStyle.Width(colCoord).Render(fmt.Sprintf("%.1f, %.1f", s.Latitude, s.Longitude)),
		)
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func fetchStations(api *client.APIClient, stationType, name string) tea.Cmd {
	return func() tea.Msg {
		stations, err := api.Stations(stationType, name)
		return LoadedMsg{Stations: stations, Err: err}
	}
}
