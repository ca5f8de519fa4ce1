// Package app contains the root Bubble Tea model that wires the stream
// client, the command API and the sub-views together.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alearecuest/SuperSID-Pro/internal/client"
	"github.com/alearecuest/SuperSID-Pro/internal/theme"
	"github.com/alearecuest/SuperSID-Pro/internal/views/banddetail"
	"github.com/alearecuest/SuperSID-Pro/internal/views/debug"
	"github.com/alearecuest/SuperSID-Pro/internal/views/events"
	"github.com/alearecuest/SuperSID-Pro/internal/views/help"
	"github.com/alearecuest/SuperSID-Pro/internal/views/signals"
	"github.com/alearecuest/SuperSID-Pro/internal/views/spaceweather"
	"github.com/alearecuest/SuperSID-Pro/internal/views/stations"
	"github.com/alearecuest/SuperSID-Pro/internal/views/status"
)

// Overlay identifies which modal panel is currently shown, if any.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayStations
	OverlayDetail
	OverlayHelp
	OverlayDebug
)

// Model is the root application model.
type Model struct {
	stream  *client.StreamClient
	api     *client.APIClient
	monitor *client.MonitorController
	weather *client.SpaceWeatherPoller
	agg     *client.Aggregator

	ctx    context.Context
	cancel context.CancelFunc

	keys   KeyMap
	width  int
	height int

	overlay Overlay

	statusBar status.Model
	signals   signals.Model
	wxPanel   spaceweather.Model
	events    events.Model
	stations  stations.Model
	detail    banddetail.Model
	helpView  help.Model
	debugLog  debug.Model

	connected   bool
	animRunning bool
	notice      string
	errMsg      string
}

// New creates the root model. The stream and API clients must point at
// the same backend.
func New(stream *client.StreamClient, api *client.APIClient) Model {
	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		stream:    stream,
		api:       api,
		monitor:   client.NewMonitorController(api),
		weather:   client.NewSpaceWeatherPoller(api),
		agg:       client.NewAggregator(),
		ctx:       ctx,
		cancel:    cancel,
		keys:      DefaultKeyMap(),
		statusBar: status.New(),
		signals:   signals.New(),
		wxPanel:   spaceweather.New(),
		events:    events.New(),
		stations:  stations.New(api),
		detail:    banddetail.New(api),
		helpView:  help.New(),
		debugLog:  debug.New(),
	}
}

// Init starts the WebSocket connection and the first space weather fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.stream.Connect(m.ctx),
		m.weather.Fetch(m.ctx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.Width = msg.Width
		m.signals.Width = msg.Width
		m.wxPanel.Width = msg.Width
		m.events.Width = msg.Width
		m.stations.SetSize(msg.Width, msg.Height)
		m.detail.SetSize(msg.Width, msg.Height)
		m.helpView.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case client.StreamConnectedMsg:
		m.connected = true
		m.statusBar.Connected = true
		m.debugLog.Add("ws", "stream connected")
		m.syncStats()
		cmds := []tea.Cmd{m.stream.ReadLoop(m.ctx)}
		if !m.animRunning {
			m.animRunning = true
			cmds = append(cmds, animTick())
		}
		return m, tea.Batch(cmds...)

	case client.StreamDisconnectedMsg:
		m.connected = false
		m.statusBar.Connected = false
		if msg.Err != nil {
			m.debugLog.Add("err", fmt.Sprintf("stream lost: %v", msg.Err))
		}
		m.syncStats()
		// One reconnect per disconnect. The dial either succeeds or
		// reports another disconnect, which schedules the next attempt.
		return m, m.stream.Reconnect(m.ctx)

	case client.StreamSignalsMsg:
		m.agg.Ingest(msg.Signals)
		m.signals.SetReadings(msg.Signals)
		m.syncStats()
		return m, m.stream.ReadLoop(m.ctx)

	case client.StreamAnomalyMsg:
		m.events.Add(msg.Timestamp, msg.Anomalies)
		m.debugLog.Add("ws", fmt.Sprintf("anomaly frame: %d hits", len(msg.Anomalies)))
		return m, m.stream.ReadLoop(m.ctx)

	case client.MonitorChangedMsg:
		m.statusBar.Monitor = msg.Status
		m.notice = msg.Message
		m.errMsg = ""
		m.debugLog.Add("cmd", "monitor now "+msg.Status.String())
		return m, nil

	case client.MonitorErrMsg:
		m.errMsg = fmt.Sprintf("%s failed: %v", msg.Op, msg.Err)
		m.debugLog.Add("err", m.errMsg)
		return m, nil

	case client.SpaceWeatherMsg:
		m.wxPanel.SetSnapshot(msg.Snapshot)
		m.wxPanel.SetFailures(m.weather.Failures())
		if msg.Snapshot != nil {
			m.statusBar.Weather = msg.Snapshot
			m.debugLog.Add("sw", "summary: "+msg.Snapshot.Status)
		}
		m.syncStats()
		return m, m.weather.Next(m.ctx)

	case animTickMsg:
		m.signals.Step()
		if m.connected {
			return m, animTick()
		}
		m.animRunning = false
		return m, nil

	case stations.LoadedMsg:
		var cmd tea.Cmd
		m.stations, cmd = m.stations.Update(msg)
		return m, cmd

	case banddetail.RecentLoadedMsg:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.overlay != OverlayNone {
		return m.handleOverlayKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		m.stream.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.signals.CursorUp()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.signals.CursorDown()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		band := m.signals.Selected()
		if band == "" {
			return m, nil
		}
		m.overlay = OverlayDetail
		return m, m.detail.Load(band)

	case key.Matches(msg, m.keys.Start):
		m.notice = ""
		m.errMsg = ""
		m.debugLog.Add("cmd", "start requested")
		return m, m.monitor.Start()

	case key.Matches(msg, m.keys.Stop):
		m.notice = ""
		m.errMsg = ""
		m.debugLog.Add("cmd", "stop requested")
		return m, m.monitor.Stop()

	case key.Matches(msg, m.keys.Clear):
		m.agg.Clear()
		m.syncStats()
		m.debugLog.Add("agg", "sample counter cleared")
		return m, nil

	case key.Matches(msg, m.keys.Stations):
		m.overlay = OverlayStations
		return m, m.stations.Init()

	case key.Matches(msg, m.keys.Debug):
		m.syncStats()
		m.overlay = OverlayDebug
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.overlay = OverlayHelp
		return m, nil
	}

	return m, nil
}

func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.overlay {
	case OverlayStations:
		// Esc closes the overlay unless the filter input wants it first.
		if key.Matches(msg, m.keys.Escape) && !m.stations.Searching() {
			m.overlay = OverlayNone
			return m, nil
		}
		var cmd tea.Cmd
		m.stations, cmd = m.stations.Update(msg)
		return m, cmd

	case OverlayDebug:
		switch {
		case key.Matches(msg, m.keys.Escape):
			m.overlay = OverlayNone
		case key.Matches(msg, m.keys.Up):
			m.debugLog.ScrollUp(1)
		case key.Matches(msg, m.keys.Down):
			m.debugLog.ScrollDown(1)
		}
		return m, nil

	default:
		if key.Matches(msg, m.keys.Escape) {
			m.overlay = OverlayNone
		}
		return m, nil
	}
}

// syncStats pushes the aggregator and stream counters into the views
// that display them.
func (m *Model) syncStats() {
	m.statusBar.SetStream(m.agg.Counter(), m.agg.Rate())
	m.signals.SetStats(m.agg.Counter(), m.agg.Rate())
	m.debugLog.SetCounters(m.stream.Counters(), m.weather.Failures())
}

// View renders the full interface.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	if m.overlay != OverlayNone {
		return m.renderOverlay()
	}

	sections := []string{m.statusBar.View()}

	if !m.connected {
		banner := lipgloss.NewStyle().
			Foreground(theme.ColorDanger).
			Bold(true).
			Render("  ✗ DISCONNECTED  Reconnecting...")
		sections = append(sections, banner)
	}

	sections = append(sections,
		m.signals.View(),
		"",
		m.wxPanel.View(),
		"",
		m.events.View(),
	)

	if m.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.ColorDanger).
			Render("  "+m.errMsg))
	} else if m.notice != "" {
		sections = append(sections, theme.StyleDimmed.Render("  "+m.notice))
	}

	sections = append(sections, theme.StyleDimmed.Render(
		"  j/k:band  enter:history  s:start  x:stop  c:clear  t:stations  d:debug  ?:help  q:quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderOverlay() string {
	var panel string
	switch m.overlay {
	case OverlayStations:
		panel = m.stations.View()
	case OverlayDetail:
		panel = m.detail.View()
	case OverlayHelp:
		panel = m.helpView.View()
	case OverlayDebug:
		panel = m.debugLog.View(m.width, m.height)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}

// --- Bubble Tea messages ---

// animTickMsg advances the amplitude bar animation one frame.
type animTickMsg time.Time

func animTick() tea.Cmd {
	return tea.Tick(time.Second/signals.AnimFPS, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}
