package client

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// MonitorStatus is the last confirmed state of the backend capture loop.
type MonitorStatus int

const (
	MonitorStopped MonitorStatus = iota
	MonitorActive
)

func (s MonitorStatus) String() string {
	if s == MonitorActive {
		return "active"
	}
	return "stopped"
}

// MonitorController issues start and stop commands and tracks the confirmed
// state. Status changes only on an acknowledged command; a failed or refused
// command leaves it untouched. Commands are sent as-is with no local guard,
// so starting twice is the backend's error to report.
type MonitorController struct {
	api *APIClient

	mu     sync.Mutex
	status MonitorStatus
}

// NewMonitorController assumes the backend starts out stopped.
func NewMonitorController(api *APIClient) *MonitorController {
	return &MonitorController{api: api, status: MonitorStopped}
}

// MonitorChangedMsg is sent when a command is acknowledged.
type MonitorChangedMsg struct {
	Status  MonitorStatus
	Message string
}

// MonitorErrMsg is sent when a command fails. The tracked status is unchanged.
type MonitorErrMsg struct {
	Op  string
	Err error
}

// Start returns a command that asks the backend to begin capturing.
func (m *MonitorController) Start() tea.Cmd {
	return func() tea.Msg {
		ack, err := m.api.StartMonitoring()
		if err != nil {
			return MonitorErrMsg{Op: "start", Err: err}
		}
		m.mu.Lock()
		m.status = MonitorActive
		m.mu.Unlock()
		return MonitorChangedMsg{Status: MonitorActive, Message: ack.Message}
	}
}

// Stop returns a command that asks the backend to stop capturing.
func (m *MonitorController) Stop() tea.Cmd {
	return func() tea.Msg {
		ack, err := m.api.StopMonitoring()
		if err != nil {
			return MonitorErrMsg{Op: "stop", Err: err}
		}
		m.mu.Lock()
		m.status = MonitorStopped
		m.mu.Unlock()
		return MonitorChangedMsg{Status: MonitorStopped, Message: ack.Message}
	}
}

// Status returns the last confirmed state.
func (m *MonitorController) Status() MonitorStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}
