package client

import (
	"context"
	"log"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// pollInterval is the fixed wait between space weather refreshes.
const pollInterval = 10 * time.Minute

// SpaceWeatherMsg carries the current snapshot. After a failed poll it
// carries the previous snapshot unchanged, which is nil before the first
// success.
type SpaceWeatherMsg struct {
	Snapshot *SpaceWeatherSnapshot
}

// SpaceWeatherPoller refreshes the space weather summary on a fixed interval.
// A failed refresh keeps the previous snapshot whole rather than blanking
// individual fields.
type SpaceWeatherPoller struct {
	api      *APIClient
	interval time.Duration

	mu       sync.Mutex
	snapshot *SpaceWeatherSnapshot
	failures uint64
}

// NewSpaceWeatherPoller creates a poller with the standard refresh interval.
func NewSpaceWeatherPoller(api *APIClient) *SpaceWeatherPoller {
	return &SpaceWeatherPoller{api: api, interval: pollInterval}
}

// Fetch returns a command that refreshes immediately.
func (p *SpaceWeatherPoller) Fetch(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		return p.poll()
	}
}

// Next returns a command that waits one interval and then refreshes. The
// update loop re-arms it after every SpaceWeatherMsg.
func (p *SpaceWeatherPoller) Next(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(p.interval):
		}
		return p.poll()
	}
}

func (p *SpaceWeatherPoller) poll() tea.Msg {
	snap, err := p.api.SpaceWeather()
	if err != nil {
		p.mu.Lock()
		p.failures++
		n := p.failures
		prev := p.snapshot
		p.mu.Unlock()
		log.Printf("space weather poll failed (%d total): %v", n, err)
		return SpaceWeatherMsg{Snapshot: prev}
	}
	p.mu.Lock()
	p.snapshot = snap
	p.mu.Unlock()
	return SpaceWeatherMsg{Snapshot: snap}
}

// Snapshot returns the most recent successful snapshot, or nil.
func (p *SpaceWeatherPoller) Snapshot() *SpaceWeatherSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

// Failures returns the number of failed polls since startup.
func (p *SpaceWeatherPoller) Failures() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failures
}
