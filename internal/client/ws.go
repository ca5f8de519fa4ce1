package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
)

// reconnectDelay is the fixed wait between a connection loss and the next
// dial attempt. There is no backoff and no retry limit.
const reconnectDelay = 3 * time.Second

// ConnStatus describes the stream connection lifecycle.
type ConnStatus int

const (
	StatusConnecting ConnStatus = iota
	StatusOpen
	StatusClosed
)

func (s ConnStatus) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusOpen:
		return "open"
	default:
		return "closed"
	}
}

// StreamCounters snapshots the stream health counters.
type StreamCounters struct {
	Frames         uint64
	DecodeFailures uint64
	Ignored        uint64
}

// StreamClient manages the WebSocket connection to the SuperSID backend.
type StreamClient struct {
	url string

	mu             sync.Mutex
	conn           *websocket.Conn
	status         ConnStatus
	retryDelay     time.Duration
	frames         uint64
	decodeFailures uint64
	ignored        uint64
}

// NewStreamClient creates a client for the given ws:// or wss:// URL.
func NewStreamClient(wsURL string) *StreamClient {
	return &StreamClient{url: wsURL, status: StatusClosed, retryDelay: reconnectDelay}
}

// StreamURL derives the WebSocket endpoint from a server base URL.
// http maps to ws, https to wss; the stream always lives at /ws.
func StreamURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse server url %q: %w", base, err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q in server url %q", u.Scheme, base)
	}
	if u.Host == "" {
		return "", fmt.Errorf("missing host in server url %q", base)
	}
	u.Path = "/ws"
	u.RawQuery = ""
	return u.String(), nil
}

// --- Bubble Tea messages ---

// StreamConnectedMsg is sent when the WebSocket connects.
type StreamConnectedMsg struct{}

// StreamDisconnectedMsg is sent when the connection drops or a dial fails.
type StreamDisconnectedMsg struct{ Err error }

// StreamSignalsMsg delivers the latest reading for each band.
type StreamSignalsMsg struct {
	Timestamp float64
	Signals   map[string]SignalReading
}

// StreamAnomalyMsg delivers detector hits from the backend.
type StreamAnomalyMsg struct {
	Timestamp float64
	Anomalies []string
}

// Connect returns a Bubble Tea command that dials the backend immediately.
func (c *StreamClient) Connect(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		return c.dial(ctx)
	}
}

// Reconnect returns a command that waits the fixed reconnect delay and dials
// once. The update loop schedules exactly one Reconnect per disconnect, so a
// dial failure feeds back into another StreamDisconnectedMsg rather than
// looping here.
func (c *StreamClient) Reconnect(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(c.retryDelay):
		}
		return c.dial(ctx)
	}
}

func (c *StreamClient) dial(ctx context.Context) tea.Msg {
	c.mu.Lock()
	c.status = StatusConnecting
	c.mu.Unlock()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		c.mu.Lock()
		c.status = StatusClosed
		c.mu.Unlock()
		log.Printf("stream dial %s: %v (retry in %v)", c.url, err, c.retryDelay)
		return StreamDisconnectedMsg{Err: err}
	}

	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
	}
	c.conn = conn
	c.status = StatusOpen
	c.mu.Unlock()

	return StreamConnectedMsg{}
}

// ReadLoop returns a command that reads frames from the connection. It should
// be started after StreamConnectedMsg and re-issued after every frame message.
func (c *StreamClient) ReadLoop(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn == nil {
			return StreamDisconnectedMsg{Err: fmt.Errorf("no connection")}
		}

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				c.mu.Lock()
				if c.conn == conn {
					c.conn = nil
				}
				c.status = StatusClosed
				c.mu.Unlock()
				conn.Close()
				return StreamDisconnectedMsg{Err: err}
			}

			if msg := c.decodeFrame(data); msg != nil {
				return msg
			}
		}
	}
}

// decodeFrame turns one wire frame into a Bubble Tea message. Malformed
// frames are logged, counted and dropped. Frames with an unrecognised type
// are counted and dropped without logging.
func (c *StreamClient) decodeFrame(data []byte) tea.Msg {
	var env frameEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		c.recordDecodeFailure(err)
		return nil
	}

	switch env.Type {
	case FrameVLFData:
		var f SignalsFrame
		if err := json.Unmarshal(data, &f); err != nil {
			c.recordDecodeFailure(err)
			return nil
		}
		c.mu.Lock()
		c.frames++
		c.mu.Unlock()
		return StreamSignalsMsg{Timestamp: f.Timestamp, Signals: f.Signals}

	case FrameAnomaly:
		var f AnomalyFrame
		if err := json.Unmarshal(data, &f); err != nil {
			c.recordDecodeFailure(err)
			return nil
		}
		c.mu.Lock()
		c.frames++
		c.mu.Unlock()
		return StreamAnomalyMsg{Timestamp: f.Timestamp, Anomalies: f.Anomalies}

	default:
		c.mu.Lock()
		c.ignored++
		c.mu.Unlock()
		return nil
	}
}

func (c *StreamClient) recordDecodeFailure(err error) {
	c.mu.Lock()
	c.decodeFailures++
	n := c.decodeFailures
	c.mu.Unlock()
	log.Printf("stream decode error (%d total): %v", n, err)
}

// Status reports the current connection lifecycle state.
func (c *StreamClient) Status() ConnStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Counters snapshots the stream health counters.
func (c *StreamClient) Counters() StreamCounters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return StreamCounters{Frames: c.frames, DecodeFailures: c.decodeFailures, Ignored: c.ignored}
}

// Close tears down the active connection, if any.
func (c *StreamClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.status = StatusClosed
}
