package sim

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	srv *Server
	gen *Generator
	hub *Hub
	ts  *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	metrics := NewMetrics()
	hub := NewHub()
	history := NewHistory(100, BandNames(DefaultBands))
	gen := NewGenerator(hub, history, metrics, DefaultBands, time.Second, 0)
	weather := NewSpaceWeather()

	stations, err := OpenStationStore(filepath.Join(t.TempDir(), "stations.db"))
	require.NoError(t, err)
	t.Cleanup(func() { stations.Close() })

	srv := NewServer(false, hub, gen, history, weather, stations, metrics)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &testEnv{srv: srv, gen: gen, hub: hub, ts: ts}
}

func (e *testEnv) post(t *testing.T, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(e.ts.URL+path, "application/json", nil)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, body
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(e.ts.URL + path)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, body
}

func TestStartCommand(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.post(t, "/api/start")

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var ack CommandAck
	require.NoError(t, json.Unmarshal(body, &ack))
	assert.Equal(t, "started", ack.Status)
	assert.Equal(t, "VLF monitoring started", ack.Message)
	assert.True(t, env.gen.Running())
}

func TestDoubleStartRejected(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.post(t, "/api/start")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := env.post(t, "/api/start")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var detail struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Equal(t, "monitoring already running", detail.Detail)
	assert.True(t, env.gen.Running(), "a rejected start must not flip the state")
}

func TestStopWithoutStartRejected(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.post(t, "/api/stop")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var detail struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Equal(t, "monitoring is not running", detail.Detail)
}

func TestStartStopRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.post(t, "/api/start")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := env.post(t, "/api/stop")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var ack CommandAck
	require.NoError(t, json.Unmarshal(body, &ack))
	assert.Equal(t, "stopped", ack.Status)
	assert.Equal(t, "VLF monitoring stopped", ack.Message)
	assert.False(t, env.gen.Running())
}

func TestStatusEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/api/status")

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var status map[string]any
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, false, status["monitoring_active"])
	assert.Equal(t, 0.0, status["clients"])
	assert.Contains(t, status, "uptime_seconds")
	assert.Contains(t, status, "cpu_percent")
	assert.Contains(t, status, "memory_percent")
	assert.Len(t, status["bands"], len(DefaultBands))
}

func TestSpaceWeatherEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/api/space-weather/summary")

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var sum Summary
	require.NoError(t, json.Unmarshal(body, &sum))
	assert.Regexp(t, `^\d+ km/s$`, sum.SolarWindSpeed)
	assert.NotEmpty(t, sum.Status)
}

func TestStationsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/stations?type=VLF")

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var list []Station
	require.NoError(t, json.Unmarshal(body, &list))
	require.NotEmpty(t, list)
	for _, st := range list {
		assert.Equal(t, "VLF", st.Type)
	}
}

func TestStationsTrailingSlash(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/stations/?name=cutler")

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var list []Station
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "NAA (Cutler)", list[0].Name)
}

func TestRecentUnknownBand(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/api/data/recent/BAND_9")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "unknown band")
}

func TestRecentEmptyWindow(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/api/data/recent/BAND_1")

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var data RecentData
	require.NoError(t, json.Unmarshal(body, &data))
	assert.Equal(t, "BAND_1", data.Band)
	assert.Equal(t, 0, data.Count)
	assert.NotNil(t, data.Samples, "samples must marshal as an array, not null")
}

func TestRecentReturnsSamples(t *testing.T) {
	env := newTestEnv(t)
	env.gen.emit(time.Now())

	resp, body := env.get(t, "/api/data/recent/BAND_2?minutes=30")

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var data RecentData
	require.NoError(t, json.Unmarshal(body, &data))
	require.Equal(t, 1, data.Count)
	assert.GreaterOrEqual(t, data.Samples[0].Amplitude, 0.0)
	assert.LessOrEqual(t, data.Samples[0].Amplitude, 1.0)
}

func TestRecentRejectsBadMinutes(t *testing.T) {
	env := newTestEnv(t)

	for _, q := range []string{"0", "-5", "abc", "100000"} {
		resp, _ := env.get(t, "/api/data/recent/BAND_1?minutes="+q)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "minutes=%s", q)
	}
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/health")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "ok")
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.post(t, "/api/start")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := env.get(t, "/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "supersid_monitoring_active 1")
	assert.Contains(t, string(body), `supersid_commands_total{command="start",outcome="ok"} 1`)
}

func TestStreamDeliversFrames(t *testing.T) {
	env := newTestEnv(t)

	wsURL := "ws" + strings.TrimPrefix(env.ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return env.hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond, "hub never registered the client")

	env.gen.emit(time.Now())

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var frame DataFrame
	require.NoError(t, json.Unmarshal(data, &frame))
	assert.Equal(t, "vlf_data", frame.Type)
	assert.Len(t, frame.Signals, len(DefaultBands))
}

func TestStreamClientRemovedOnClose(t *testing.T) {
	env := newTestEnv(t)

	wsURL := "ws" + strings.TrimPrefix(env.ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return env.hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool {
		return env.hub.ClientCount() == 0
	}, time.Second, 10*time.Millisecond, "hub should drop the client after close")
}
