// Package client provides the WebSocket and HTTP clients for the SuperSID backend.
// Types mirror the backend wire protocol without importing backend packages.
package client

// FrameType identifies the kind of WebSocket frame.
type FrameType string

const (
	FrameVLFData FrameType = "vlf_data"
	FrameAnomaly FrameType = "anomaly"
)

// frameEnvelope carries just enough of a frame to dispatch on its type.
type frameEnvelope struct {
	Type FrameType `json:"type"`
}

// SignalReading is one band's most recent spectral measurement.
type SignalReading struct {
	Frequency float64 `json:"frequency"`
	Amplitude float64 `json:"amplitude"`
	Phase     float64 `json:"phase"`
}

// SignalsFrame is a vlf_data frame: one reading per monitored band.
type SignalsFrame struct {
	Type      FrameType                `json:"type"`
	Timestamp float64                  `json:"timestamp"`
	Signals   map[string]SignalReading `json:"signals"`
}

// AnomalyFrame reports detector hits for one capture window.
type AnomalyFrame struct {
	Type      FrameType `json:"type"`
	Timestamp float64   `json:"timestamp"`
	Anomalies []string  `json:"anomalies"`
}

// --- HTTP response types ---

// CommandAck is returned by /api/start and /api/stop on success.
type CommandAck struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// apiError mirrors the backend error body on non-2xx responses.
type apiError struct {
	Detail string `json:"detail"`
}

// SpaceWeatherSnapshot is returned by /api/space-weather/summary. Fields the
// backend could not populate arrive as nil or empty and render as placeholders.
type SpaceWeatherSnapshot struct {
	Status            string   `json:"status"`
	Alerts            []string `json:"alerts"`
	KpIndex           *float64 `json:"kp_index"`
	SolarWindSpeed    string   `json:"solar_wind_speed"`
	GeomagneticStatus string   `json:"geomagnetic_status"`
	LastUpdate        string   `json:"last_update"`
}

// Station is one row from /stations/.
type Station struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Status    string  `json:"status"`
	Frequency float64 `json:"frequency"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HistorySample is one archived reading from /api/data/recent/{band}.
type HistorySample struct {
	Timestamp float64 `json:"timestamp"`
	Frequency float64 `json:"frequency"`
	Amplitude float64 `json:"amplitude"`
	Phase     float64 `json:"phase"`
}

// RecentData is the response shape of /api/data/recent/{band}.
type RecentData struct {
	Band    string          `json:"band"`
	Samples []HistorySample `json:"samples"`
	Count   int             `json:"count"`
}
