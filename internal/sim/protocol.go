// Package sim implements the SuperSID backend simulator: a synthetic
// VLF signal generator with the same wire protocol as the real
// receiver backend.
package sim

const (
	frameTypeData    = "vlf_data"
	frameTypeAnomaly = "anomaly"
)

// SignalPoint is one band reading inside a data frame.
type SignalPoint struct {
	Frequency float64 `json:"frequency"`
	Amplitude float64 `json:"amplitude"`
	Phase     float64 `json:"phase"`
}

// DataFrame is the once-per-interval broadcast of all band readings.
type DataFrame struct {
	Type      string                 `json:"type"`
	Timestamp float64                `json:"timestamp"`
	Signals   map[string]SignalPoint `json:"signals"`
}

// AnomalyFrame reports detected signal disturbances.
type AnomalyFrame struct {
	Type      string   `json:"type"`
	Timestamp float64  `json:"timestamp"`
	Anomalies []string `json:"anomalies"`
}

// CommandAck is the response body for accepted start/stop commands.
type CommandAck struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RecentData is the response body for the band history endpoint.
type RecentData struct {
	Band    string   `json:"band"`
	Samples []Sample `json:"samples"`
	Count   int      `json:"count"`
}
