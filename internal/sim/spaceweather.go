package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

// Summary is the space weather payload served to clients.
type Summary struct {
	Status            string   `json:"status"`
	Alerts            []string `json:"alerts"`
	KpIndex           float64  `json:"kp_index"`
	SolarWindSpeed    string   `json:"solar_wind_speed"`
	GeomagneticStatus string   `json:"geomagnetic_status"`
	LastUpdate        string   `json:"last_update"`
}

// SpaceWeather simulates geomagnetic conditions with a bounded random
// walk over the Kp index and solar wind speed.
type SpaceWeather struct {
	mu      sync.RWMutex
	kp      float64
	wind    float64
	updated time.Time
}

func NewSpaceWeather() *SpaceWeather {
	return &SpaceWeather{
		kp:      1.5 + rand.Float64()*2.5,
		wind:    330 + rand.Float64()*120,
		updated: time.Now(),
	}
}

// Run advances the walk until ctx is cancelled.
func (w *SpaceWeather) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.advance()
		}
	}
}

func (w *SpaceWeather) advance() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.kp += (rand.Float64() - 0.5) * 0.8
	w.kp = math.Max(0, math.Min(9, w.kp))

	w.wind += (rand.Float64() - 0.5) * 60
	w.wind = math.Max(280, math.Min(750, w.wind))

	w.updated = time.Now()
}

// Summary returns the current conditions.
func (w *SpaceWeather) Summary() Summary {
	w.mu.RLock()
	defer w.mu.RUnlock()

	status := statusForKp(w.kp)

	alerts := []string{}
	if w.kp >= 6 {
		alerts = append(alerts, fmt.Sprintf("Geomagnetic storm in progress (Kp=%.1f)", w.kp))
	}
	if w.wind > 600 {
		alerts = append(alerts, fmt.Sprintf("High speed solar wind stream: %.0f km/s", w.wind))
	}

	return Summary{
		Status:            status,
		Alerts:            alerts,
		KpIndex:           math.Round(w.kp*10) / 10,
		SolarWindSpeed:    fmt.Sprintf("%.0f km/s", w.wind),
		GeomagneticStatus: geomagneticForKp(w.kp),
		LastUpdate:        w.updated.UTC().Format(time.RFC3339),
	}
}

func statusForKp(kp float64) string {
	switch {
	case kp < 4:
		return "normal"
	case kp < 6:
		return "moderate"
	case kp < 8:
		return "storm"
	default:
		return "severe"
	}
}

func geomagneticForKp(kp float64) string {
	switch {
	case kp < 3:
		return "quiet"
	case kp < 5:
		return "unsettled"
	case kp < 7:
		return "active"
	default:
		return "storm"
	}
}
