package sim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// BandDef describes one monitored frequency band.
type BandDef struct {
	Name string
	Low  float64
	High float64
}

// DefaultBands matches the four-channel receiver configuration.
var DefaultBands = []BandDef{
	{Name: "BAND_1", Low: 200, High: 400},
	{Name: "BAND_2", Low: 400, High: 800},
	{Name: "BAND_3", Low: 800, High: 1200},
	{Name: "BAND_4", Low: 1200, High: 2000},
}

// BandNames returns the names of defs in order.
func BandNames(defs []BandDef) []string {
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	return names
}

var anomalyCauses = []string{
	"amplitude spike exceeds baseline",
	"sudden phase jump",
	"signal fade below noise floor",
	"possible sudden ionospheric disturbance",
}

// Generator produces synthetic band readings and broadcasts them while
// monitoring is running.
type Generator struct {
	hub     *Hub
	history *History
	metrics *Metrics

	bands         []BandDef
	interval      time.Duration
	anomalyChance float64

	mu      sync.Mutex
	running bool
	epoch   time.Time

	frames atomic.Uint64
}

func NewGenerator(hub *Hub, history *History, metrics *Metrics, bands []BandDef, interval time.Duration, anomalyChance float64) *Generator {
	if interval <= 0 {
		interval = time.Second
	}
	return &Generator{
		hub:           hub,
		history:       history,
		metrics:       metrics,
		bands:         bands,
		interval:      interval,
		anomalyChance: anomalyChance,
		epoch:         time.Now(),
	}
}

// Start begins broadcasting. It fails when monitoring already runs, so
// repeated start commands surface an error to the caller.
func (g *Generator) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.running {
		return errors.New("monitoring already running")
	}
	g.running = true
	g.metrics.MonitoringActive.Set(1)
	return nil
}

// Stop halts broadcasting. It fails when monitoring is not running.
func (g *Generator) Stop() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.running {
		return errors.New("monitoring is not running")
	}
	g.running = false
	g.metrics.MonitoringActive.Set(0)
	return nil
}

func (g *Generator) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}

// Frames returns the number of data frames broadcast so far.
func (g *Generator) Frames() uint64 {
	return g.frames.Load()
}

// Run ticks until ctx is cancelled. Ticks while stopped are skipped,
// so start/stop only gates the output without restarting the waveform.
func (g *Generator) Run(ctx context.Context) {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !g.Running() {
				continue
			}
			g.emit(time.Now())
		}
	}
}

func (g *Generator) emit(now time.Time) {
	frame := g.frame(now)
	g.hub.Broadcast(frame)
	g.history.Push(frame)
	g.frames.Add(1)
	g.metrics.FramesTotal.Inc()

	if rand.Float64() < g.anomalyChance {
		anomaly := g.anomaly(now)
		g.hub.Broadcast(anomaly)
		g.metrics.AnomaliesTotal.Inc()
	}
}

// frame synthesizes one reading per band. Amplitude rides a slow
// sinusoid with gaussian noise, frequency jitters around the band
// center.
func (g *Generator) frame(now time.Time) DataFrame {
	t := now.Sub(g.epoch).Seconds()

	signals := make(map[string]SignalPoint, len(g.bands))
	for i, band := range g.bands {
		offset := float64(i) * math.Pi / 2
		center := (band.Low + band.High) / 2
		spread := (band.High - band.Low) / 2

		amp := 0.5 + 0.3*math.Sin(2*math.Pi*0.01*t+offset) + rand.NormFloat64()*0.05
		amp = math.Max(0, math.Min(1, amp))

		freq := center + spread*0.1*math.Sin(2*math.Pi*0.003*t+offset) + rand.NormFloat64()*2
		freq = math.Max(band.Low, math.Min(band.High, freq))

		phase := math.Pi * math.Sin(2*math.Pi*0.02*t+offset)

		signals[band.Name] = SignalPoint{
			Frequency: freq,
			Amplitude: amp,
			Phase:     phase,
		}
	}

	return DataFrame{
		Type:      frameTypeData,
		Timestamp: float64(now.UnixNano()) / 1e9,
		Signals:   signals,
	}
}

func (g *Generator) anomaly(now time.Time) AnomalyFrame {
	band := g.bands[rand.Intn(len(g.bands))]
	cause := anomalyCauses[rand.Intn(len(anomalyCauses))]

	return AnomalyFrame{
		Type:      frameTypeAnomaly,
		Timestamp: float64(now.UnixNano()) / 1e9,
		Anomalies: []string{fmt.Sprintf("%s: %s", band.Name, cause)},
	}
}
