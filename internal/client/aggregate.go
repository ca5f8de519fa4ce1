package client

import (
	"math"
	"sort"
)

// maxRate caps the derived sample rate estimate.
const maxRate = 4.0

// Aggregator keeps the latest reading per band plus a running sample counter.
// It is mutated only from the program's update loop and needs no locking.
type Aggregator struct {
	bands   map[string]SignalReading
	counter int
	rate    float64
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{bands: make(map[string]SignalReading)}
}

// Ingest merges one signals frame. Each band's reading overwrites the
// previous one and the counter grows by the number of bands in the frame.
func (a *Aggregator) Ingest(signals map[string]SignalReading) {
	for band, r := range signals {
		a.bands[band] = r
	}
	a.counter += len(signals)
	a.rate = math.Min(maxRate, float64(a.counter)/10.0)
}

// Clear resets the counter and the derived rate. Band readings survive so
// the display keeps showing the last known values.
func (a *Aggregator) Clear() {
	a.counter = 0
	a.rate = 0
}

// Band returns the latest reading for one band.
func (a *Aggregator) Band(name string) (SignalReading, bool) {
	r, ok := a.bands[name]
	return r, ok
}

// Bands returns the known band names in sorted order.
func (a *Aggregator) Bands() []string {
	names := make([]string, 0, len(a.bands))
	for name := range a.bands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Counter returns the number of samples ingested since the last clear.
func (a *Aggregator) Counter() int { return a.counter }

// Rate returns the estimated samples per second, capped at 4.0.
func (a *Aggregator) Rate() float64 { return a.rate }
