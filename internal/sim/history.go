package sim

import (
	"sort"
	"sync"
	"time"
)

// Sample is one stored band reading.
type Sample struct {
	Timestamp float64 `json:"timestamp"`
	Frequency float64 `json:"frequency"`
	Amplitude float64 `json:"amplitude"`
	Phase     float64 `json:"phase"`
}

type ring struct {
	buf  []Sample
	head int
	size int
}

func (r *ring) push(s Sample) {
	r.buf[r.head] = s
	r.head = (r.head + 1) % len(r.buf)
	if r.size < len(r.buf) {
		r.size++
	}
}

// at returns the i-th stored sample, oldest first.
func (r *ring) at(i int) Sample {
	idx := (r.head - r.size + i + len(r.buf)) % len(r.buf)
	return r.buf[idx]
}

// History keeps a bounded ring of samples per band. Bands are fixed at
// construction so an unknown band can be told apart from a known band
// with an empty window.
type History struct {
	mu       sync.RWMutex
	capacity int
	bands    map[string]*ring
}

func NewHistory(capacity int, bands []string) *History {
	if capacity <= 0 {
		capacity = 3600
	}
	h := &History{
		capacity: capacity,
		bands:    make(map[string]*ring, len(bands)),
	}
	for _, name := range bands {
		h.bands[name] = &ring{buf: make([]Sample, capacity)}
	}
	return h
}

// Push appends every band reading of a frame to its ring.
func (h *History) Push(frame DataFrame) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for band, sig := range frame.Signals {
		r, ok := h.bands[band]
		if !ok {
			r = &ring{buf: make([]Sample, h.capacity)}
			h.bands[band] = r
		}
		r.push(Sample{
			Timestamp: frame.Timestamp,
			Frequency: sig.Frequency,
			Amplitude: sig.Amplitude,
			Phase:     sig.Phase,
		})
	}
}

// Recent returns the samples for band newer than the window cutoff,
// oldest first. The second result is false for bands the history has
// never heard of.
func (h *History) Recent(band string, minutes int) ([]Sample, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	r, ok := h.bands[band]
	if !ok {
		return nil, false
	}

	cutoff := float64(time.Now().Add(-time.Duration(minutes) * time.Minute).Unix())
	out := make([]Sample, 0, r.size)
	for i := 0; i < r.size; i++ {
		s := r.at(i)
		if s.Timestamp >= cutoff {
			out = append(out, s)
		}
	}
	return out, true
}

// Bands returns the known band names, sorted.
func (h *History) Bands() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.bands))
	for name := range h.bands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
