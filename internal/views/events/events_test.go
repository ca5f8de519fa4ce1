package events

import (
	"fmt"
	"strings"
	"testing"
)

func TestAddFlattensAnomalies(t *testing.T) {
	m := New()
	m.Add(1700000000, []string{"BAND_1 amplitude spike", "BAND_3 phase jump"})

	if len(m.entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(m.entries))
	}
	if m.Total() != 2 {
		t.Errorf("Total() = %d, want 2", m.Total())
	}
	if m.entries[1].Message != "BAND_3 phase jump" {
		t.Errorf("entries[1] = %q", m.entries[1].Message)
	}
}

func TestMaxEntriesCapped(t *testing.T) {
	m := New()
	for i := 0; i < maxEntries+50; i++ {
		m.Add(float64(i), []string{fmt.Sprintf("hit %d", i)})
	}

	if len(m.entries) != maxEntries {
		t.Errorf("len(entries) = %d, want %d", len(m.entries), maxEntries)
	}
	if m.Total() != maxEntries+50 {
		t.Errorf("Total() = %d, want %d", m.Total(), maxEntries+50)
	}
	first := m.entries[0].Message
	if first != fmt.Sprintf("hit %d", 50) {
		t.Errorf("oldest retained = %q, want hit 50", first)
	}
}

func TestViewEmpty(t *testing.T) {
	m := New()
	m.Width = 60
	if !strings.Contains(m.View(), "No anomalies") {
		t.Error("empty view should show the placeholder")
	}
}

func TestViewShowsRecentHits(t *testing.T) {
	m := New()
	m.Width = 80
	for i := 0; i < 8; i++ {
		m.Add(float64(1700000000+i), []string{fmt.Sprintf("hit %d", i)})
	}

	out := m.View()
	if strings.Contains(out, "hit 0") {
		t.Error("oldest hit should have scrolled out of view")
	}
	if !strings.Contains(out, "hit 7") {
		t.Error("newest hit should be visible")
	}
	if !strings.Contains(out, "8 total") {
		t.Error("view should show the total count")
	}
}
