package client

import "testing"

func TestIngestCounterAccumulates(t *testing.T) {
	a := NewAggregator()

	a.Ingest(map[string]SignalReading{
		"BAND_1": {Frequency: 300, Amplitude: 0.5},
		"BAND_2": {Frequency: 600, Amplitude: 0.4},
	})
	a.Ingest(map[string]SignalReading{
		"BAND_1": {Frequency: 301, Amplitude: 0.6},
		"BAND_2": {Frequency: 601, Amplitude: 0.3},
		"BAND_3": {Frequency: 1000, Amplitude: 0.2},
	})

	if a.Counter() != 5 {
		t.Errorf("Counter() = %d, want 5", a.Counter())
	}
}

func TestIngestLastWriteWins(t *testing.T) {
	a := NewAggregator()

	a.Ingest(map[string]SignalReading{"BAND_1": {Frequency: 300, Amplitude: 0.5, Phase: 1.0}})
	a.Ingest(map[string]SignalReading{"BAND_1": {Frequency: 305, Amplitude: 0.7, Phase: 2.0}})

	r, ok := a.Band("BAND_1")
	if !ok {
		t.Fatal("BAND_1 should be present")
	}
	if r.Amplitude != 0.7 || r.Frequency != 305 || r.Phase != 2.0 {
		t.Errorf("Band(BAND_1) = %+v, want latest reading", r)
	}
}

func TestClearKeepsReadings(t *testing.T) {
	a := NewAggregator()
	a.Ingest(map[string]SignalReading{
		"BAND_1": {Amplitude: 0.5},
		"BAND_2": {Amplitude: 0.4},
	})

	a.Clear()

	if a.Counter() != 0 {
		t.Errorf("Counter() after clear = %d, want 0", a.Counter())
	}
	if a.Rate() != 0 {
		t.Errorf("Rate() after clear = %v, want 0", a.Rate())
	}
	if _, ok := a.Band("BAND_1"); !ok {
		t.Error("BAND_1 should survive a clear")
	}
	if _, ok := a.Band("BAND_2"); !ok {
		t.Error("BAND_2 should survive a clear")
	}
}

func TestRateDerivation(t *testing.T) {
	tests := []struct {
		name    string
		samples int
		want    float64
	}{
		{"zero", 0, 0},
		{"below cap", 20, 2.0},
		{"at cap", 40, 4.0},
		{"capped", 50, 4.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAggregator()
			for i := 0; i < tt.samples; i++ {
				a.Ingest(map[string]SignalReading{"BAND_1": {Amplitude: 0.5}})
			}
			if a.Rate() != tt.want {
				t.Errorf("Rate() after %d samples = %v, want %v", tt.samples, a.Rate(), tt.want)
			}
		})
	}
}

func TestRateRebuildsAfterClear(t *testing.T) {
	a := NewAggregator()
	for i := 0; i < 50; i++ {
		a.Ingest(map[string]SignalReading{"BAND_1": {Amplitude: 0.5}})
	}
	if a.Rate() != 4.0 {
		t.Fatalf("Rate() = %v, want 4.0", a.Rate())
	}

	a.Clear()
	a.Ingest(map[string]SignalReading{"BAND_1": {Amplitude: 0.5}})

	if a.Rate() != 0.1 {
		t.Errorf("Rate() after clear and one sample = %v, want 0.1", a.Rate())
	}
}

func TestBandsSorted(t *testing.T) {
	a := NewAggregator()
	a.Ingest(map[string]SignalReading{
		"BAND_3": {},
		"BAND_1": {},
		"BAND_2": {},
	})

	got := a.Bands()
	want := []string{"BAND_1", "BAND_2", "BAND_3"}
	if len(got) != len(want) {
		t.Fatalf("Bands() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Bands()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
