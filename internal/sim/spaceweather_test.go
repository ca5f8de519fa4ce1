package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForKp(t *testing.T) {
	tests := []struct {
		kp   float64
		want string
	}{
		{0, "normal"},
		{3.9, "normal"},
		{4, "moderate"},
		{5.9, "moderate"},
		{6, "storm"},
		{7.9, "storm"},
		{8, "severe"},
		{9, "severe"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusForKp(tt.kp), "kp=%v", tt.kp)
	}
}

func TestGeomagneticForKp(t *testing.T) {
	tests := []struct {
		kp   float64
		want string
	}{
		{0, "quiet"},
		{2.9, "quiet"},
		{3, "unsettled"},
		{4.9, "unsettled"},
		{5, "active"},
		{6.9, "active"},
		{7, "storm"},
		{9, "storm"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, geomagneticForKp(tt.kp), "kp=%v", tt.kp)
	}
}

func TestSummaryShape(t *testing.T) {
	w := NewSpaceWeather()
	sum := w.Summary()

	assert.GreaterOrEqual(t, sum.KpIndex, 0.0)
	assert.LessOrEqual(t, sum.KpIndex, 9.0)
	assert.Regexp(t, `^\d+ km/s$`, sum.SolarWindSpeed)
	assert.NotEmpty(t, sum.Status)
	assert.NotEmpty(t, sum.GeomagneticStatus)
	assert.NotNil(t, sum.Alerts, "alerts must marshal as an array, not null")

	_, err := time.Parse(time.RFC3339, sum.LastUpdate)
	require.NoError(t, err, "last_update must be RFC 3339")
}

func TestAdvanceStaysInBounds(t *testing.T) {
	w := NewSpaceWeather()
	w.kp = 9
	w.wind = 750

	for i := 0; i < 100; i++ {
		w.advance()
		assert.GreaterOrEqual(t, w.kp, 0.0)
		assert.LessOrEqual(t, w.kp, 9.0)
		assert.GreaterOrEqual(t, w.wind, 280.0)
		assert.LessOrEqual(t, w.wind, 750.0)
	}
}

func TestStormRaisesAlert(t *testing.T) {
	w := NewSpaceWeather()
	w.kp = 7.2
	w.wind = 400

	sum := w.Summary()

	assert.Equal(t, "storm", sum.Status)
	require.Len(t, sum.Alerts, 1)
	assert.Contains(t, sum.Alerts[0], "Geomagnetic storm")
}

func TestQuietConditionsNoAlerts(t *testing.T) {
	w := NewSpaceWeather()
	w.kp = 1.5
	w.wind = 350

	sum := w.Summary()

	assert.Equal(t, "normal", sum.Status)
	assert.Empty(t, sum.Alerts)
}
