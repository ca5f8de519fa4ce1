package sim

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the simulator's Prometheus collectors on a private
// registry, so tests can build as many instances as they like.
type Metrics struct {
	registry *prometheus.Registry

	FramesTotal      prometheus.Counter
	AnomaliesTotal   prometheus.Counter
	Commands         *prometheus.CounterVec
	MonitoringActive prometheus.Gauge
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		FramesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "supersid",
			Name:      "frames_total",
			Help:      "Data frames broadcast to stream clients.",
		}),
		AnomaliesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "supersid",
			Name:      "anomalies_total",
			Help:      "Anomaly frames broadcast to stream clients.",
		}),
		Commands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "supersid",
			Name:      "commands_total",
			Help:      "Start/stop commands by outcome.",
		}, []string{"command", "outcome"}),
		MonitoringActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "supersid",
			Name:      "monitoring_active",
			Help:      "1 while the generator is broadcasting.",
		}),
	}
}

// TrackClients registers a gauge backed by the hub's client count.
func (m *Metrics) TrackClients(count func() int) {
	promauto.With(m.registry).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "supersid",
		Name:      "stream_clients",
		Help:      "Connected WebSocket stream clients.",
	}, func() float64 {
		return float64(count())
	})
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
