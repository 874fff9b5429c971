package compiler

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records compile runs in a registry owned by the instance.
type Metrics struct {
	registry *prometheus.Registry

	CompilesTotal *prometheus.CounterVec
	PhaseDuration *prometheus.HistogramVec
	Entities      *prometheus.GaugeVec
	Triples       prometheus.Gauge
}

// NewMetrics creates and registers the compiler metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		CompilesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "semproto",
				Subsystem: "compiler",
				Name:      "compiles_total",
				Help:      "Total number of compile runs",
			},
			[]string{"status"},
		),

		PhaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "semproto",
				Subsystem: "compiler",
				Name:      "phase_duration_seconds",
				Help:      "Duration of each compile phase in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"phase"},
		),

		Entities: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "semproto",
				Subsystem: "schema",
				Name:      "entities",
				Help:      "Number of entities emitted by the last compile",
			},
			[]string{"kind"},
		),

		Triples: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "semproto",
				Subsystem: "store",
				Name:      "triples",
				Help:      "Number of distinct triples loaded by the last compile",
			},
		),
	}

	m.registry.MustRegister(m.CompilesTotal, m.PhaseDuration, m.Entities, m.Triples)
	return m
}

// WriteTextfile writes the current metric values in the text exposition
// format, for pickup by a node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) observeResult(r *Result) {
	m.Entities.WithLabelValues("class").Set(float64(r.Classes))
	m.Entities.WithLabelValues("enumeration").Set(float64(r.Enumerations))
	m.Entities.WithLabelValues("property").Set(float64(r.Properties))
	m.Triples.Set(float64(r.Triples))
}
