package conversion

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters and histograms for a conversion run. A run is a
// batch job, not a service, so the metrics live on a private registry that is
// dumped to a node exporter textfile when the run ends.
type Metrics struct {
	ZonesConverted     prometheus.Counter
	ZoneFailures       prometheus.Counter
	RecordsRead        prometheus.Counter
	PointsConverted    prometheus.Counter
	BatchRunning       prometheus.Gauge
	ConversionDuration prometheus.Histogram

	registry *prometheus.Registry
}

func NewMetrics() *Metrics {
	m := &Metrics{
		ZonesConverted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gopersa",
			Name:      "zones_converted_total",
			Help:      "Total zones converted and handed to the writer.",
		}),
		ZoneFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gopersa",
			Name:      "zone_failures_total",
			Help:      "Total zones that failed to convert or write.",
		}),
		RecordsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gopersa",
			Name:      "tap_records_read_total",
			Help:      "Total tap records decoded.",
		}),
		PointsConverted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gopersa",
			Name:      "surface_points_total",
			Help:      "Total surface points across converted zones.",
		}),
		BatchRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gopersa",
			Name:      "batch_running",
			Help:      "1 while a batch is converting, 0 otherwise.",
		}),
		ConversionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gopersa",
			Name:      "zone_conversion_duration_seconds",
			Help:      "Wall time to read, derive and assemble one zone.",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		}),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(
		m.ZonesConverted,
		m.ZoneFailures,
		m.RecordsRead,
		m.PointsConverted,
		m.BatchRunning,
		m.ConversionDuration,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile dumps the current values in the text exposition format
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
