// Package metrics provides Prometheus metrics for the scan planner.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the scan planner.
type Metrics struct {
	// Scheduling metrics
	SchedulesTotal   *prometheus.CounterVec
	ScanUnitsEmitted *prometheus.HistogramVec
	HostsAssigned    *prometheus.HistogramVec
	ScheduleDuration *prometheus.HistogramVec

	// Placement metrics
	BytesPerHost     *prometheus.HistogramVec
	ActivePartitions *prometheus.GaugeVec
}

// Config holds metrics configuration.
type Config struct {
	Enabled bool
	Address string // Address for metrics HTTP server (e.g., ":9090")
}

var defaultMetrics *Metrics

// Init initializes the metrics package with global metrics.
// Call this once at startup.
func Init(namespace string) *Metrics {
	if namespace == "" {
		namespace = "quarry_planner"
	}

	m := &Metrics{
		SchedulesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "schedules_total",
				Help:      "Total number of scan scheduling runs",
			},
			[]string{"table"},
		),
		ScanUnitsEmitted: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "scan_units_emitted",
				Help:      "Number of scan units emitted per scheduling run",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1 to ~512
			},
			[]string{"table"},
		),
		HostsAssigned: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "hosts_assigned",
				Help:      "Number of hosts holding work after greedy assignment",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"table"},
		),
		ScheduleDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "schedule_duration_seconds",
				Help:      "Time to compute one placement",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~1.6s
			},
			[]string{"table"},
		),
		BytesPerHost: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "bytes_per_host",
				Help:      "Bytes assigned to each surviving host",
				Buckets:   prometheus.ExponentialBuckets(1024*1024, 4, 12), // 1MB to ~16TB
			},
			[]string{"table"},
		),
		ActivePartitions: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_partitions",
				Help:      "Partitions surviving the key-range filter at finalize",
			},
			[]string{"table"},
		),
	}

	defaultMetrics = m
	return m
}

// Get returns the global metrics instance.
// Returns nil if Init has not been called.
func Get() *Metrics {
	return defaultMetrics
}

// StartServer starts an HTTP server for Prometheus metrics scraping.
// Blocks until the server exits.
func StartServer(address string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return http.ListenAndServe(address, mux)
}

// SetActivePartitions records the active partition count for a table.
func (m *Metrics) SetActivePartitions(table string, n int) {
	m.ActivePartitions.WithLabelValues(table).Set(float64(n))
}

// ObserveSchedule records the outcome of one scheduling run.
func (m *Metrics) ObserveSchedule(table string, hostsAssigned, units int, hostBytes []int64, seconds float64) {
	m.SchedulesTotal.WithLabelValues(table).Inc()
	m.HostsAssigned.WithLabelValues(table).Observe(float64(hostsAssigned))
	m.ScanUnitsEmitted.WithLabelValues(table).Observe(float64(units))
	m.ScheduleDuration.WithLabelValues(table).Observe(seconds)
	for _, b := range hostBytes {
		m.BytesPerHost.WithLabelValues(table).Observe(float64(b))
	}
}
