// Prometheus metrics for the HTTP service
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Path = "/metrics"

type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	recordsTotal      *prometheus.CounterVec
	formatErrorsTotal *prometheus.CounterVec
	skippedRowsTotal  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on the given registry.
func NewMetrics(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{registry: registry}

	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scagaire_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scagaire_http_request_duration_seconds",
			Help:    "Time taken to serve HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	m.recordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scagaire_records_total",
			Help: "AMR records seen by the filter, partitioned by report format and outcome",
		},
		[]string{"format", "outcome"}, // outcome: kept, dropped
	)

	m.formatErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scagaire_format_errors_total",
			Help: "Reports rejected because no parser accepted them",
		},
		[]string{"hint"},
	)

	m.skippedRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scagaire_skipped_rows_total",
			Help: "Malformed report rows skipped while parsing",
		},
		[]string{"format"},
	)

	for _, c := range []prometheus.Collector{
		m.httpRequestsTotal, m.httpRequestDuration, m.recordsTotal, m.formatErrorsTotal, m.skippedRowsTotal,
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) RecordRequest(method string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func (m *Metrics) RecordFilter(format string, kept, total, skipped int) {
	m.recordsTotal.WithLabelValues(format, "kept").Add(float64(kept))
	m.recordsTotal.WithLabelValues(format, "dropped").Add(float64(total - kept))
	if skipped > 0 {
		m.skippedRowsTotal.WithLabelValues(format).Add(float64(skipped))
	}
}

func (m *Metrics) RecordFormatError(hint string) {
	if hint == "" {
		hint = "auto"
	}
	m.formatErrorsTotal.WithLabelValues(hint).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
