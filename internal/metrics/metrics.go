// Package metrics exposes Prometheus instrumentation for the listing API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors registered for one server instance.
type Metrics struct {
	registry       *prometheus.Registry
	queries        *prometheus.CounterVec
	queryDuration  prometheus.Histogram
	matchedRecords prometheus.Histogram
	datasetRecords prometheus.Gauge
	rateLimited    prometheus.Counter
}

// New creates a registry with Go runtime collectors and the listing metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		queries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "datalist_queries_total",
			Help: "Listing queries by HTTP status code",
		}, []string{"code"}),
		queryDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "datalist_query_duration_seconds",
			Help:    "Time spent evaluating listing queries",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
		matchedRecords: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "datalist_query_matched_records",
			Help:    "Records matching the filter of successful queries",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		datasetRecords: f.NewGauge(prometheus.GaugeOpts{
			Name: "datalist_dataset_records",
			Help: "Number of records in the loaded dataset",
		}),
		rateLimited: f.NewCounter(prometheus.CounterOpts{
			Name: "datalist_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}),
	}
}

// ObserveQuery records the outcome of one listing request. matched is
// ignored for failed requests.
func (m *Metrics) ObserveQuery(code int, elapsed time.Duration, matched int) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(strconv.Itoa(code)).Inc()
	if code < 400 {
		m.queryDuration.Observe(elapsed.Seconds())
		m.matchedRecords.Observe(float64(matched))
	}
}

// SetDatasetSize records the number of loaded records.
func (m *Metrics) SetDatasetSize(n int) {
	if m == nil {
		return
	}
	m.datasetRecords.Set(float64(n))
}

// IncRateLimited counts a rejected request. Its signature matches
// middleware.RateLimitConfig.OnReject.
func (m *Metrics) IncRateLimited(*http.Request) {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}

// Handler returns the Prometheus HTTP handler for /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
