// Package metrics collects Prometheus metrics for outbound API traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the request client reports to. Implementations must be
// safe for concurrent use.
type Recorder interface {
	RecordRequest(method, outcome string, status int, d time.Duration)
	RecordSoftFailure(endpoint string)
}

// Nop discards all observations.
type Nop struct{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}
func (Nop) RecordSoftFailure(string)                         {}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	requests     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	softFailures *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studydeck_client_requests_total",
			Help: "Outbound API requests by method, outcome and HTTP status.",
		}, []string{"method", "outcome", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "studydeck_client_request_duration_seconds",
			Help:    "Outbound API request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "outcome"}),
		softFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studydeck_client_soft_failures_total",
			Help: "Failures absorbed by soft reads, by endpoint.",
		}, []string{"endpoint"}),
	}

	reg.MustRegister(c.requests, c.latency, c.softFailures)
	return c
}

// RecordRequest records one finished request. status is 0 when no response
// was received.
func (c *Collector) RecordRequest(method, outcome string, status int, d time.Duration) {
	c.requests.WithLabelValues(method, outcome, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method, outcome).Observe(d.Seconds())
}

func (c *Collector) RecordSoftFailure(endpoint string) {
	c.softFailures.WithLabelValues(endpoint).Inc()
}

// Handler exposes the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
