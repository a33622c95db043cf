// Package monitoring collects Prometheus metrics for the gateway.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. Each instance carries its own
// registry so tests can build throwaway collectors.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Upstream backend metrics
	UpstreamCalls    *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec

	// Inspire session metrics
	SessionTurns   prometheus.Counter
	SessionResets  prometheus.Counter
	SessionErrors  prometheus.Counter
	SessionActive  prometheus.Gauge

	// Workspace metrics
	WorkspaceTags prometheus.Gauge

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a metrics collector with a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		registry:  registry,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gateway_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		UpstreamCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_upstream_calls_total",
				Help: "Total number of calls to the recommendation backend",
			},
			[]string{"endpoint", "status"},
		),
		UpstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gateway_upstream_duration_seconds",
				Help:    "Backend call duration in seconds",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"endpoint"},
		),

		SessionTurns: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "gateway_session_turns_total",
				Help: "Total number of conversation turns dispatched",
			},
		),
		SessionResets: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "gateway_session_resets_total",
				Help: "Total number of session resets",
			},
		),
		SessionErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "gateway_session_errors_total",
				Help: "Total number of failed conversation turns",
			},
		),
		SessionActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "gateway_session_active",
				Help: "Whether a conversation session is active",
			},
		),

		WorkspaceTags: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "gateway_workspace_tags",
				Help: "Number of tags in the workspace",
			},
		),

		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "gateway_uptime_seconds",
				Help: "Gateway uptime in seconds",
			},
		),
	}

	go m.updateUptime()
	return m
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records one handled request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordUpstreamCall records one backend round-trip.
func (m *Metrics) RecordUpstreamCall(endpoint, status string, duration time.Duration) {
	m.UpstreamCalls.WithLabelValues(endpoint, status).Inc()
	m.UpstreamDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
