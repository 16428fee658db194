package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry

	// Upstream API call rate by provider. Watch for: error vs success ratio,
	// fallback providers lighting up (primary degradation).
	UpstreamRequestsTotal *prometheus.CounterVec

	// Upstream latency per request. Watch for: p95 > 2s (upstream degradation).
	UpstreamRequestDuration *prometheus.HistogramVec

	// Geocoding outcomes per strategy. Watch for: direct misses driving
	// Nominatim traffic.
	GeocodeResolutionsTotal *prometheus.CounterVec

	// Tool invocation outcomes. Watch for: traffic volume per tool,
	// unresolved/no-data ratios.
	ToolInvocationsTotal *prometheus.CounterVec
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstreamRequestsTotal",
			Help: "Total number of upstream API calls by provider and status",
		},
		[]string{"provider", "status"},
	)
	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstreamRequestDurationSeconds",
			Help:    "Upstream API latency in seconds (per request)",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider"},
	)
	GeocodeResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocodeResolutionsTotal",
			Help: "Geocoding attempts by strategy and outcome (hit/miss)",
		},
		[]string{"strategy", "outcome"},
	)
	ToolInvocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toolInvocationsTotal",
			Help: "Tool invocations by tool name and outcome",
		},
		[]string{"tool", "outcome"},
	)

	registry.MustRegister(
		UpstreamRequestsTotal, UpstreamRequestDuration,
		GeocodeResolutionsTotal,
		ToolInvocationsTotal,
	)
}

// StatusLabel maps an HTTP status code to a metric label value.
func StatusLabel(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "success"
	case statusCode == http.StatusTooManyRequests:
		return "rate_limited"
	case statusCode >= 400 && statusCode < 500:
		return "client_error"
	case statusCode >= 500:
		return "server_error"
	}
	return "error"
}

// MetricsHandler returns an http.Handler that serves application and runtime metrics.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
