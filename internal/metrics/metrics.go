package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Conversion Metrics
	ConversionsTotal  *prometheus.CounterVec
	ConversionNodes   prometheus.Histogram
	RefinementsTotal  *prometheus.CounterVec
	ModelTokensTotal  *prometheus.CounterVec
	DroppedLinksTotal prometheus.Counter

	// Layout Metrics
	LayoutRunsTotal    *prometheus.CounterVec
	LayoutTicks        prometheus.Histogram
	LayoutRunDuration  prometheus.Histogram
	LayoutRunsInFlight prometheus.Gauge

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process wide registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with every metric registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initHTTPMetrics()
	r.initConversionMetrics()
	r.initLayoutMetrics()
	return r
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "nodelink_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nodelink_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	r.HTTPRequestsInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "nodelink_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)
}

func (r *Registry) initConversionMetrics() {
	r.ConversionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "nodelink_conversions_total",
			Help: "Text to graph conversions by requested mode, produced mode and fallback",
		},
		[]string{"requested", "mode", "fallback"},
	)

	r.ConversionNodes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nodelink_conversion_nodes",
			Help:    "Number of nodes per converted graph",
			Buckets: []float64{0, 5, 10, 20, 40, 80},
		},
	)

	r.RefinementsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "nodelink_refinements_total",
			Help: "Refined batches by method",
		},
		[]string{"method"},
	)

	r.ModelTokensTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "nodelink_model_tokens_total",
			Help: "Tokens exchanged with the language model",
		},
		[]string{"direction"},
	)

	r.DroppedLinksTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "nodelink_dropped_links_total",
			Help: "Links removed because an endpoint was missing",
		},
	)
}

func (r *Registry) initLayoutMetrics() {
	r.LayoutRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "nodelink_layout_runs_total",
			Help: "Layout runs by outcome",
		},
		[]string{"outcome"},
	)

	r.LayoutTicks = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nodelink_layout_ticks",
			Help:    "Ticks executed per layout run",
			Buckets: []float64{1, 10, 50, 100, 200, 300, 500, 1000},
		},
	)

	r.LayoutRunDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nodelink_layout_run_duration_seconds",
			Help:    "Wall time of a layout run",
			Buckets: prometheus.DefBuckets,
		},
	)

	r.LayoutRunsInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "nodelink_layout_runs_in_flight",
			Help: "Layout runs currently streaming",
		},
	)
}

// RecordHTTPRequest records a finished request.
func (r *Registry) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordConversion records the outcome of one text to graph conversion.
func (r *Registry) RecordConversion(requested, mode, fallback string, nodes, droppedLinks int, methods []string) {
	if fallback == "" {
		fallback = "none"
	}
	r.ConversionsTotal.WithLabelValues(requested, mode, fallback).Inc()
	r.ConversionNodes.Observe(float64(nodes))
	if droppedLinks > 0 {
		r.DroppedLinksTotal.Add(float64(droppedLinks))
	}
	for _, m := range methods {
		r.RefinementsTotal.WithLabelValues(m).Inc()
	}
}

// RecordModelTokens adds token usage reported by a model client.
func (r *Registry) RecordModelTokens(input, output int) {
	if input > 0 {
		r.ModelTokensTotal.WithLabelValues("input").Add(float64(input))
	}
	if output > 0 {
		r.ModelTokensTotal.WithLabelValues("output").Add(float64(output))
	}
}

// RecordLayoutRun records a finished layout run. outcome is one of
// "stabilized", "cancelled" or "empty".
func (r *Registry) RecordLayoutRun(outcome string, ticks int, duration time.Duration) {
	r.LayoutRunsTotal.WithLabelValues(outcome).Inc()
	r.LayoutTicks.Observe(float64(ticks))
	r.LayoutRunDuration.Observe(duration.Seconds())
}
