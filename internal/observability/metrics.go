package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "tournament_hub"

// Metrics is the process registry plus the service's own collectors. It
// satisfies usecase.QualificationMetrics and httpapi.RequestMetrics.
type Metrics struct {
	registry          *prometheus.Registry
	recomputeTotal    *prometheus.CounterVec
	recomputeDuration *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		recomputeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "qualification",
			Name:      "recompute_total",
			Help:      "Group qualification recompute runs by outcome.",
		}, []string{"outcome"}),
		recomputeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "qualification",
			Name:      "recompute_duration_seconds",
			Help:      "Wall time of one group qualification recompute.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"outcome"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.recomputeTotal,
		m.recomputeDuration,
		m.requestTotal,
		m.requestDuration,
	)
	return m
}

// Registry is shared with the event bus so router metrics land on /metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRecompute(outcome string, duration time.Duration) {
	m.recomputeTotal.WithLabelValues(outcome).Inc()
	m.recomputeDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	m.requestTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
