// Package metrics exposes resolver counters to Prometheus
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "surat"

// Metrics holds the resolver counters on a private registry
type Metrics struct {
	registry *prometheus.Registry

	accessResolutions *prometheus.CounterVec
	photoResolutions  *prometheus.CounterVec
	degradedLookups   *prometheus.CounterVec
}

// New creates and registers the counters. Go runtime and process
// collectors are registered alongside them.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		accessResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "access_resolutions_total",
			Help:      "Access code resolutions by outcome.",
		}, []string{"outcome"}),
		photoResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "photo_resolutions_total",
			Help:      "Photo resolutions by fallback tier.",
		}, []string{"tier"}),
		degradedLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_lookups_total",
			Help:      "Store lookups that failed and fell through to the next fallback.",
		}, []string{"collection"}),
	}

	m.registry.MustRegister(
		m.accessResolutions,
		m.photoResolutions,
		m.degradedLookups,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) AccessResolved(outcome string) {
	m.accessResolutions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) PhotoResolved(tier string) {
	m.photoResolutions.WithLabelValues(tier).Inc()
}

func (m *Metrics) LookupDegraded(collection string) {
	m.degradedLookups.WithLabelValues(collection).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
