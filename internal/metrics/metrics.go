// Package metrics exposes Prometheus collectors for search and navigation.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ploofyz/ploofyz-web/internal/page"
)

// Metrics holds the site's collectors on a dedicated registry.
type Metrics struct {
	registry     *prometheus.Registry
	searches     prometheus.Counter
	resultCounts prometheus.Histogram
	navigations  *prometheus.CounterVec
	sessions     prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		searches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ploofyz_search_queries_total",
			Help: "Total non-blank search queries evaluated",
		}),
		resultCounts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ploofyz_search_results",
			Help:    "Number of results returned per search query",
			Buckets: []float64{0, 1, 2, 4, 8, 16},
		}),
		navigations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ploofyz_navigations_total",
			Help: "Page navigations by destination and trigger",
		}, []string{"page", "source"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ploofyz_live_sessions",
			Help: "Currently connected live sessions",
		}),
	}

	m.registry.MustRegister(
		m.searches,
		m.resultCounts,
		m.navigations,
		m.sessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordSearch implements search.Recorder.
func (m *Metrics) RecordSearch(_ context.Context, _ string, results int) error {
	m.searches.Inc()
	m.resultCounts.Observe(float64(results))
	return nil
}

// RecordNavigation counts a page view.
func (m *Metrics) RecordNavigation(p page.ID, source string) {
	m.navigations.WithLabelValues(string(p), source).Inc()
}

// SessionOpened increments the live session gauge.
func (m *Metrics) SessionOpened() { m.sessions.Inc() }

// SessionClosed decrements the live session gauge.
func (m *Metrics) SessionClosed() { m.sessions.Dec() }

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// NavigationCounter returns the counter for one page and source.
func (m *Metrics) NavigationCounter(p page.ID, source string) prometheus.Counter {
	return m.navigations.WithLabelValues(string(p), source)
}

// SessionGauge returns the live session gauge.
func (m *Metrics) SessionGauge() prometheus.Gauge { return m.sessions }
