package infrastructure

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the prometheus collectors for ingestion and the HTTP API.
type Metrics struct {
	registry *prometheus.Registry

	FilesLoaded  prometheus.Counter
	FilesSkipped prometheus.Counter
	RowsLoaded   prometheus.Counter
	HTTPRequests *prometheus.CounterVec
}

// NewMetrics creates a metrics set backed by its own registry so tests
// can construct instances independently.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		FilesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parkcli",
			Subsystem: "ingest",
			Name:      "files_loaded_total",
			Help:      "Number of citation export files that contributed rows.",
		}),
		FilesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parkcli",
			Subsystem: "ingest",
			Name:      "files_skipped_total",
			Help:      "Number of citation export files skipped as unreadable or empty.",
		}),
		RowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parkcli",
			Subsystem: "ingest",
			Name:      "rows_loaded_total",
			Help:      "Number of citation rows loaded into the dataset.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parkcli",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served, by method, path and status.",
		}, []string{"method", "path", "status"}),
	}

	registry.MustRegister(m.FilesLoaded, m.FilesSkipped, m.RowsLoaded, m.HTTPRequests)

	return m
}

// Handler returns the /metrics HTTP handler for this metrics set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
