// Package metrics exposes Prometheus instrumentation for ingestion and the
// HTTP API.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/core/ports/driven"
)

const namespace = "kgingest"

// Ensure Metrics implements the recorder port.
var _ driven.IngestRecorder = (*Metrics)(nil)

// Metrics owns a Prometheus registry and the collectors registered on it.
type Metrics struct {
	registry *prometheus.Registry

	documentsTotal      *prometheus.CounterVec
	ingestDuration      *prometheus.HistogramVec
	httpRequestDuration *prometheus.HistogramVec
	httpRequestsTotal   *prometheus.CounterVec
}

// New creates a registry with the ingest, HTTP and Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		documentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ingest_documents_total",
				Help:      "Total number of processed documents",
			},
			[]string{"type", "status"},
		),

		ingestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "ingest_duration_seconds",
				Help:      "Time from fetch or read to terminal status, in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"type"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path", "status"},
		),

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
	}

	m.registry.MustRegister(
		m.documentsTotal,
		m.ingestDuration,
		m.httpRequestDuration,
		m.httpRequestsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveIngest records one processed document.
func (m *Metrics) ObserveIngest(docType domain.DocumentType, status domain.Status, elapsed time.Duration) {
	m.documentsTotal.WithLabelValues(docType.String(), status.String()).Inc()
	m.ingestDuration.WithLabelValues(docType.String()).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
