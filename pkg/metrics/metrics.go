// Package metrics defines the Prometheus metric collectors used by the search
// server and exposes an HTTP handler for scraping.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus collectors for the search server. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	DocsIndexedTotal       prometheus.Counter
	DocsRemovedTotal       prometheus.Counter
	DuplicatesRemovedTotal prometheus.Counter
	SearchQueriesTotal     *prometheus.CounterVec
	SearchLatency          *prometheus.HistogramVec
	SearchResultsCount     prometheus.Histogram
	ErrorsTotal            *prometheus.CounterVec
	DocumentCount          prometheus.Gauge
	TermCount              prometheus.Gauge
	NoResultRequests       prometheus.Gauge
}

// New creates all collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DocsIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docs_indexed_total",
				Help: "Total documents indexed.",
			},
		),
		DocsRemovedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docs_removed_total",
				Help: "Total documents removed from the index.",
			},
		),
		DuplicatesRemovedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "duplicates_removed_total",
				Help: "Total documents removed as duplicates.",
			},
		),
		SearchQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_queries_total",
				Help: "Total search queries by execution policy and result type (hit, zero_result, error).",
			},
			[]string{"policy", "result_type"},
		),
		SearchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "search_latency_seconds",
				Help:    "Search query latency in seconds.",
				Buckets: []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"policy"},
		),
		SearchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_results_count",
				Help:    "Number of results returned per search query.",
				Buckets: []float64{0, 1, 2, 3, 4, 5},
			},
		),
		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_server_errors_total",
				Help: "Rejected operations by error code.",
			},
			[]string{"operation", "code"},
		),
		DocumentCount: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "document_count",
				Help: "Number of documents currently indexed.",
			},
		),
		TermCount: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "index_term_count",
				Help: "Number of distinct terms in the inverted index.",
			},
		),
		NoResultRequests: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "no_result_requests",
				Help: "Requests in the statistics window that returned no documents.",
			},
		),
	}

	reg.MustRegister(
		m.DocsIndexedTotal,
		m.DocsRemovedTotal,
		m.DuplicatesRemovedTotal,
		m.SearchQueriesTotal,
		m.SearchLatency,
		m.SearchResultsCount,
		m.ErrorsTotal,
		m.DocumentCount,
		m.TermCount,
		m.NoResultRequests,
	)

	return m
}

// ObserveSearch records one completed or rejected search.
func (m *Metrics) ObserveSearch(policy string, elapsed time.Duration, results int, code string) {
	if m == nil {
		return
	}
	m.SearchLatency.WithLabelValues(policy).Observe(elapsed.Seconds())
	switch {
	case code != "":
		m.SearchQueriesTotal.WithLabelValues(policy, "error").Inc()
		m.ErrorsTotal.WithLabelValues("find", code).Inc()
		return
	case results == 0:
		m.SearchQueriesTotal.WithLabelValues(policy, "zero_result").Inc()
	default:
		m.SearchQueriesTotal.WithLabelValues(policy, "hit").Inc()
	}
	m.SearchResultsCount.Observe(float64(results))
}

// ObserveIndexSize publishes the current document and term counts.
func (m *Metrics) ObserveIndexSize(documents, terms int) {
	if m == nil {
		return
	}
	m.DocumentCount.Set(float64(documents))
	m.TermCount.Set(float64(terms))
}

func (m *Metrics) DocumentIndexed() {
	if m == nil {
		return
	}
	m.DocsIndexedTotal.Inc()
}

func (m *Metrics) DocumentRemoved() {
	if m == nil {
		return
	}
	m.DocsRemovedTotal.Inc()
}

func (m *Metrics) DuplicatesRemoved(n int) {
	if m == nil {
		return
	}
	m.DuplicatesRemovedTotal.Add(float64(n))
}

func (m *Metrics) Rejected(operation, code string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(operation, code).Inc()
}

func (m *Metrics) SetNoResultRequests(n int) {
	if m == nil {
		return
	}
	m.NoResultRequests.Set(float64(n))
}
