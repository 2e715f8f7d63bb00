// Package requestqueue tracks how many of the most recent search requests
// returned no documents.
package requestqueue

import (
	"sync"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/ranker"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searchserver"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

// DefaultWindow is one request per minute over a day.
const DefaultWindow = 1440

type Searcher interface {
	FindTopDocuments(query string) ([]ranker.ScoredDoc, error)
	FindTopDocumentsByStatus(query string, status document.Status) ([]ranker.ScoredDoc, error)
	FindTopDocumentsFiltered(query string, filter searchserver.Filter) ([]ranker.ScoredDoc, error)
}

// RequestQueue keeps the outcome of the last window requests in a ring.
// Failed searches are not recorded.
type RequestQueue struct {
	mu        sync.Mutex
	searcher  Searcher
	ring      []bool
	next      int
	filled    int
	noResults int
	metrics   *metrics.Metrics
}

// New creates a queue over searcher. window <= 0 uses DefaultWindow. m may be
// nil.
func New(searcher Searcher, window int, m *metrics.Metrics) *RequestQueue {
	if window <= 0 {
		window = DefaultWindow
	}
	return &RequestQueue{
		searcher: searcher,
		ring:     make([]bool, window),
		metrics:  m,
	}
}

func (q *RequestQueue) AddFindRequest(query string) ([]ranker.ScoredDoc, error) {
	return q.record(q.searcher.FindTopDocuments(query))
}

func (q *RequestQueue) AddFindRequestByStatus(query string, status document.Status) ([]ranker.ScoredDoc, error) {
	return q.record(q.searcher.FindTopDocumentsByStatus(query, status))
}

func (q *RequestQueue) AddFindRequestFiltered(query string, filter searchserver.Filter) ([]ranker.ScoredDoc, error) {
	return q.record(q.searcher.FindTopDocumentsFiltered(query, filter))
}

func (q *RequestQueue) record(docs []ranker.ScoredDoc, err error) ([]ranker.ScoredDoc, error) {
	if err != nil {
		return nil, err
	}
	empty := len(docs) == 0

	q.mu.Lock()
	if q.filled == len(q.ring) {
		if q.ring[q.next] {
			q.noResults--
		}
	} else {
		q.filled++
	}
	q.ring[q.next] = empty
	if empty {
		q.noResults++
	}
	q.next = (q.next + 1) % len(q.ring)
	n := q.noResults
	q.mu.Unlock()

	q.metrics.SetNoResultRequests(n)
	return docs, nil
}

// NoResultRequests is the number of requests in the window that found
// nothing.
func (q *RequestQueue) NoResultRequests() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.noResults
}

// Len is the number of requests currently in the window.
func (q *RequestQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.filled
}
