// Package searchserver is the in-memory TF-IDF search engine. It indexes
// documents made of space separated terms, answers plus/minus queries with
// the most relevant matching documents and reports per-document term
// frequencies. Every query operation offers a sequential and a parallel
// policy with identical results.
package searchserver

import (
	"iter"
	"log/slog"
	"maps"
	"runtime"
	"sync"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/store"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

// SearchServer is safe for concurrent use. Mutations are exclusive; queries
// share a read lock.
type SearchServer struct {
	mu sync.RWMutex

	stop    tokenizer.StopWords
	docs    *store.Store
	idx     *index.Index
	workers int
	shards  int

	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates an empty server rejecting the given stop words from documents
// and queries. The set is copied.
func New(stop tokenizer.StopWords, opts ...Option) *SearchServer {
	s := &SearchServer{
		stop:   maps.Clone(stop),
		docs:   store.New(),
		idx:    index.New(),
		shards: defaultAccumulatorShards,
		logger: slog.Default().With("component", "search-server"),
	}
	if s.stop == nil {
		s.stop = tokenizer.StopWords{}
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers <= 0 {
		s.workers = runtime.NumCPU()
	}
	return s
}

// NewFromText creates a server whose stop words are the space separated terms
// of text.
func NewFromText(text string, opts ...Option) (*SearchServer, error) {
	stop, err := tokenizer.ParseStopWords(text)
	if err != nil {
		return nil, err
	}
	return New(stop, opts...), nil
}

// AddDocument indexes text under id. The call is all-or-nothing: on error the
// server is unchanged.
func (s *SearchServer) AddDocument(id int, text string, status document.Status, ratings []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.addLocked(id, text, status, ratings); err != nil {
		s.metrics.Rejected("add", apperrors.Code(err))
		s.logger.Debug("document rejected", "doc_id", id, "error", err)
		return err
	}
	s.metrics.DocumentIndexed()
	s.metrics.ObserveIndexSize(s.docs.Len(), s.idx.TermCount())
	return nil
}

func (s *SearchServer) addLocked(id int, text string, status document.Status, ratings []int) error {
	if id < 0 {
		return apperrors.Newf(apperrors.ErrInvalidID, "id %d is negative", id)
	}
	if s.docs.Contains(id) {
		return apperrors.Newf(apperrors.ErrDuplicateID, "id %d already indexed", id)
	}
	terms, err := s.documentTerms(text)
	if err != nil {
		return err
	}

	doc := document.Document{
		ID:     id,
		Text:   text,
		Rating: document.AverageRating(ratings),
		Status: status,
	}
	if err := s.docs.Add(doc); err != nil {
		return err
	}
	s.idx.Add(id, terms)

	s.logger.Debug("document indexed",
		"doc_id", id,
		"terms", len(terms),
		"status", status.String(),
		"rating", doc.Rating,
	)
	return nil
}

func (s *SearchServer) documentTerms(text string) ([]string, error) {
	words := tokenizer.Split(text)
	for _, w := range words {
		if !tokenizer.IsValid(w) {
			return nil, apperrors.Newf(apperrors.ErrInvalidText, "word %q contains control characters", w)
		}
	}
	terms := s.stop.Filter(words)
	if len(terms) == 0 {
		return nil, apperrors.New(apperrors.ErrInvalidText, "document has no terms besides stop words")
	}
	return terms, nil
}

// RemoveDocument removes id sequentially. Unknown ids are ignored.
func (s *SearchServer) RemoveDocument(id int) {
	s.RemoveDocumentWithPolicy(Sequential, id)
}

func (s *SearchServer) RemoveDocumentWithPolicy(policy Policy, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.docs.Contains(id) {
		return
	}
	if policy == Parallel {
		s.idx.RemoveParallel(id, s.workers)
	} else {
		s.idx.Remove(id)
	}
	s.docs.Remove(id)

	s.metrics.DocumentRemoved()
	s.metrics.ObserveIndexSize(s.docs.Len(), s.idx.TermCount())
	s.logger.Debug("document removed", "doc_id", id, "policy", policy.String())
}

// WordFrequencies returns a copy of the term frequencies of id, empty for
// unknown ids.
func (s *SearchServer) WordFrequencies(id int) map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx.WordFrequencies(id)
}

func (s *SearchServer) DocumentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs.Len()
}

// DocumentIDs returns ids in insertion order.
func (s *SearchServer) DocumentIDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs.IDs()
}

// All iterates ids in insertion order over a snapshot taken when iteration
// starts.
func (s *SearchServer) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, id := range s.DocumentIDs() {
			if !yield(id) {
				return
			}
		}
	}
}

func (s *SearchServer) Document(id int) (document.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs.Get(id)
}

// StopWords returns the stop-word set in ascending order.
func (s *SearchServer) StopWords() []string {
	return s.stop.Words()
}
