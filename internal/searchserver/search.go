package searchserver

import (
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/concurrent"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/parser"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/ranker"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// FindTopDocuments returns up to ranker.MaxResults ACTUAL documents.
func (s *SearchServer) FindTopDocuments(query string) ([]ranker.ScoredDoc, error) {
	return s.FindTopDocumentsWithPolicy(Sequential, query, ByStatus(document.StatusActual))
}

func (s *SearchServer) FindTopDocumentsByStatus(query string, status document.Status) ([]ranker.ScoredDoc, error) {
	return s.FindTopDocumentsWithPolicy(Sequential, query, ByStatus(status))
}

func (s *SearchServer) FindTopDocumentsFiltered(query string, filter Filter) ([]ranker.ScoredDoc, error) {
	return s.FindTopDocumentsWithPolicy(Sequential, query, filter)
}

// FindTopDocumentsWithPolicy scores every document containing a plus term and
// no minus term, keeps those accepted by filter and returns the best
// ranker.MaxResults. A nil filter selects ACTUAL documents.
func (s *SearchServer) FindTopDocumentsWithPolicy(policy Policy, query string, filter Filter) ([]ranker.ScoredDoc, error) {
	start := time.Now()
	if filter == nil {
		filter = ByStatus(document.StatusActual)
	}

	q, err := parser.Parse(query, s.stop)
	if err != nil {
		s.metrics.ObserveSearch(policy.String(), time.Since(start), 0, apperrors.Code(err))
		return nil, err
	}

	s.mu.RLock()
	var relevance map[int]float64
	if policy == Parallel {
		relevance = s.relevanceParallel(q, filter)
	} else {
		relevance = s.relevanceSequential(q, filter)
	}
	results := ranker.Rank(relevance, s.ratingLocked)
	s.mu.RUnlock()

	elapsed := time.Since(start)
	s.metrics.ObserveSearch(policy.String(), elapsed, len(results), "")
	s.logger.Debug("search completed",
		"query", query,
		"policy", policy.String(),
		"candidates", len(relevance),
		"results", len(results),
		"latency_us", elapsed.Microseconds(),
	)
	return results, nil
}

func (s *SearchServer) ratingLocked(id int) int {
	doc, _ := s.docs.Get(id)
	return doc.Rating
}

func (s *SearchServer) accepts(filter Filter, id int) bool {
	doc, ok := s.docs.Get(id)
	return ok && filter.Accepts(id, doc.Status, doc.Rating)
}

func (s *SearchServer) relevanceSequential(q *parser.Query, filter Filter) map[int]float64 {
	total := s.docs.Len()
	relevance := make(map[int]float64)
	for _, term := range q.Plus {
		postings, ok := s.idx.Postings(term)
		if !ok {
			continue
		}
		idf := ranker.IDF(total, len(postings))
		for id, tf := range postings {
			if s.accepts(filter, id) {
				relevance[id] += tf * idf
			}
		}
	}
	for _, term := range q.Minus {
		postings, _ := s.idx.Postings(term)
		for id := range postings {
			delete(relevance, id)
		}
	}
	return relevance
}

// relevanceParallel scores plus terms concurrently into a sharded
// accumulator, then erases minus-term documents concurrently. The second
// phase starts only after the first has finished.
func (s *SearchServer) relevanceParallel(q *parser.Query, filter Filter) map[int]float64 {
	total := s.docs.Len()
	acc := concurrent.NewShardedMap[int, float64](s.shards)

	var plus errgroup.Group
	plus.SetLimit(s.workers)
	for _, term := range q.Plus {
		postings, ok := s.idx.Postings(term)
		if !ok {
			continue
		}
		plus.Go(func() error {
			idf := ranker.IDF(total, len(postings))
			for id, tf := range postings {
				if s.accepts(filter, id) {
					acc.Add(id, tf*idf)
				}
			}
			return nil
		})
	}
	_ = plus.Wait()

	var minus errgroup.Group
	minus.SetLimit(s.workers)
	for _, term := range q.Minus {
		postings, ok := s.idx.Postings(term)
		if !ok {
			continue
		}
		minus.Go(func() error {
			for id := range postings {
				acc.Erase(id)
			}
			return nil
		})
	}
	_ = minus.Wait()

	return acc.Snapshot()
}

// MatchDocument reports which plus terms of query occur in document id. The
// list is empty when any minus term occurs in it.
func (s *SearchServer) MatchDocument(query string, id int) ([]string, document.Status, error) {
	return s.MatchDocumentWithPolicy(Sequential, query, id)
}

func (s *SearchServer) MatchDocumentWithPolicy(policy Policy, query string, id int) ([]string, document.Status, error) {
	q, err := parser.Parse(query, s.stop)
	if err != nil {
		s.metrics.Rejected("match", apperrors.Code(err))
		return nil, 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs.Get(id)
	if !ok {
		err := apperrors.Newf(apperrors.ErrUnknownDocument, "id %d is not indexed", id)
		s.metrics.Rejected("match", apperrors.Code(err))
		return nil, 0, err
	}
	if policy == Parallel {
		return s.matchParallel(q, id), doc.Status, nil
	}
	return s.matchSequential(q, id), doc.Status, nil
}

func (s *SearchServer) matchSequential(q *parser.Query, id int) []string {
	for _, term := range q.Minus {
		if s.idx.Contains(term, id) {
			return []string{}
		}
	}
	matched := make([]string, 0, len(q.Plus))
	for _, term := range q.Plus {
		if s.idx.Contains(term, id) {
			matched = append(matched, term)
		}
	}
	return matched
}

func (s *SearchServer) matchParallel(q *parser.Query, id int) []string {
	var excluded atomic.Bool
	hits := make([]bool, len(q.Plus))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for _, term := range q.Minus {
		g.Go(func() error {
			if s.idx.Contains(term, id) {
				excluded.Store(true)
			}
			return nil
		})
	}
	for i, term := range q.Plus {
		g.Go(func() error {
			hits[i] = s.idx.Contains(term, id)
			return nil
		})
	}
	_ = g.Wait()

	if excluded.Load() {
		return []string{}
	}
	matched := make([]string, 0, len(q.Plus))
	for i, hit := range hits {
		if hit {
			matched = append(matched, q.Plus[i])
		}
	}
	return matched
}
