// Package batch runs many searches against one server concurrently.
package batch

import (
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/ranker"
)

// Searcher is the search surface a batch needs.
type Searcher interface {
	FindTopDocuments(query string) ([]ranker.ScoredDoc, error)
}

// ProcessQueries runs every query and returns results aligned with queries.
// Identical query strings are searched once. At most workers searches run at
// a time; workers <= 0 means one per CPU. If any query fails, the error of
// the lowest failing index is returned, wrapped with that index.
func ProcessQueries(searcher Searcher, queries []string, workers int) ([][]ranker.ScoredDoc, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([][]ranker.ScoredDoc, len(queries))
	errs := make([]error, len(queries))

	var (
		g     errgroup.Group
		group singleflight.Group
	)
	g.SetLimit(workers)
	for i, query := range queries {
		g.Go(func() error {
			v, err, shared := group.Do(query, func() (any, error) {
				return searcher.FindTopDocuments(query)
			})
			if err != nil {
				errs[i] = fmt.Errorf("query %d: %w", i, err)
				return nil
			}
			docs := v.([]ranker.ScoredDoc)
			if shared {
				docs = slices.Clone(docs)
			}
			results[i] = docs
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// ProcessQueriesJoined is ProcessQueries with the per-query results
// concatenated in query order.
func ProcessQueriesJoined(searcher Searcher, queries []string, workers int) ([]ranker.ScoredDoc, error) {
	results, err := ProcessQueries(searcher, queries, workers)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, docs := range results {
		total += len(docs)
	}
	joined := make([]ranker.ScoredDoc, 0, total)
	for _, docs := range results {
		joined = append(joined, docs...)
	}
	return joined, nil
}
