// Package duplicates finds documents whose set of distinct terms equals that
// of a document with a lower id, ignoring frequencies and order.
package duplicates

import (
	"log/slog"
	"slices"
	"strings"
)

// Source exposes the documents to inspect.
type Source interface {
	DocumentIDs() []int
	WordFrequencies(id int) map[string]float64
}

// Remover is a Source that can also remove documents.
type Remover interface {
	Source
	RemoveDocument(id int)
}

// Find returns, in ascending order, every id whose term set was already seen
// on a lower id. The lowest id of each group is kept.
func Find(src Source) []int {
	ids := src.DocumentIDs()
	slices.Sort(ids)

	seen := make(map[string]struct{}, len(ids))
	dups := make([]int, 0)
	for _, id := range ids {
		key := termSetKey(src.WordFrequencies(id))
		if _, ok := seen[key]; ok {
			dups = append(dups, id)
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}

// Terms never contain spaces, so a space-joined sorted list identifies a set.
func termSetKey(freqs map[string]float64) string {
	terms := make([]string, 0, len(freqs))
	for term := range freqs {
		terms = append(terms, term)
	}
	slices.Sort(terms)
	return strings.Join(terms, " ")
}

// Remove deletes every duplicate found in r and returns the removed ids.
func Remove(r Remover, logger *slog.Logger) []int {
	if logger == nil {
		logger = slog.Default().With("component", "duplicates")
	}
	dups := Find(r)
	for _, id := range dups {
		logger.Info("found duplicate document", "doc_id", id)
		r.RemoveDocument(id)
	}
	if len(dups) > 0 {
		logger.Info("duplicates removed", "count", len(dups))
	}
	return dups
}
