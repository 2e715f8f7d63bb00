package ranker

import (
	"math"
	"sort"
)

const (
	// MaxResults caps the number of documents a search returns.
	MaxResults = 5
	// Epsilon is the relevance difference below which two documents tie and
	// are ordered by rating instead.
	Epsilon = 1e-6
)

type ScoredDoc struct {
	ID        int     `json:"id"`
	Relevance float64 `json:"relevance"`
	Rating    int     `json:"rating"`
}

// IDF is ln(total/containing). containing must be positive.
func IDF(total, containing int) float64 {
	return math.Log(float64(total) / float64(containing))
}

// Sort orders docs by relevance descending, falling back to rating descending
// when relevances are within Epsilon. The sort is stable, so equal documents
// keep their incoming order.
func Sort(docs []ScoredDoc) {
	sort.SliceStable(docs, func(i, j int) bool {
		if math.Abs(docs[i].Relevance-docs[j].Relevance) < Epsilon {
			return docs[i].Rating > docs[j].Rating
		}
		return docs[i].Relevance > docs[j].Relevance
	})
}

// Top truncates docs to at most limit entries. limit <= 0 keeps everything.
func Top(docs []ScoredDoc, limit int) []ScoredDoc {
	if limit > 0 && len(docs) > limit {
		return docs[:limit]
	}
	return docs
}

// Rank builds scored documents from relevance by id, looking up each rating,
// then sorts and truncates to MaxResults. Candidates are visited in id order.
func Rank(relevance map[int]float64, rating func(id int) int) []ScoredDoc {
	ids := make([]int, 0, len(relevance))
	for id := range relevance {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	result := make([]ScoredDoc, 0, len(ids))
	for _, id := range ids {
		result = append(result, ScoredDoc{
			ID:        id,
			Relevance: relevance[id],
			Rating:    rating(id),
		})
	}
	Sort(result)
	return Top(result, MaxResults)
}
