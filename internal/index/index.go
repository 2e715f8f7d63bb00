// Package index maintains the inverted index in both directions: term to
// per-document term frequency, and document to its term frequencies.
package index

import (
	"sort"

	"golang.org/x/sync/errgroup"
)

// Index is not safe for concurrent mutation; callers hold the write lock.
// Concurrent readers are fine.
type Index struct {
	forward map[string]map[int]float64
	reverse map[int]map[string]float64
}

func New() *Index {
	return &Index{
		forward: make(map[string]map[int]float64),
		reverse: make(map[int]map[string]float64),
	}
}

// Add records terms for docID. Each occurrence contributes 1/len(terms) to
// the term frequency.
func (x *Index) Add(docID int, terms []string) {
	if len(terms) == 0 {
		return
	}
	inv := 1.0 / float64(len(terms))
	freqs, ok := x.reverse[docID]
	if !ok {
		freqs = make(map[string]float64)
		x.reverse[docID] = freqs
	}
	for _, term := range terms {
		postings, ok := x.forward[term]
		if !ok {
			postings = make(map[int]float64)
			x.forward[term] = postings
		}
		postings[docID] += inv
		freqs[term] += inv
	}
}

// Postings returns the posting map for term. The map must not be modified.
func (x *Index) Postings(term string) (map[int]float64, bool) {
	p, ok := x.forward[term]
	return p, ok
}

func (x *Index) DocFreq(term string) int {
	return len(x.forward[term])
}

func (x *Index) Contains(term string, docID int) bool {
	_, ok := x.forward[term][docID]
	return ok
}

// WordFrequencies returns a copy of the term frequencies for docID, empty if
// the document is unknown.
func (x *Index) WordFrequencies(docID int) map[string]float64 {
	freqs := x.reverse[docID]
	out := make(map[string]float64, len(freqs))
	for term, tf := range freqs {
		out[term] = tf
	}
	return out
}

// Terms returns the distinct terms of docID in ascending order.
func (x *Index) Terms(docID int) []string {
	freqs := x.reverse[docID]
	out := make([]string, 0, len(freqs))
	for term := range freqs {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}

func (x *Index) TermCount() int {
	return len(x.forward)
}

// Remove deletes every posting of docID and prunes terms left without
// documents.
func (x *Index) Remove(docID int) {
	freqs, ok := x.reverse[docID]
	if !ok {
		return
	}
	for term := range freqs {
		postings := x.forward[term]
		delete(postings, docID)
		if len(postings) == 0 {
			delete(x.forward, term)
		}
	}
	delete(x.reverse, docID)
}

// RemoveParallel is Remove with the per-term deletions dispatched to at most
// workers goroutines. Each goroutine owns a distinct inner map; the forward
// map itself is only read until all of them finish, then pruned.
func (x *Index) RemoveParallel(docID int, workers int) {
	freqs, ok := x.reverse[docID]
	if !ok {
		return
	}
	buckets := make([]map[int]float64, 0, len(freqs))
	terms := make([]string, 0, len(freqs))
	for term := range freqs {
		terms = append(terms, term)
		buckets = append(buckets, x.forward[term])
	}

	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, postings := range buckets {
		g.Go(func() error {
			delete(postings, docID)
			return nil
		})
	}
	_ = g.Wait()

	for i, term := range terms {
		if len(buckets[i]) == 0 {
			delete(x.forward, term)
		}
	}
	delete(x.reverse, docID)
}
