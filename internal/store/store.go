// Package store keeps per-document metadata together with the order in which
// documents were added.
package store

import (
	"slices"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// Store is not safe for concurrent mutation; the engine serialises writers.
type Store struct {
	docs  map[int]document.Document
	order []int
}

func New() *Store {
	return &Store{
		docs:  make(map[int]document.Document),
		order: make([]int, 0, 16),
	}
}

// Add registers doc. Negative ids and ids already present are rejected.
func (s *Store) Add(doc document.Document) error {
	if doc.ID < 0 {
		return apperrors.Newf(apperrors.ErrInvalidID, "id %d is negative", doc.ID)
	}
	if _, exists := s.docs[doc.ID]; exists {
		return apperrors.Newf(apperrors.ErrDuplicateID, "id %d already indexed", doc.ID)
	}
	s.docs[doc.ID] = doc
	s.order = append(s.order, doc.ID)
	return nil
}

func (s *Store) Get(id int) (document.Document, bool) {
	doc, ok := s.docs[id]
	return doc, ok
}

func (s *Store) Contains(id int) bool {
	_, ok := s.docs[id]
	return ok
}

// Remove deletes id and reports whether it was present.
func (s *Store) Remove(id int) bool {
	if _, ok := s.docs[id]; !ok {
		return false
	}
	delete(s.docs, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return true
}

func (s *Store) Len() int {
	return len(s.docs)
}

// IDs returns a copy of the ids in insertion order.
func (s *Store) IDs() []int {
	return slices.Clone(s.order)
}

// Position returns the insertion rank of id, or -1.
func (s *Store) Position(id int) int {
	return slices.Index(s.order, id)
}
