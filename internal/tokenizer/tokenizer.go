// Package tokenizer splits raw text into space-delimited terms, rejects terms
// carrying control characters and maintains the stop-word set shared by
// document ingestion and query parsing.
package tokenizer

import (
	"sort"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// Split breaks text on ASCII spaces. Runs of spaces produce no empty terms
// and left-to-right order is kept.
func Split(text string) []string {
	words := make([]string, 0, strings.Count(text, " ")+1)
	start := -1
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' {
			if start >= 0 {
				words = append(words, text[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, text[start:])
	}
	return words
}

// IsValid reports whether s is free of control characters (bytes below ' ').
func IsValid(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < ' ' {
			return false
		}
	}
	return true
}

// StopWords is a set of terms excluded from indexing and querying.
type StopWords map[string]struct{}

// NewStopWords builds a set from words, dropping empty strings. Any word
// containing a control character fails the whole construction.
func NewStopWords(words []string) (StopWords, error) {
	set := make(StopWords, len(words))
	for _, w := range words {
		if !IsValid(w) {
			return nil, apperrors.Newf(apperrors.ErrInvalidText, "stop word %q contains control characters", w)
		}
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return set, nil
}

// ParseStopWords builds a set from a space separated list.
func ParseStopWords(text string) (StopWords, error) {
	return NewStopWords(Split(text))
}

func (s StopWords) Contains(term string) bool {
	_, ok := s[term]
	return ok
}

// Filter returns terms with stop words removed, preserving order.
func (s StopWords) Filter(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if !s.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}

// Words returns the set in ascending order.
func (s StopWords) Words() []string {
	words := make([]string, 0, len(s))
	for w := range s {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
