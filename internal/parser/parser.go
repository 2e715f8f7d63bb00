// Package parser turns a raw query string into the sets of terms a document
// must contain (plus) and must not contain (minus).
package parser

import (
	"sort"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// Query holds sorted, de-duplicated and disjoint term sets.
type Query struct {
	Plus     []string
	Minus    []string
	RawQuery string
}

// IsEmpty reports whether the query selects nothing.
func (q *Query) IsEmpty() bool {
	return len(q.Plus) == 0
}

// Parse splits text on spaces and classifies each term. A term prefixed with
// '-' is a minus term. Stop words, checked after the prefix is stripped,
// contribute nothing. A term appearing both ways is kept only as minus.
func Parse(text string, stop tokenizer.StopWords) (*Query, error) {
	plus := make(map[string]struct{})
	minus := make(map[string]struct{})

	for _, word := range tokenizer.Split(text) {
		term, excluded, err := classify(word)
		if err != nil {
			return nil, err
		}
		if stop.Contains(term) {
			continue
		}
		if excluded {
			minus[term] = struct{}{}
		} else {
			plus[term] = struct{}{}
		}
	}
	for term := range minus {
		delete(plus, term)
	}

	return &Query{
		Plus:     sortedKeys(plus),
		Minus:    sortedKeys(minus),
		RawQuery: text,
	}, nil
}

func classify(word string) (string, bool, error) {
	if !tokenizer.IsValid(word) {
		return "", false, apperrors.Newf(apperrors.ErrInvalidQuery, "term %q contains control characters", word)
	}
	if !strings.HasPrefix(word, "-") {
		return word, false, nil
	}
	term := word[1:]
	switch {
	case term == "":
		return "", false, apperrors.Newf(apperrors.ErrInvalidQuery, "term %q is a bare minus", word)
	case term[0] == '-':
		return "", false, apperrors.Newf(apperrors.ErrInvalidQuery, "term %q has a double minus", word)
	}
	return term, true, nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
