// Package document defines the stored representation of an indexed document
// and its caller-supplied lifecycle status.
package document

import (
	"fmt"
	"strings"
)

// Status is an opaque lifecycle tag. The engine never interprets it except
// through caller-supplied filters.
type Status int

const (
	StatusActual Status = iota
	StatusIrrelevant
	StatusBanned
	StatusRemoved
)

func (s Status) String() string {
	switch s {
	case StatusActual:
		return "ACTUAL"
	case StatusIrrelevant:
		return "IRRELEVANT"
	case StatusBanned:
		return "BANNED"
	case StatusRemoved:
		return "REMOVED"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ParseStatus accepts the names produced by String, case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ACTUAL":
		return StatusActual, nil
	case "IRRELEVANT":
		return StatusIrrelevant, nil
	case "BANNED":
		return StatusBanned, nil
	case "REMOVED":
		return StatusRemoved, nil
	}
	return 0, fmt.Errorf("unknown document status %q", s)
}

// Document is the metadata kept for every indexed document. Text is the
// engine-owned copy of the raw input.
type Document struct {
	ID     int    `json:"id"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
	Status Status `json:"status"`
}

// AverageRating is the arithmetic mean of ratings truncated toward zero, or 0
// for no ratings.
func AverageRating(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return sum / len(ratings)
}
