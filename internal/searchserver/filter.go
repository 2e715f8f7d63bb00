package searchserver

import "github.com/Adithya-Monish-Kumar-K/search-server/internal/document"

// Filter decides whether a candidate document may appear in results. Under
// the parallel policy Accepts is called from several goroutines at once.
type Filter interface {
	Accepts(id int, status document.Status, rating int) bool
}

// FilterFunc adapts a plain function to Filter.
type FilterFunc func(id int, status document.Status, rating int) bool

func (f FilterFunc) Accepts(id int, status document.Status, rating int) bool {
	return f(id, status, rating)
}

// ByStatus accepts documents whose status equals status.
func ByStatus(status document.Status) Filter {
	return FilterFunc(func(_ int, s document.Status, _ int) bool {
		return s == status
	})
}

// Policy selects sequential or parallel execution. Both produce the same
// results.
type Policy int

const (
	Sequential Policy = iota
	Parallel
)

func (p Policy) String() string {
	switch p {
	case Sequential:
		return "sequential"
	case Parallel:
		return "parallel"
	default:
		return "unknown"
	}
}
