// Package paginator splits result lists into fixed-size pages.
package paginator

// Paginate returns consecutive pages of at most pageSize items. Pages share
// backing storage with items. pageSize <= 0 yields a single page.
func Paginate[T any](items []T, pageSize int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if pageSize <= 0 {
		pageSize = len(items)
	}
	pages := make([][]T, 0, (len(items)+pageSize-1)/pageSize)
	for start := 0; start < len(items); start += pageSize {
		end := min(start+pageSize, len(items))
		pages = append(pages, items[start:end:end])
	}
	return pages
}
