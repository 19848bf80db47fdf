package pagination

import "errors"

// ErrInvalidPage is returned for page numbers below 1. Bad numbers are
// rejected rather than clamped so client bugs stay visible.
var ErrInvalidPage = errors.New("invalid page number")

type Page[T any] struct {
	Items      []T
	Number     int
	TotalCount int
	HasNext    bool
	HasPrev    bool
}

// Paginate slices an ordered sequence into 1-indexed fixed-size pages.
// A page past the end is empty, not an error; the last non-empty page
// holds the remainder.
func Paginate[T any](items []T, size, number int) (Page[T], error) {
	if size < 1 || number < 1 {
		return Page[T]{}, ErrInvalidPage
	}

	total := len(items)
	start := (number - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end],
		Number:     number,
		TotalCount: total,
		HasNext:    end < total,
		HasPrev:    number > 1 && total > 0,
	}, nil
}
