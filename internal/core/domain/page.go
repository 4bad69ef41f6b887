package domain

// GoatPageSize is the fixed page size of the roster list.
const GoatPageSize = 5

// Page is one slice of an already-loaded list.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// Paginate slices items into the requested 1-indexed page.
// The page is clamped into [1, TotalPages]; an empty list yields page 1 with no items.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size < 1 {
		size = GoatPageSize
	}
	total := len(items)
	pages := (total + size - 1) / size
	if page < 1 {
		page = 1
	}
	if pages == 0 || page > pages {
		page = max(pages, 1)
	}
	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return Page[T]{Items: out, Page: page, PageSize: size, TotalItems: total, TotalPages: pages}
}
