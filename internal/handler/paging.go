package handler

import (
	"net/http"
	"strconv"
	"strings"
)

const defaultPageSize = 10

// Page is one window of a fully fetched list. The backend returns whole
// collections; slicing happens here after filtering.
type Page[T any] struct {
	Items    []T
	Current  int
	Total    int
	HasPrev  bool
	HasNext  bool
	PrevPage int
	NextPage int
}

func paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = defaultPageSize
	}
	total := (len(items) + size - 1) / size
	if total == 0 {
		total = 1
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}

	start := (page - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:    items[start:end],
		Current:  page,
		Total:    total,
		HasPrev:  page > 1,
		HasNext:  page < total,
		PrevPage: page - 1,
		NextPage: page + 1,
	}
}

func pageParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func sizeParam(r *http.Request) int {
	switch n, _ := strconv.Atoi(r.URL.Query().Get("size")); n {
	case 5, 10, 25, 50:
		return n
	default:
		return defaultPageSize
	}
}

// matchesQuery reports whether any field contains q, case-insensitively.
// An empty query matches everything.
func matchesQuery(q string, fields ...string) bool {
	q = strings.TrimSpace(strings.ToLower(q))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
