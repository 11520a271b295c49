package collection

import (
	"slices"
	"sort"
	"strings"
)

// Predicate selects entities.
type Predicate[T any] func(*T) bool

// Query filters and orders a list. All predicates must match. A nil Less
// keeps insertion order.
type Query[T any] struct {
	Match []Predicate[T]
	Less  func(a, b *T) bool
}

// Where returns a copy of q with p added.
func (q Query[T]) Where(p Predicate[T]) Query[T] {
	q.Match = append(slices.Clip(q.Match), p)
	return q
}

// OrderBy returns a copy of q sorted by less.
func (q Query[T]) OrderBy(less func(a, b *T) bool) Query[T] {
	q.Less = less
	return q
}

// Apply returns the matching entities in order. The input is not modified.
func (q Query[T]) Apply(items []T) []T {
	out := make([]T, 0, len(items))
	for i := range items {
		if q.matches(&items[i]) {
			out = append(out, items[i])
		}
	}
	if q.Less != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return q.Less(&out[i], &out[j])
		})
	}
	return out
}

func (q Query[T]) matches(item *T) bool {
	for _, p := range q.Match {
		if p != nil && !p(item) {
			return false
		}
	}
	return true
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Search matches entities where any of the given fields contains term,
// ignoring case. An empty term matches everything.
func Search[T any](term string, fields ...func(*T) string) Predicate[T] {
	term = strings.TrimSpace(term)
	return func(item *T) bool {
		if term == "" {
			return true
		}
		for _, f := range fields {
			if ContainsFold(f(item), term) {
				return true
			}
		}
		return false
	}
}

// Equals matches entities whose field equals want exactly. An empty want
// matches everything.
func Equals[T any](want string, field func(*T) string) Predicate[T] {
	return func(item *T) bool {
		return want == "" || field(item) == want
	}
}

// PageCount returns the number of pages needed for total items, at least 1.
func PageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// Page returns the 1-based page of items. Out of range pages are empty.
func Page[T any](items []T, page, size int) []T {
	if size <= 0 {
		return slices.Clone(items)
	}
	if page < 1 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := min(start+size, len(items))
	return slices.Clone(items[start:end])
}
