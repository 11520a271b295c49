package collection

import "slices"

// View is a derived list of a Collection. Its rows are recomputed only when
// the source revision changes.
type View[T any] struct {
	src   *Collection[T]
	query Query[T]

	valid    bool
	rev      uint64
	rows     []T
	computed int
}

// NewView returns a view of src through q.
func NewView[T any](src *Collection[T], q Query[T]) *View[T] {
	return &View[T]{src: src, query: q}
}

// Rows returns the filtered and sorted entities.
func (v *View[T]) Rows() []T {
	if !v.valid || v.rev != v.src.Revision() {
		v.rows = v.query.Apply(v.src.items)
		v.rev = v.src.Revision()
		v.valid = true
		v.computed++
	}
	return slices.Clone(v.rows)
}

// Len returns the number of rows.
func (v *View[T]) Len() int {
	return len(v.Rows())
}

// Page returns one page of rows along with the page count.
func (v *View[T]) Page(page, size int) ([]T, int) {
	rows := v.Rows()
	return Page(rows, page, size), PageCount(len(rows), size)
}
