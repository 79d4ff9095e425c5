package domain

import "strings"

// OrderingResult is a completed shuffle: a permutation of zero-based section
// indices and the section texts in that order. It is a snapshot; later edits
// to the manuscript or constraints do not affect it.
type OrderingResult struct {
	Indices  []int
	Sections []string
}

// NewOrderingResult dereferences indices against sections. Both slices of
// the result are freshly allocated.
func NewOrderingResult(indices []int, sections []string) *OrderingResult {
	r := &OrderingResult{
		Indices:  make([]int, len(indices)),
		Sections: make([]string, len(indices)),
	}
	copy(r.Indices, indices)
	for i, idx := range indices {
		r.Sections[i] = sections[idx]
	}
	return r
}

// Len returns the number of sections in the ordering.
func (r *OrderingResult) Len() int {
	return len(r.Indices)
}

// Assemble joins the reordered sections into a new manuscript.
func (r *OrderingResult) Assemble(joiner string) string {
	return strings.Join(r.Sections, joiner)
}

// Numbers returns the one-based section numbers in output order.
func (r *OrderingResult) Numbers() []int {
	numbers := make([]int, len(r.Indices))
	for i, idx := range r.Indices {
		numbers[i] = idx + 1
	}
	return numbers
}
