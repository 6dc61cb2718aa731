package collections

import (
	"cmp"
	"slices"
)

// Set is a set over an ordered element type, so callers that need
// determinism can ask for the members in order.
type Set[T cmp.Ordered] map[T]struct{}

// NewSet creates a Set holding the given values.
func NewSet[T cmp.Ordered](vs ...T) Set[T] {
	s := Set[T]{}
	s.Add(vs...)
	return s
}

// Add inserts one or more values.
func (s Set[T]) Add(vs ...T) {
	for _, v := range vs {
		s[v] = struct{}{}
	}
}

// Has reports whether v is in the set.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in ascending order.
func (s Set[T]) Sorted() []T {
	r := make([]T, 0, len(s))
	for v := range s {
		r = append(r, v)
	}
	slices.Sort(r)
	return r
}
