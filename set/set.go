// Package set provides a small generic set.
package set

// Set is a generic set backed by a map.
type Set[T comparable] map[T]struct{}

// New creates an empty set.
func New[T comparable]() Set[T] {
	return make(Set[T])
}

// NewWithValues creates a set holding the given values.
func NewWithValues[T comparable](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts value into the set.
func (s Set[T]) Add(value T) {
	s[value] = struct{}{}
}

// Remove deletes value from the set.
func (s Set[T]) Remove(value T) {
	delete(s, value)
}

// Contains reports whether value is in the set.
func (s Set[T]) Contains(value T) bool {
	_, exists := s[value]
	return exists
}

// DoesNotContain reports whether value is absent from the set.
func (s Set[T]) DoesNotContain(value T) bool {
	return !s.Contains(value)
}

// Size returns the number of elements.
func (s Set[T]) Size() int {
	return len(s)
}

// ToSlice returns the values as a slice, in no particular order.
func (s Set[T]) ToSlice() []T {
	result := make([]T, 0, len(s))
	for value := range s {
		result = append(result, value)
	}
	return result
}
