// Package slices provides small functional helpers over slices.
package slices

// Map transforms every element of a slice with the given mapper.
func Map[F any, T any](original []F, mapper func(F) T) []T {
	destination := make([]T, len(original))
	for i, elem := range original {
		destination[i] = mapper(elem)
	}
	return destination
}

// Filter returns the elements for which the predicate returns true.
func Filter[T any](slice []T, predicate func(T) bool) []T {
	var result []T
	for _, item := range slice {
		if predicate(item) {
			result = append(result, item)
		}
	}
	return result
}
