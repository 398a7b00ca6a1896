package vector

import (
	"cmp"
	"slices"
)

// Sort orders the range [first, last) ascending.
func Sort[T cmp.Ordered](first, last Iterator[T]) {
	slices.Sort(span(first, last))
}

func SortFunc[T any](first, last Iterator[T], cmp func(a, b T) int) {
	slices.SortFunc(span(first, last), cmp)
}

func IsSorted[T cmp.Ordered](first, last Iterator[T]) bool {
	return slices.IsSorted(span(first, last))
}

func IsSortedFunc[T any](first, last Iterator[T], cmp func(a, b T) int) bool {
	return slices.IsSortedFunc(span(first, last), cmp)
}
