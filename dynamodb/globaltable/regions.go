package globaltable

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// sortedSet returns the sorted, de-duplicated elements of in as a new slice.
func sortedSet[T constraints.Ordered](in []T) []T {
	out := slices.Clone(in)
	slices.Sort(out)
	return slices.Compact(out)
}

// difference returns the elements of a not in b, in the order of a.
func difference[T constraints.Ordered](a, b []T) []T {
	exclude := make(map[T]struct{}, len(b))
	for _, v := range b {
		exclude[v] = struct{}{}
	}
	var out []T
	for _, v := range a {
		if _, ok := exclude[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}
