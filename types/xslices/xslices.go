// Package xslices provides the small amount of slice and map functionality
// missing from the standard slices package that the rest of the repository
// uses.
package xslices

import (
	"cmp"
	"slices"
)

// Map executes the given function sequentially for every element of in, and
// returns a mapped slice.
func Map[In, Out any](in []In, fn func(e In) Out) (out []Out) {
	out = make([]Out, len(in))
	for ii, e := range in {
		out[ii] = fn(e)
	}
	return
}

// SortedKeys returns the keys of m in sorted order. Use it whenever iteration
// order must be deterministic.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Last returns the last element of a slice.
func Last[T any](slice []T) T {
	return slice[len(slice)-1]
}
