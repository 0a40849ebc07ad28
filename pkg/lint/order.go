package lint

import (
	"cmp"
	"slices"
)

// OrderByStart returns a copy of items sorted ascending by the start offset
// reported by start. Items with equal starts keep their input order.
// The input slice is not modified.
func OrderByStart[T any](items []T, start func(T) int) []T {
	if items == nil {
		return nil
	}
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return cmp.Compare(start(a), start(b))
	})
	return sorted
}

// Ordered returns lints sorted by span start, stable on ties.
func Ordered(lints []Lint) []Lint {
	return OrderByStart(lints, func(l Lint) int { return l.Span.Start })
}
