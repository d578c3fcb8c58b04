package pricing

import (
	"cmp"
	"slices"
)

// SelectTier returns the item whose threshold is the largest one not above
// target, considering only items accepted by match. ok is false when no item
// matches or every matching threshold is above target.
func SelectTier[T any](items []T, match func(T) bool, threshold func(T) int64, target int64) (best T, ok bool) {
	candidates := make([]T, 0, len(items))
	for _, it := range items {
		if match(it) {
			candidates = append(candidates, it)
		}
	}
	slices.SortStableFunc(candidates, func(a, b T) int {
		return cmp.Compare(threshold(b), threshold(a))
	})
	for _, c := range candidates {
		if threshold(c) <= target {
			return c, true
		}
	}
	return best, false
}
