package aggregation

import (
	"cmp"
	"slices"
)

// LatestBy projects a keyed record stream onto its most recent record per key,
// where "most recent" is the highest id(e). This is the max-ID-per-group
// pattern shared by licenses, ownerships and allocations.
func LatestBy[E any, K comparable](items []E, key func(E) K, id func(E) int64) map[K]E {
	latest := make(map[K]E, len(items))
	for _, item := range items {
		k := key(item)
		if cur, ok := latest[k]; ok && id(cur) >= id(item) {
			continue
		}
		latest[k] = item
	}
	return latest
}

// GroupBy partitions items by key. Each group keeps input order.
func GroupBy[E any, K comparable](items []E, key func(E) K) map[K][]E {
	groups := make(map[K][]E)
	for _, item := range items {
		k := key(item)
		groups[k] = append(groups[k], item)
	}
	return groups
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
