package partition

import "hash/fnv"

// Count is the default number of cache shards.
const Count = 16

// For returns the shard for key out of Count shards.
func For(key string) int {
	return Of(key, Count)
}

// Of returns the shard for key out of n shards. Stable and deterministic:
// the same key always maps to the same shard for a given n.
func Of(key string, n int) int {
	if n <= 1 {
		return 0
	}
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() % uint32(n))
}
