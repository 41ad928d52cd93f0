package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/aevon-lab/fleet-analytics/internal/core/partition"
)

// MemoryStore is a thread-safe in-process LRU cache with TTL. Keys are spread
// over partition.Count shards so concurrent requests rarely share a lock.
type MemoryStore struct {
	shards []*lruShard
	nowFn  func() time.Time
}

type lruShard struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List
}

type memoryEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// NewMemoryStore creates a store holding up to capacity entries in total.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity < partition.Count {
		capacity = partition.Count
	}
	perShard := (capacity + partition.Count - 1) / partition.Count

	shards := make([]*lruShard, partition.Count)
	for i := range shards {
		shards[i] = &lruShard{
			capacity: perShard,
			entries:  make(map[string]*list.Element),
			order:    list.New(),
		}
	}
	return &MemoryStore{
		shards: shards,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) shard(key string) *lruShard {
	return s.shards[partition.For(key)]
}

// Get retrieves a value. Expired entries are removed on access.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	sh := s.shard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	elem, exists := sh.entries[key]
	if !exists {
		return nil, false, nil
	}

	entry := elem.Value.(*memoryEntry)
	if !entry.expiresAt.IsZero() && !s.nowFn().Before(entry.expiresAt) {
		delete(sh.entries, key)
		sh.order.Remove(elem)
		return nil, false, nil
	}

	// Move to front (most recently used)
	sh.order.MoveToFront(elem)
	return cloneBytes(entry.value), true, nil
}

// Set adds a value, evicting the shard's least recently used entry if full.
// ttl <= 0 keeps the entry until it is evicted.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = s.nowFn().Add(ttl)
	}

	sh := s.shard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if elem, exists := sh.entries[key]; exists {
		sh.order.MoveToFront(elem)
		entry := elem.Value.(*memoryEntry)
		entry.value = cloneBytes(value)
		entry.expiresAt = expiresAt
		return nil
	}

	if sh.order.Len() >= sh.capacity {
		if oldest := sh.order.Back(); oldest != nil {
			delete(sh.entries, oldest.Value.(*memoryEntry).key)
			sh.order.Remove(oldest)
		}
	}

	elem := sh.order.PushFront(&memoryEntry{key: key, value: cloneBytes(value), expiresAt: expiresAt})
	sh.entries[key] = elem
	return nil
}

// Purge removes all entries from every shard.
func (s *MemoryStore) Purge(_ context.Context) error {
	for _, sh := range s.shards {
		sh.mu.Lock()
		sh.entries = make(map[string]*list.Element)
		sh.order = list.New()
		sh.mu.Unlock()
	}
	return nil
}

// Len returns the number of live and not yet collected entries.
func (s *MemoryStore) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		n += sh.order.Len()
		sh.mu.Unlock()
	}
	return n
}

func (s *MemoryStore) Close() error { return nil }

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
