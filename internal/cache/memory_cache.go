package cache

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
)

// MemoryProductCache keeps the catalog snapshot in process memory. Writes
// are a single pointer store, so concurrent refreshes are last-writer-wins.
type MemoryProductCache struct {
	snapshot atomic.Pointer[CatalogSnapshot]
}

// NewMemoryProductCache creates an empty product cache.
func NewMemoryProductCache() *MemoryProductCache {
	return &MemoryProductCache{}
}

func (c *MemoryProductCache) Get(_ context.Context) (*CatalogSnapshot, error) {
	s := c.snapshot.Load()
	if s == nil {
		return nil, ErrCacheMiss
	}
	return s, nil
}

func (c *MemoryProductCache) Set(_ context.Context, snapshot *CatalogSnapshot) error {
	c.snapshot.Store(snapshot)
	return nil
}

// MemorySearchCache is an in-process map of search results. Once it holds
// more than maxEntries, the evictBatch oldest entries are dropped in one
// pass. The mutex only protects the map itself; identical concurrent
// queries still overwrite each other.
type MemorySearchCache struct {
	mu         sync.Mutex
	entries    map[string]*SearchEntry
	maxEntries int
	evictBatch int
}

// NewMemorySearchCache creates an empty search cache.
func NewMemorySearchCache(maxEntries, evictBatch int) *MemorySearchCache {
	if maxEntries <= 0 {
		maxEntries = 100
	}
	if evictBatch <= 0 {
		evictBatch = 1
	}
	return &MemorySearchCache{
		entries:    make(map[string]*SearchEntry),
		maxEntries: maxEntries,
		evictBatch: evictBatch,
	}
}

func (c *MemorySearchCache) Get(_ context.Context, key string) (*SearchEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return e, nil
}

func (c *MemorySearchCache) Set(_ context.Context, key string, entry *SearchEntry) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry
	if len(c.entries) <= c.maxEntries {
		return 0, nil
	}
	return c.evictOldestLocked(), nil
}

func (c *MemorySearchCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *MemorySearchCache) evictOldestLocked() int {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return c.entries[keys[i]].StoredAt.Before(c.entries[keys[j]].StoredAt)
	})

	n := c.evictBatch
	if n > len(keys) {
		n = len(keys)
	}
	for _, k := range keys[:n] {
		delete(c.entries, k)
	}
	return n
}
