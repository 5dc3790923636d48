package cache

import (
	"sync"
	"time"
)

// MemoryCache implements Cache with a mutex-guarded map. Entries age
// out by TTL only; there is no size bound or background sweeper, so
// expired entries linger until overwritten or the process exits.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry

	now func() time.Time
}

type entry struct {
	fetchedAt time.Time
	value     any
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Read implements Reader.
func (mc *MemoryCache) Read(key string, maxAge time.Duration) (any, bool) {
	mc.mu.RLock()
	e, ok := mc.entries[key]
	mc.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if maxAge > 0 && mc.now().Sub(e.fetchedAt) >= maxAge {
		return nil, false
	}
	return e.value, true
}

// Write implements Writer. Last writer wins on concurrent misses for
// the same key.
func (mc *MemoryCache) Write(key string, value any) {
	mc.mu.Lock()
	mc.entries[key] = entry{fetchedAt: mc.now(), value: value}
	mc.mu.Unlock()
}

// Len reports the number of stored entries, expired ones included.
func (mc *MemoryCache) Len() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return len(mc.entries)
}
