package session

import (
	"context"
	"sync"
	"time"

	"certquiz/internal/quiz"
)

// CacheEntry is the bulky per-attempt state that gets spilled server-side:
// the shuffled question list plus when it was stored.
type CacheEntry struct {
	Questions []quiz.Question `json:"questions"`
	CreatedAt time.Time       `json:"created_at"`
}

// SpillCache is the injected server-side store for spilled attempt state.
// Entries are best-effort: a miss after process restart or eviction is an
// expected outcome the Manager reports as ErrExpired, never a fault.
type SpillCache interface {
	Put(ctx context.Context, key string, entry CacheEntry) error
	Get(ctx context.Context, key string) (CacheEntry, bool, error)
}

// MemoryCache is the default process-wide spill store: a mutex-guarded map
// with an optional TTL. With ttl zero, entries live until process exit.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]CacheEntry
	ttl     time.Duration
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]CacheEntry),
		ttl:     ttl,
	}
}

func (c *MemoryCache) Put(_ context.Context, key string, entry CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
	return nil
}

func (c *MemoryCache) Get(_ context.Context, key string) (CacheEntry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return CacheEntry{}, false, nil
	}
	if c.ttl > 0 && time.Since(entry.CreatedAt) > c.ttl {
		return CacheEntry{}, false, nil
	}
	return entry, true, nil
}

// CleanupExpired drops entries past the TTL. It is safe to skip entirely;
// Get already treats stale entries as misses.
func (c *MemoryCache) CleanupExpired() {
	if c.ttl == 0 {
		return
	}

	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if now.Sub(entry.CreatedAt) > c.ttl {
			delete(c.entries, key)
		}
	}
}
