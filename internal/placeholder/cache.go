package placeholder

import (
	"context"
	"sync"
	"time"

	"placeholder-workers/internal/common/logger"
	"placeholder-workers/internal/common/metrics"
)

// Migrator is the call surface shared by the engine's caching wrappers.
type Migrator interface {
	Migrate(ctx context.Context, text string, force bool) *MigrationResult
}

// CacheStats is a point-in-time snapshot of cache effectiveness.
type CacheStats struct {
	Size     int     `json:"size"`
	Hits     int64   `json:"hits"`
	Misses   int64   `json:"misses"`
	HitRatio float64 `json:"hit_ratio"`
}

type cacheKey struct {
	hash  string
	force bool
}

type cacheEntry struct {
	result   *MigrationResult
	storedAt time.Time
}

// Cache memoizes migration results by content hash with TTL expiry. The
// original engine this replaces never evicted by size; a max-entries bound
// is kept on top of the TTL so a long-lived worker cannot grow without
// limit.
type Cache struct {
	engine     *Engine
	ttl        time.Duration
	maxEntries int
	log        logger.Logger

	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
	order   []cacheKey
	hits    int64
	misses  int64
}

// NewCache wraps engine with an in-memory migration cache. A zero ttl
// means entries never expire; maxEntries <= 0 means unbounded.
func NewCache(engine *Engine, ttl time.Duration, maxEntries int, log logger.Logger) *Cache {
	return &Cache{
		engine:     engine,
		ttl:        ttl,
		maxEntries: maxEntries,
		log:        log,
		entries:    make(map[cacheKey]cacheEntry),
	}
}

// Migrate returns the cached result for text when present and fresh,
// calling through to the engine otherwise. Cached results are shared:
// callers must treat them as immutable.
func (c *Cache) Migrate(_ context.Context, text string, force bool) *MigrationResult {
	key := cacheKey{hash: contentHash(text), force: force}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok {
		if c.ttl == 0 || time.Since(entry.storedAt) < c.ttl {
			c.hits++
			c.mu.Unlock()
			metrics.CacheHits.Inc()
			return entry.result
		}
		c.evict(key)
	}
	c.misses++
	c.mu.Unlock()
	metrics.CacheMisses.Inc()

	result := c.engine.Migrate(text, force)

	c.mu.Lock()
	if _, ok := c.entries[key]; !ok {
		c.entries[key] = cacheEntry{result: result, storedAt: time.Now()}
		c.order = append(c.order, key)
		for c.maxEntries > 0 && len(c.entries) > c.maxEntries {
			c.evict(c.order[0])
		}
	}
	c.mu.Unlock()
	return result
}

// evict removes key; caller holds c.mu.
func (c *Cache) evict(key cacheKey) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cache unconditionally.
func (c *Cache) Clear() {
	c.mu.Lock()
	dropped := len(c.entries)
	c.entries = make(map[cacheKey]cacheEntry)
	c.order = nil
	c.mu.Unlock()

	c.log.Debug("cache de migração limpo", map[string]interface{}{
		"dropped": dropped,
	})
}

// Stats returns a consistent snapshot of the cache counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	stats := CacheStats{
		Size:   len(c.entries),
		Hits:   c.hits,
		Misses: c.misses,
	}
	if total := c.hits + c.misses; total > 0 {
		stats.HitRatio = float64(c.hits) / float64(total)
	}
	return stats
}
