package placeholder

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"placeholder-workers/internal/common/logger"
	"placeholder-workers/internal/common/metrics"
)

const redisKeyPrefix = "placeholder:migration"

// RedisCache memoizes migration results in Redis so a fleet of workers
// shares one cache. Any Redis failure degrades to a plain engine call
// with a warning; the cache never makes a migration fail.
type RedisCache struct {
	engine *Engine
	client redis.UniversalClient
	ttl    time.Duration
	log    logger.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

func NewRedisCache(engine *Engine, client redis.UniversalClient, ttl time.Duration, log logger.Logger) *RedisCache {
	return &RedisCache{
		engine: engine,
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func (c *RedisCache) key(text string, force bool) string {
	return fmt.Sprintf("%s:%s:%t", redisKeyPrefix, contentHash(text), force)
}

// Migrate returns the shared cached result when present, calling through
// to the engine otherwise.
func (c *RedisCache) Migrate(ctx context.Context, text string, force bool) *MigrationResult {
	key := c.key(text, force)

	payload, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var cached MigrationResult
		if jsonErr := json.Unmarshal([]byte(payload), &cached); jsonErr == nil {
			c.hits.Add(1)
			metrics.CacheHits.Inc()
			return &cached
		}
		// Poisoned entry: drop it and recompute.
		c.client.Del(ctx, key)
	} else if err != redis.Nil {
		c.log.Warn("falha ao consultar cache de migração no Redis", map[string]interface{}{
			"error": err.Error(),
		})
	}

	c.misses.Add(1)
	metrics.CacheMisses.Inc()
	result := c.engine.Migrate(text, force)

	if payload, err := json.Marshal(result); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.log.Warn("falha ao gravar cache de migração no Redis", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return result
}

// Clear removes every migration entry owned by this cache.
func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, redisKeyPrefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Stats reports local hit/miss counters. Size is not tracked because the
// keyspace is shared across processes.
func (c *RedisCache) Stats() CacheStats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	stats := CacheStats{Hits: hits, Misses: misses}
	if total := hits + misses; total > 0 {
		stats.HitRatio = float64(hits) / float64(total)
	}
	return stats
}
