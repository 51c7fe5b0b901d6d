package placeholder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placeholder-workers/internal/common/logger"
)

func createTestCache(t *testing.T, ttl time.Duration, maxEntries int) *Cache {
	return NewCache(createTestEngine(t), ttl, maxEntries, logger.NewTestLogger(t))
}

func TestCache_HitReturnsSameResult(t *testing.T) {
	cache := createTestCache(t, time.Hour, 0)
	ctx := context.Background()

	first := cache.Migrate(ctx, completeTemplate, false)
	second := cache.Migrate(ctx, completeTemplate, false)

	// Cached results are shared, not copied.
	assert.Same(t, first, second)
	assert.Equal(t, first.MigratedText, second.MigratedText)
	assert.Equal(t, first.MigrationsApplied, second.MigrationsApplied)

	stats := cache.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 0.5, stats.HitRatio)
}

func TestCache_ForceFlagIsPartOfKey(t *testing.T) {
	cache := createTestCache(t, time.Hour, 0)
	ctx := context.Background()

	cache.Migrate(ctx, completeTemplate, false)
	cache.Migrate(ctx, completeTemplate, true)

	stats := cache.Stats()
	assert.Equal(t, int64(0), stats.Hits)
	assert.Equal(t, 2, stats.Size)
}

func TestCache_TTLExpiry(t *testing.T) {
	cache := createTestCache(t, time.Nanosecond, 0)
	ctx := context.Background()

	cache.Migrate(ctx, completeTemplate, false)
	time.Sleep(time.Millisecond)
	cache.Migrate(ctx, completeTemplate, false)

	stats := cache.Stats()
	assert.Equal(t, int64(0), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
}

func TestCache_MaxEntriesEvictsOldest(t *testing.T) {
	cache := createTestCache(t, time.Hour, 2)
	ctx := context.Background()

	cache.Migrate(ctx, "[PALAVRA-CHAVE] um", false)
	cache.Migrate(ctx, "[PALAVRA-CHAVE] dois", false)
	cache.Migrate(ctx, "[PALAVRA-CHAVE] três", false)

	require.Equal(t, 2, cache.Stats().Size)

	// The first entry was evicted; re-requesting it is a miss.
	cache.Migrate(ctx, "[PALAVRA-CHAVE] um", false)
	assert.Equal(t, int64(4), cache.Stats().Misses)
}

func TestCache_Clear(t *testing.T) {
	cache := createTestCache(t, time.Hour, 0)
	ctx := context.Background()

	cache.Migrate(ctx, completeTemplate, false)
	cache.Clear()

	assert.Equal(t, 0, cache.Stats().Size)
	cache.Migrate(ctx, completeTemplate, false)
	assert.Equal(t, int64(2), cache.Stats().Misses)
}
