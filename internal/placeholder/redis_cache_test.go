package placeholder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placeholder-workers/internal/common/logger"
)

func setupRedis(t *testing.T) *redis.Client {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}

func createTestRedisCache(t *testing.T, client redis.UniversalClient) *RedisCache {
	return NewRedisCache(createTestEngine(t), client, time.Hour, logger.NewTestLogger(t))
}

func TestRedisCache_MissThenHit(t *testing.T) {
	cache := createTestRedisCache(t, setupRedis(t))
	ctx := context.Background()

	first := cache.Migrate(ctx, completeTemplate, false)
	second := cache.Migrate(ctx, completeTemplate, false)

	require.True(t, first.Success)
	assert.Equal(t, first.MigratedText, second.MigratedText)
	assert.Equal(t, first.MigrationsApplied, second.MigrationsApplied)

	stats := cache.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestRedisCache_ForceFlagIsPartOfKey(t *testing.T) {
	cache := createTestRedisCache(t, setupRedis(t))
	ctx := context.Background()

	cache.Migrate(ctx, completeTemplate, false)
	cache.Migrate(ctx, completeTemplate, true)

	assert.Equal(t, int64(0), cache.Stats().Hits)
	assert.Equal(t, int64(2), cache.Stats().Misses)
}

func TestRedisCache_Clear(t *testing.T) {
	client := setupRedis(t)
	cache := createTestRedisCache(t, client)
	ctx := context.Background()

	cache.Migrate(ctx, completeTemplate, false)
	require.NoError(t, cache.Clear(ctx))

	keys, err := client.Keys(ctx, redisKeyPrefix+":*").Result()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRedisCache_BackendFailureDegradesToEngine(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := createTestRedisCache(t, client)
	ctx := context.Background()

	key := cache.key(completeTemplate, false)
	mock.ExpectGet(key).SetErr(errors.New("connection refused"))
	mock.Regexp().ExpectSet(key, `.*`, time.Hour).SetErr(errors.New("connection refused"))

	result := cache.Migrate(ctx, completeTemplate, false)

	// The engine still answers even when Redis is down.
	require.True(t, result.Success)
	assert.Contains(t, result.MigratedText, "{primary_keyword}")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_PoisonedEntryIsRecomputed(t *testing.T) {
	client := setupRedis(t)
	cache := createTestRedisCache(t, client)
	ctx := context.Background()

	key := cache.key(completeTemplate, false)
	require.NoError(t, client.Set(ctx, key, "not-json", time.Hour).Err())

	result := cache.Migrate(ctx, completeTemplate, false)

	require.True(t, result.Success)
	assert.Equal(t, int64(1), cache.Stats().Misses)
}
