// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placeholder-workers/internal/common/logger"
	"placeholder-workers/internal/placeholder"

	detectgaps "placeholder-workers/internal/workers/content/detect-gaps"
	migratetemplate "placeholder-workers/internal/workers/content/migrate-template"
)

// buildPipeline wires the full engine the way the worker manager does:
// rule table, engine, cache, detector, and the two handlers on top.
func buildPipeline(t *testing.T, migrator placeholder.Migrator, rules *placeholder.RuleTable) (*migratetemplate.Handler, *detectgaps.Handler) {
	testLogger := logger.NewTestLogger(t)
	detector := placeholder.NewHybridDetector(migrator, placeholder.NewGapDetector(rules), testLogger)

	mt := migratetemplate.NewHandler(migratetemplate.LoadConfig(), migrator, testLogger)
	dg := detectgaps.NewHandler(detectgaps.LoadConfig(), detector, testLogger)
	return mt, dg
}

func buildMemoryPipeline(t *testing.T) (*migratetemplate.Handler, *detectgaps.Handler) {
	testLogger := logger.NewTestLogger(t)
	rules := placeholder.NewRuleTable()
	engine := placeholder.NewEngine(rules, testLogger)
	cache := placeholder.NewCache(engine, time.Hour, 0, testLogger)
	return buildPipeline(t, cache, rules)
}

func TestE2E_MigrateThenDetect(t *testing.T) {
	mt, dg := buildMemoryPipeline(t)
	ctx := context.Background()

	migrated, err := mt.Execute(ctx, &migratetemplate.Input{
		TemplateText: "Crie um [TIPO-CONTEUDO] sobre [PALAVRA-CHAVE] na [CATEGORIA] do [CLUSTER ID] para [PUBLICO-ALVO]",
	})
	require.NoError(t, err)
	assert.Equal(t, "old_brackets", migrated.FormatDetected)

	detected, err := dg.Execute(ctx, &detectgaps.Input{
		TemplateText: migrated.MigratedText,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, detected.TotalGaps)
	assert.Equal(t, "hybrid", detected.MethodUsed)

	for _, gap := range detected.Gaps {
		assert.NotEmpty(t, gap.SuggestedValue)
		assert.GreaterOrEqual(t, gap.Confidence, 0.0)
		assert.LessOrEqual(t, gap.Confidence, 1.0)
	}
}

func TestE2E_MigrationIsIdempotentAcrossWorkers(t *testing.T) {
	mt, _ := buildMemoryPipeline(t)
	ctx := context.Background()

	first, err := mt.Execute(ctx, &migratetemplate.Input{
		TemplateText: "Gere [PALAVRA-CHAVE] na [CATEGORIA] do [CLUSTER ID]",
	})
	require.NoError(t, err)

	second, err := mt.Execute(ctx, &migratetemplate.Input{TemplateText: first.MigratedText})
	require.NoError(t, err)
	assert.Equal(t, first.MigratedText, second.MigratedText)
	assert.Empty(t, second.MigrationsApplied)
}

func TestE2E_RedisBackedPipeline(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	testLogger := logger.NewTestLogger(t)
	rules := placeholder.NewRuleTable()
	engine := placeholder.NewEngine(rules, testLogger)
	cache := placeholder.NewRedisCache(engine, client, time.Hour, testLogger)

	mt, dg := buildPipeline(t, cache, rules)
	ctx := context.Background()

	text := "Sobre $palavra_chave na $categoria do $cluster_id"
	migrated, err := mt.Execute(ctx, &migratetemplate.Input{TemplateText: text})
	require.NoError(t, err)
	assert.Equal(t, "template_dollar", migrated.FormatDetected)

	// Second migration of the same text is served from Redis.
	_, err = mt.Execute(ctx, &migratetemplate.Input{TemplateText: text})
	require.NoError(t, err)
	assert.Equal(t, int64(1), cache.Stats().Hits)

	detected, err := dg.Execute(ctx, &detectgaps.Input{TemplateText: migrated.MigratedText})
	require.NoError(t, err)
	assert.Equal(t, 3, detected.TotalGaps)
}

func TestE2E_ValidationFailureIsReportedNotSwallowed(t *testing.T) {
	mt, dg := buildMemoryPipeline(t)
	ctx := context.Background()

	_, err := mt.Execute(ctx, &migratetemplate.Input{TemplateText: "Crie um [TIPO-CONTEUDO]"})
	require.Error(t, err)

	_, err = dg.Execute(ctx, &detectgaps.Input{TemplateText: "Crie um [TIPO-CONTEUDO]"})
	require.Error(t, err)
}
