// internal/workers/content/detect-gaps/handler_test.go
package detectgaps

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placeholder-workers/internal/common/errors"
	"placeholder-workers/internal/common/logger"
	"placeholder-workers/internal/placeholder"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T) *Handler {
	testLogger := logger.NewTestLogger(t)
	rules := placeholder.NewRuleTable()
	engine := placeholder.NewEngine(rules, testLogger)
	cache := placeholder.NewCache(engine, time.Hour, 0, testLogger)
	detector := placeholder.NewHybridDetector(cache, placeholder.NewGapDetector(rules), testLogger)
	return NewHandler(LoadConfig(), detector, testLogger)
}

func createInput(text string, enableValidation *bool) *Input {
	return &Input{
		TemplateText:     text,
		EnableValidation: enableValidation,
	}
}

func boolPtr(b bool) *bool { return &b }

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_WithValidation(t *testing.T) {
	handler := createTestHandler(t)

	input := createInput("Gere {content_type} sobre {primary_keyword} para {target_audience}", nil)
	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, 3, output.TotalGaps)
	assert.Equal(t, "hybrid", output.MethodUsed)
	assert.Equal(t, "basic", output.ValidationLevel)
	assert.NotEmpty(t, output.DetectionID)

	for _, gap := range output.Gaps {
		assert.NotEmpty(t, gap.SuggestedValue)
		assert.GreaterOrEqual(t, gap.Confidence, 0.0)
		assert.LessOrEqual(t, gap.Confidence, 1.0)
	}
}

func TestHandler_Execute_ValidationDisabled(t *testing.T) {
	handler := createTestHandler(t)

	input := createInput("Gere {content_type} sobre {primary_keyword}", boolPtr(false))
	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "regex", output.MethodUsed)
	for _, gap := range output.Gaps {
		assert.Empty(t, gap.SuggestedValue)
	}
}

func TestHandler_Execute_EmptyTemplate(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), createInput("", nil))

	// Empty text is canonical and simply has nothing to detect.
	require.NoError(t, err)
	assert.Zero(t, output.TotalGaps)
	assert.Zero(t, output.ConfidenceAvg)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_MigrationFailureSurfaces(t *testing.T) {
	handler := createTestHandler(t)

	_, err := handler.Execute(context.Background(), createInput("Crie um [TIPO-CONTEUDO]", nil))

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeDetectionFailed, stdErr.Code)
	assert.Contains(t, stdErr.Details, "obrigatórios")
}
