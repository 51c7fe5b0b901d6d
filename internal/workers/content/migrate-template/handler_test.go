// internal/workers/content/migrate-template/handler_test.go
package migratetemplate

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
	return NewHandler(LoadConfig(), cache, testLogger)
}

func createInput(text string, force bool) *Input {
	return &Input{
		TemplateText: text,
		Force:        force,
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	handler := createTestHandler(t)

	input := createInput("Crie um [TIPO-CONTEUDO] sobre [PALAVRA-CHAVE] na [CATEGORIA] do [CLUSTER ID]", false)
	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "Crie um {content_type} sobre {primary_keyword} na {categoria} do {cluster_id}", output.MigratedText)
	assert.Equal(t, "old_brackets", output.FormatDetected)
	assert.Len(t, output.MigrationsApplied, 4)
	assert.NotEqual(t, output.HashBefore, output.HashAfter)
}

func TestHandler_Execute_AlreadyCanonical(t *testing.T) {
	handler := createTestHandler(t)

	text := "Gere {primary_keyword} na {categoria} do {cluster_id}"
	output, err := handler.Execute(context.Background(), createInput(text, false))

	require.NoError(t, err)
	assert.Equal(t, text, output.MigratedText)
	assert.Empty(t, output.MigrationsApplied)
	require.Len(t, output.Warnings, 1)
	assert.Equal(t, "Texto já está no formato padrão", output.Warnings[0])
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_EmptyTemplate(t *testing.T) {
	handler := createTestHandler(t)

	tests := []struct {
		name string
		text string
	}{
		{name: "empty string", text: ""},
		{name: "whitespace only", text: "   \n\t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Execute(context.Background(), createInput(tt.text, false))
			require.Error(t, err)

			stdErr, ok := err.(*errors.StandardError)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeEmptyTemplate, stdErr.Code)
		})
	}
}

func TestHandler_Execute_ValidationFailure(t *testing.T) {
	handler := createTestHandler(t)

	_, err := handler.Execute(context.Background(), createInput("Crie um [TIPO-CONTEUDO]", false))

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeMigrationValidationFailed, stdErr.Code)
	assert.Contains(t, stdErr.Details, "cluster_id")
}
