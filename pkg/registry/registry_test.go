// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRegistry(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "rules-registry.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRegistry_Valid(t *testing.T) {
	path := writeRegistry(t, `{
		"version": "1.0.0",
		"lastUpdated": "2026-08-20T12:00:00Z",
		"rules": [
			{"oldFormat": "[MARCA]", "newFormat": "{brand}", "fieldName": "brand", "migrationPriority": 50}
		]
	}`)

	reg, err := LoadRegistry(path)

	require.NoError(t, err)
	assert.Equal(t, "1.0.0", reg.Version)
	require.Len(t, reg.Rules, 1)
	assert.Equal(t, "[MARCA]", reg.Rules[0].OldFormat)
	assert.Equal(t, "brand", reg.Rules[0].FieldName)
}

func TestLoadRegistry_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing rules array",
			content: `{"version": "1.0.0"}`,
		},
		{
			name:    "rule without priority",
			content: `{"version": "1.0.0", "rules": [{"oldFormat": "[X]", "newFormat": "{x}", "fieldName": "x"}]}`,
		},
		{
			name:    "new format not canonical",
			content: `{"version": "1.0.0", "rules": [{"oldFormat": "[X]", "newFormat": "$x", "fieldName": "x", "migrationPriority": 1}]}`,
		},
		{
			name:    "zero priority",
			content: `{"version": "1.0.0", "rules": [{"oldFormat": "[X]", "newFormat": "{x}", "fieldName": "x", "migrationPriority": 0}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRegistry(writeRegistry(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
