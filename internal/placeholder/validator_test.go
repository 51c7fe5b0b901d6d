package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestValidator() *MigrationValidator {
	return NewMigrationValidator(NewRuleTable())
}

const validCanonical = "Crie um {content_type} sobre {primary_keyword} na {categoria} do {cluster_id}"

func TestMigrationValidator_ValidText(t *testing.T) {
	errs, warns := createTestValidator().Validate(validCanonical)

	assert.Empty(t, errs)
	assert.Empty(t, warns)
}

func TestMigrationValidator_MissingRequired(t *testing.T) {
	errs, _ := createTestValidator().Validate("Texto com {primary_keyword} apenas")

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "obrigatórios")
	assert.Contains(t, errs[0], "cluster_id")
	assert.Contains(t, errs[0], "categoria")
	assert.NotContains(t, errs[0], "primary_keyword")
}

func TestMigrationValidator_UnmappedIsWarningOnly(t *testing.T) {
	errs, warns := createTestValidator().Validate(validCanonical + " e {campo_customizado}")

	assert.Empty(t, errs)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "campo_customizado")
}

func TestMigrationValidator_MalformedSyntax(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "unclosed brace at end", text: validCanonical + " e {aberto"},
		{name: "stray closing brace", text: "fechado} " + validCanonical},
		{name: "empty braces", text: validCanonical + " {}"},
		{name: "internal whitespace", text: validCanonical + " { nome }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, _ := createTestValidator().Validate(tt.text)
			require.NotEmpty(t, errs)
			assert.Contains(t, errs[len(errs)-1], "malformada")
		})
	}
}

func TestMigrationValidator_ControlCharacters(t *testing.T) {
	errs, _ := createTestValidator().Validate(validCanonical + "\x01")

	require.NotEmpty(t, errs)
	assert.Contains(t, errs[len(errs)-1], "caractere de controle")
}

func TestMigrationValidator_CollectsAllIssues(t *testing.T) {
	errs, warns := createTestValidator().Validate("Texto {desconhecido} com {aberto")

	// Missing required and malformed syntax are independent errors; the
	// unmapped name is still reported as a warning alongside them.
	assert.Len(t, errs, 2)
	assert.Len(t, warns, 1)
}
