package placeholder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDetector() *GapDetector {
	return NewGapDetector(NewRuleTable())
}

func TestDetector_KnownTypes(t *testing.T) {
	gaps := createTestDetector().Detect("Gere {content_type} sobre {primary_keyword} para {target_audience}")

	require.Len(t, gaps, 3)
	assert.Equal(t, TypeContentType, gaps[0].PlaceholderType)
	assert.Equal(t, TypePrimaryKeyword, gaps[1].PlaceholderType)
	assert.Equal(t, TypeTargetAudience, gaps[2].PlaceholderType)

	for _, gap := range gaps {
		assert.Equal(t, MethodRegex, gap.DetectionMethod)
		assert.Equal(t, LevelBasic, gap.ValidationLevel)
	}
}

func TestDetector_CustomPlaceholder(t *testing.T) {
	gaps := createTestDetector().Detect("Texto com {campo_proprio} e {primary_keyword}")

	require.Len(t, gaps, 2)
	assert.Equal(t, TypeCustom, gaps[0].PlaceholderType)
	assert.Equal(t, "campo_proprio", gaps[0].PlaceholderName)
	assert.Equal(t, TypePrimaryKeyword, gaps[1].PlaceholderType)
}

func TestDetector_NoDoubleCounting(t *testing.T) {
	// A known field must never also match the custom sweep.
	gaps := createTestDetector().Detect("{primary_keyword}")

	require.Len(t, gaps, 1)
	assert.Equal(t, TypePrimaryKeyword, gaps[0].PlaceholderType)
}

func TestDetector_Completeness(t *testing.T) {
	text := "{primary_keyword} {cluster_id} {categoria} {custom_a} {custom_b}"
	gaps := createTestDetector().Detect(text)

	assert.Len(t, gaps, strings.Count(text, "{"))
}

func TestDetector_GapsOrderedByPosition(t *testing.T) {
	gaps := createTestDetector().Detect("{tone} depois {campo_x} depois {categoria}")

	require.Len(t, gaps, 3)
	for i := 1; i < len(gaps); i++ {
		assert.Greater(t, gaps[i].StartPos, gaps[i-1].StartPos)
	}
}

func TestDetector_Confidence(t *testing.T) {
	longContext := strings.Repeat("contexto suficiente para julgar a ocorrência. ", 3)

	tests := []struct {
		name     string
		text     string
		expected float64
	}{
		{name: "primary keyword base", text: longContext + "{primary_keyword}" + longContext, expected: 0.98},
		{name: "cluster id base", text: longContext + "{cluster_id}" + longContext, expected: 0.98},
		{name: "other known type base", text: longContext + "{categoria}" + longContext, expected: 0.95},
		{name: "custom base", text: longContext + "{campo_x}" + longContext, expected: 0.90},
		{name: "short context penalty", text: "{tone}", expected: 0.95 * 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gaps := createTestDetector().Detect(tt.text)
			require.Len(t, gaps, 1)
			assert.InDelta(t, tt.expected, gaps[0].Confidence, 1e-9)
			assert.GreaterOrEqual(t, gaps[0].Confidence, 0.0)
			assert.LessOrEqual(t, gaps[0].Confidence, 1.0)
		})
	}
}

func TestDetector_ContextWindow(t *testing.T) {
	padding := strings.Repeat("a", 200)
	gaps := createTestDetector().Detect(padding + "{categoria}" + padding)

	require.Len(t, gaps, 1)
	// ±100 characters around the match, plus the token itself.
	assert.Len(t, gaps[0].Context, 200+len("{categoria}"))
}

func TestDetector_CustomContextWindow(t *testing.T) {
	padding := strings.Repeat("a", 200)
	text := padding + "{categoria}" + padding

	gaps := NewGapDetectorWithWindow(NewRuleTable(), 50).Detect(text)
	require.Len(t, gaps, 1)
	assert.Len(t, gaps[0].Context, 100+len("{categoria}"))

	// Non-positive windows fall back to the default.
	gaps = NewGapDetectorWithWindow(NewRuleTable(), 0).Detect(text)
	require.Len(t, gaps, 1)
	assert.Len(t, gaps[0].Context, 200+len("{categoria}"))
}

func TestDetector_EmptyText(t *testing.T) {
	assert.Empty(t, createTestDetector().Detect(""))
}
