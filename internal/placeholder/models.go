// Package placeholder implements the placeholder unification and hybrid
// gap-detection engine: it normalizes legacy template placeholder syntaxes
// into the canonical {name} form, validates the result, and detects which
// placeholders still need values, synthesizing safe fallbacks for them.
package placeholder

import "time"

// Format identifies the placeholder syntax family dominating a template text.
type Format string

const (
	FormatOldBrackets     Format = "old_brackets"
	FormatNewCurly        Format = "new_curly"
	FormatTemplateDollar  Format = "template_dollar"
	FormatAngularBrackets Format = "angular_brackets"
	FormatDoubleBrackets  Format = "double_brackets"
)

// Type is the canonical field a placeholder stands for. TypeCustom captures
// any {name} not present in the rewrite rule table.
type Type string

const (
	TypePrimaryKeyword    Type = "primary_keyword"
	TypeSecondaryKeywords Type = "secondary_keywords"
	TypeClusterContent    Type = "cluster_content"
	TypeClusterID         Type = "cluster_id"
	TypeClusterName       Type = "cluster_name"
	TypeCategoria         Type = "categoria"
	TypeFaseFunil         Type = "fase_funil"
	TypeData              Type = "data"
	TypeUsuario           Type = "usuario"
	TypeNiche             Type = "niche"
	TypeTargetAudience    Type = "target_audience"
	TypeContentType       Type = "content_type"
	TypeTone              Type = "tone"
	TypeLength            Type = "length"
	TypeCustom            Type = "custom"
)

// DetectionMethod records how a gap (or a whole detection run) was resolved.
type DetectionMethod string

const (
	MethodRegex    DetectionMethod = "regex"
	MethodHybrid   DetectionMethod = "hybrid"
	MethodFallback DetectionMethod = "fallback"
)

// ValidationLevel records how much validation was applied to a detection.
type ValidationLevel string

const (
	LevelNone  ValidationLevel = "none"
	LevelBasic ValidationLevel = "basic"
)

// RewriteRule maps a legacy placeholder spelling to its canonical {field} form.
// Rules are applied in ascending MigrationPriority order; ties keep table
// declaration order.
type RewriteRule struct {
	OldFormat         string `json:"old_format"`
	NewFormat         string `json:"new_format"`
	FieldName         string `json:"field_name"`
	Required          bool   `json:"required"`
	DefaultValue      string `json:"default_value,omitempty"`
	MigrationPriority int    `json:"migration_priority"`
}

// AppliedMigration records one rewrite rule application inside a migration run.
type AppliedMigration struct {
	OldFormat         string `json:"old_format"`
	NewFormat         string `json:"new_format"`
	FieldName         string `json:"field_name"`
	OccurrencesBefore int    `json:"occurrences_before"`
	OccurrencesAfter  int    `json:"occurrences_after"`
	Priority          int    `json:"priority"`
}

// MigrationResult is the immutable outcome of one Migrate call.
type MigrationResult struct {
	OriginalText      string             `json:"original_text"`
	MigratedText      string             `json:"migrated_text"`
	FormatDetected    Format             `json:"format_detected"`
	MigrationsApplied []AppliedMigration `json:"migrations_applied"`
	Errors            []string           `json:"errors"`
	Warnings          []string           `json:"warnings"`
	Success           bool               `json:"success"`
	Timestamp         time.Time          `json:"timestamp"`
	HashBefore        string             `json:"hash_before"`
	HashAfter         string             `json:"hash_after"`
}

// DetectedGap is one placeholder occurrence in canonical-form text that may
// need a value. The hybrid detector fills SuggestedValue and ValidationScore
// when validation is enabled.
type DetectedGap struct {
	PlaceholderType Type                   `json:"placeholder_type"`
	PlaceholderName string                 `json:"placeholder_name"`
	StartPos        int                    `json:"start_pos"`
	EndPos          int                    `json:"end_pos"`
	Context         string                 `json:"context"`
	Confidence      float64                `json:"confidence"`
	DetectionMethod DetectionMethod        `json:"detection_method"`
	ValidationLevel ValidationLevel        `json:"validation_level"`
	SuggestedValue  string                 `json:"suggested_value,omitempty"`
	ValidationScore *float64               `json:"validation_score,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
}

// DetectionResult is the outcome of one DetectGaps call.
type DetectionResult struct {
	Gaps            []DetectedGap          `json:"gaps"`
	TotalGaps       int                    `json:"total_gaps"`
	ConfidenceAvg   float64                `json:"confidence_avg"`
	DetectionTime   time.Duration          `json:"detection_time"`
	MethodUsed      DetectionMethod        `json:"method_used"`
	ValidationLevel ValidationLevel        `json:"validation_level"`
	Success         bool                   `json:"success"`
	Errors          []string               `json:"errors"`
	Warnings        []string               `json:"warnings"`
	Metadata        map[string]interface{} `json:"metadata"`
}

// ValidationVerdict is the outcome of validating one candidate value against
// the rules of its placeholder type. Confidence starts at 1.0 and is
// multiplicatively penalized per failed rule; ValidationScore equals the
// final confidence.
type ValidationVerdict struct {
	IsValid         bool     `json:"is_valid"`
	Confidence      float64  `json:"confidence"`
	Issues          []string `json:"issues"`
	Suggestions     []string `json:"suggestions"`
	ValidationScore float64  `json:"validation_score"`
}
