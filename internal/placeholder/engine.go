package placeholder

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"placeholder-workers/internal/common/logger"
	"placeholder-workers/internal/common/metrics"
)

// familySweeps rewrite a whole syntax family to the curly form after the
// literal rules ran, so field names absent from the rule table still end
// up canonical. Keyed by the classified format: only the dominant family
// gets the blanket rewrite.
var familySweeps = map[Format]*regexp.Regexp{
	FormatTemplateDollar:  regexp.MustCompile(`\$([a-z_]+)`),
	FormatAngularBrackets: regexp.MustCompile(`<([a-z_]+)>`),
	FormatDoubleBrackets:  regexp.MustCompile(`\[\[([a-z_]+)\]\]`),
}

// Engine rewrites templates from any legacy placeholder syntax to the
// canonical {name} form and validates the result.
type Engine struct {
	rules     *RuleTable
	validator *MigrationValidator
	log       logger.Logger
}

// NewEngine builds a migration engine over the given rule table.
func NewEngine(rules *RuleTable, log logger.Logger) *Engine {
	return &Engine{
		rules:     rules,
		validator: NewMigrationValidator(rules),
		log:       log,
	}
}

// Rules exposes the engine's rule table.
func (e *Engine) Rules() *RuleTable {
	return e.rules
}

// Migrate rewrites text to canonical placeholder syntax. The call never
// panics: any internal failure is converted into a failed result carrying
// the original text unchanged.
func (e *Engine) Migrate(text string, force bool) (result *MigrationResult) {
	start := time.Now()
	original := text

	defer func() {
		if r := recover(); r != nil {
			e.log.Error("migração de placeholders falhou", map[string]interface{}{
				"panic":  fmt.Sprintf("%v", r),
				"format": string(DetectFormat(original)),
			})
			result = &MigrationResult{
				Success:        false,
				OriginalText:   original,
				MigratedText:   original,
				FormatDetected: DetectFormat(original),
				Errors:         []string{"erro interno durante a migração de placeholders"},
				Timestamp:      time.Now().UTC(),
				HashBefore:     contentHash(original),
				HashAfter:      contentHash(original),
			}
		}
	}()

	format := DetectFormat(text)
	metrics.MigrationsTotal.WithLabelValues(string(format)).Inc()

	result = &MigrationResult{
		Success:        true,
		OriginalText:   original,
		MigratedText:   original,
		FormatDetected: format,
		Timestamp:      time.Now().UTC(),
		HashBefore:     contentHash(original),
	}

	// Already canonical: nothing to rewrite, and nothing to validate
	// either, since validation gates migrations rather than content.
	if format == FormatNewCurly && !force {
		result.Warnings = append(result.Warnings, "Texto já está no formato padrão")
		result.HashAfter = result.HashBefore
		metrics.MigrationDuration.WithLabelValues(string(format)).Observe(time.Since(start).Seconds())
		return result
	}

	migrated := text
	for _, rule := range e.rules.Rules() {
		before := strings.Count(migrated, rule.OldFormat)
		if before == 0 {
			continue
		}
		migrated = strings.ReplaceAll(migrated, rule.OldFormat, rule.NewFormat)
		result.MigrationsApplied = append(result.MigrationsApplied, AppliedMigration{
			OldFormat:         rule.OldFormat,
			NewFormat:         rule.NewFormat,
			FieldName:         rule.FieldName,
			OccurrencesBefore: before,
			OccurrencesAfter:  strings.Count(migrated, rule.OldFormat),
			Priority:          rule.MigrationPriority,
		})
	}

	if sweep, ok := familySweeps[format]; ok {
		migrated = sweep.ReplaceAllString(migrated, "{$1}")
	}

	result.MigratedText = migrated
	result.HashAfter = contentHash(migrated)

	// A rejected migration still carries the rewritten text; callers are
	// expected to inspect errors before trusting it.
	verrs, vwarns := e.validator.Validate(migrated)
	result.Warnings = append(result.Warnings, vwarns...)
	if len(verrs) > 0 {
		result.Success = false
		result.Errors = verrs
		metrics.MigrationsFailed.WithLabelValues(string(format)).Inc()
		e.log.Warn("migração rejeitada pela validação", map[string]interface{}{
			"format": string(format),
			"errors": len(verrs),
		})
	}

	metrics.MigrationDuration.WithLabelValues(string(format)).Observe(time.Since(start).Seconds())
	return result
}

func contentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
