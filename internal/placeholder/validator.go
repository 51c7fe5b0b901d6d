package placeholder

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	placeholderNameRe = regexp.MustCompile(`\{([^}]+)\}`)
	unclosedBraceRe   = regexp.MustCompile(`\{[^}]*$`)
	strayCloseRe      = regexp.MustCompile(`^[^{]*\}`)
	emptyBracesRe     = regexp.MustCompile(`\{\}`)
	innerSpaceRe      = regexp.MustCompile(`\{\s+[^}]*\}|\{[^}]*\s+\}`)
)

// MigrationValidator checks a migrated text against the rule table:
// required placeholders present, no malformed syntax, no control bytes.
// Unmapped names are flagged as a warning only, since ad-hoc custom
// fields are allowed.
type MigrationValidator struct {
	rules *RuleTable
}

func NewMigrationValidator(rules *RuleTable) *MigrationValidator {
	return &MigrationValidator{rules: rules}
}

// Validate runs all checks unconditionally and aggregates the findings,
// one errors entry per failed check.
func (v *MigrationValidator) Validate(text string) (errs []string, warns []string) {
	var missing []string
	for _, field := range v.rules.RequiredFields() {
		if !strings.Contains(text, "{"+field+"}") {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		errs = append(errs, "placeholders obrigatórios ausentes: "+strings.Join(missing, ", "))
	}

	var unmapped []string
	seen := make(map[string]bool)
	for _, m := range placeholderNameRe.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if !v.rules.IsKnownField(name) && !seen[name] {
			seen[name] = true
			unmapped = append(unmapped, name)
		}
	}
	if len(unmapped) > 0 {
		warns = append(warns, "placeholders não mapeados: "+strings.Join(unmapped, ", "))
	}

	var malformed []string
	if m := unclosedBraceRe.FindString(text); m != "" {
		malformed = append(malformed, m)
	}
	if m := strayCloseRe.FindString(text); m != "" {
		malformed = append(malformed, m)
	}
	malformed = append(malformed, emptyBracesRe.FindAllString(text, -1)...)
	malformed = append(malformed, innerSpaceRe.FindAllString(text, -1)...)
	if len(malformed) > 0 {
		errs = append(errs, "sintaxe de placeholder malformada: "+strings.Join(malformed, "; "))
	}

	for i := 0; i < len(text); i++ {
		if text[i] <= 0x07 {
			errs = append(errs, fmt.Sprintf("caractere de controle inválido: 0x%02x", text[i]))
			break
		}
	}

	return errs, warns
}
