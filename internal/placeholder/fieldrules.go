package placeholder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

type fieldConstraint struct {
	required   bool
	minLen     int
	maxLen     int
	format     *regexp.Regexp
	enumValues []string
	rangeMin   int
	rangeMax   int
	hasRange   bool
}

// fieldConstraints is the static per-type rule table. Types absent from
// the map pass trivially.
var fieldConstraints = map[Type]fieldConstraint{
	TypePrimaryKeyword: {
		required: true,
		minLen:   2, maxLen: 100,
		format: regexp.MustCompile(`^[a-zA-Z0-9\s\-_]+$`),
	},
	TypeSecondaryKeywords: {
		minLen: 2, maxLen: 500,
		format: regexp.MustCompile(`^[a-zA-Z0-9\s\-_,]+$`),
	},
	TypeClusterID: {
		required: true,
		format:   regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`),
	},
	TypeCategoria: {
		required: true,
		minLen:   2, maxLen: 50,
	},
	TypeContentType: {
		enumValues: []string{"artigo", "post", "vídeo", "infográfico", "e-book", "newsletter"},
	},
	TypeTone: {
		enumValues: []string{"formal", "informal", "profissional", "casual", "técnico", "amigável"},
	},
	TypeLength: {
		format:   regexp.MustCompile(`^[0-9]+$`),
		rangeMin: 100, rangeMax: 5000,
		hasRange: true,
	},
}

// FieldValidator scores a candidate value for a detected gap against the
// per-type constraint table. Each failed rule appends an issue and
// multiplies the confidence down; rules never abort the verdict.
type FieldValidator struct{}

func NewFieldValidator() *FieldValidator {
	return &FieldValidator{}
}

// Validate applies the rules for the gap's type in a fixed order:
// required, length, format, enum, range.
func (v *FieldValidator) Validate(gap DetectedGap, value string) ValidationVerdict {
	verdict := ValidationVerdict{IsValid: true, Confidence: 1.0}

	rules, ok := fieldConstraints[gap.PlaceholderType]
	if !ok {
		verdict.ValidationScore = verdict.Confidence
		return verdict
	}

	if rules.required && strings.TrimSpace(value) == "" {
		verdict.fail(0.8, "valor obrigatório está vazio")
	}

	if rules.maxLen > 0 {
		n := utf8.RuneCountInString(value)
		if n < rules.minLen || n > rules.maxLen {
			verdict.fail(0.9, fmt.Sprintf("comprimento fora do intervalo %d-%d", rules.minLen, rules.maxLen))
		}
	}

	if rules.format != nil && !rules.format.MatchString(value) {
		verdict.fail(0.7, "formato inválido: caracteres não permitidos")
	}

	if len(rules.enumValues) > 0 {
		lower := strings.ToLower(value)
		found := false
		for _, allowed := range rules.enumValues {
			if lower == allowed {
				found = true
				break
			}
		}
		if !found {
			verdict.fail(0.6, fmt.Sprintf("valor %q não está entre os permitidos", value))
			verdict.Suggestions = append(verdict.Suggestions, "valores válidos: "+strings.Join(rules.enumValues, ", "))
		}
	}

	if rules.hasRange {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		switch {
		case err != nil:
			verdict.fail(0.5, "valor numérico não pôde ser interpretado")
		case n < rules.rangeMin || n > rules.rangeMax:
			verdict.fail(0.8, fmt.Sprintf("valor fora do intervalo %d-%d", rules.rangeMin, rules.rangeMax))
		}
	}

	verdict.ValidationScore = verdict.Confidence
	return verdict
}

func (v *ValidationVerdict) fail(penalty float64, issue string) {
	v.IsValid = false
	v.Confidence *= penalty
	v.Issues = append(v.Issues, issue)
}
