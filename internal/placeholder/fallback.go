package placeholder

import (
	"regexp"
	"strings"
)

var fallbackWordRe = regexp.MustCompile(`[\p{L}\p{N}_]{4,}`)

// fixedFallbacks are the per-type constant values; keyword-ish types are
// derived from the context instead.
var fixedFallbacks = map[Type]string{
	TypeClusterID:      "cluster_001",
	TypeClusterContent: "conteúdo relacionado ao tópico",
	TypeCategoria:      "geral",
	TypeContentType:    "artigo",
	TypeTone:           "profissional",
	TypeLength:         "500",
	TypeTargetAudience: "profissionais",
	TypeNiche:          "tecnologia",
}

// FallbackSynthesizer produces a deterministic candidate value for a gap
// from its surrounding context alone. No randomness, no I/O.
type FallbackSynthesizer struct{}

func NewFallbackSynthesizer() *FallbackSynthesizer {
	return &FallbackSynthesizer{}
}

// Synthesize dispatches on the gap's type. Unknown types get the generic
// "valor_padrão".
func (s *FallbackSynthesizer) Synthesize(gap DetectedGap, context string) string {
	if fixed, ok := fixedFallbacks[gap.PlaceholderType]; ok {
		return fixed
	}

	switch gap.PlaceholderType {
	case TypePrimaryKeyword:
		words := contextWords(context)
		if len(words) > 0 {
			return titleCase(words[0])
		}
		return "palavra-chave"
	case TypeSecondaryKeywords:
		words := contextWords(context)
		if len(words) >= 3 {
			return words[1] + ", " + words[2]
		}
		return "palavras, secundárias"
	default:
		return "valor_padrão"
	}
}

// contextWords extracts the candidate words (4+ runes) from the
// lower-cased context, in order of appearance.
func contextWords(context string) []string {
	return fallbackWordRe.FindAllString(strings.ToLower(context), -1)
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(word)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
