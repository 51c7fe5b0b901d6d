package placeholder

import (
	"sort"
	"strings"

	"placeholder-workers/internal/common/errors"
	"placeholder-workers/pkg/registry"
)

var typeByField = map[string]Type{
	"primary_keyword":    TypePrimaryKeyword,
	"secondary_keywords": TypeSecondaryKeywords,
	"cluster_content":    TypeClusterContent,
	"cluster_id":         TypeClusterID,
	"cluster_name":       TypeClusterName,
	"categoria":          TypeCategoria,
	"fase_funil":         TypeFaseFunil,
	"data":               TypeData,
	"usuario":            TypeUsuario,
	"niche":              TypeNiche,
	"target_audience":    TypeTargetAudience,
	"content_type":       TypeContentType,
	"tone":               TypeTone,
	"length":             TypeLength,
}

// TypeForField maps a canonical field name to its placeholder type,
// falling back to TypeCustom for anything not in the closed set.
func TypeForField(name string) Type {
	if t, ok := typeByField[strings.ToLower(name)]; ok {
		return t
	}
	return TypeCustom
}

// builtinRules returns the static rewrite rule set carried over from the
// legacy template corpus. Priorities 1-14 cover the original all-caps
// bracket spellings; 20+ cover the dollar, angular and double-bracket
// variants so their Portuguese field names land on the canonical English
// ones before the generic family sweep runs.
func builtinRules() []RewriteRule {
	return []RewriteRule{
		{OldFormat: "[PALAVRA-CHAVE]", NewFormat: "{primary_keyword}", FieldName: "primary_keyword", Required: true, MigrationPriority: 1},
		{OldFormat: "[PALAVRAS-SECUNDARIAS]", NewFormat: "{secondary_keywords}", FieldName: "secondary_keywords", MigrationPriority: 2},
		{OldFormat: "[CLUSTER DE CONTEUDO]", NewFormat: "{cluster_content}", FieldName: "cluster_content", MigrationPriority: 3},
		// Accented alias seen in older templates. Only the ASCII spelling
		// counts toward format classification.
		{OldFormat: "[CLUSTER DE CONTEÚDO]", NewFormat: "{cluster_content}", FieldName: "cluster_content", MigrationPriority: 3},
		{OldFormat: "[CLUSTER ID]", NewFormat: "{cluster_id}", FieldName: "cluster_id", Required: true, DefaultValue: "cluster_001", MigrationPriority: 4},
		{OldFormat: "[CLUSTER NAME]", NewFormat: "{cluster_name}", FieldName: "cluster_name", MigrationPriority: 5},
		{OldFormat: "[CATEGORIA]", NewFormat: "{categoria}", FieldName: "categoria", Required: true, DefaultValue: "geral", MigrationPriority: 6},
		{OldFormat: "[FASE DO FUNIL]", NewFormat: "{fase_funil}", FieldName: "fase_funil", MigrationPriority: 7},
		{OldFormat: "[DATA]", NewFormat: "{data}", FieldName: "data", MigrationPriority: 8},
		{OldFormat: "[USUARIO]", NewFormat: "{usuario}", FieldName: "usuario", MigrationPriority: 9},
		{OldFormat: "[NICHO]", NewFormat: "{niche}", FieldName: "niche", MigrationPriority: 10},
		{OldFormat: "[PUBLICO-ALVO]", NewFormat: "{target_audience}", FieldName: "target_audience", MigrationPriority: 11},
		{OldFormat: "[TIPO-CONTEUDO]", NewFormat: "{content_type}", FieldName: "content_type", DefaultValue: "artigo", MigrationPriority: 12},
		{OldFormat: "[TOM]", NewFormat: "{tone}", FieldName: "tone", DefaultValue: "profissional", MigrationPriority: 13},
		{OldFormat: "[TAMANHO]", NewFormat: "{length}", FieldName: "length", DefaultValue: "500", MigrationPriority: 14},

		{OldFormat: "$palavra_chave", NewFormat: "{primary_keyword}", FieldName: "primary_keyword", MigrationPriority: 20},
		{OldFormat: "$palavras_secundarias", NewFormat: "{secondary_keywords}", FieldName: "secondary_keywords", MigrationPriority: 21},
		{OldFormat: "$cluster_id", NewFormat: "{cluster_id}", FieldName: "cluster_id", MigrationPriority: 22},
		{OldFormat: "$categoria", NewFormat: "{categoria}", FieldName: "categoria", MigrationPriority: 23},

		{OldFormat: "<palavra_chave>", NewFormat: "{primary_keyword}", FieldName: "primary_keyword", MigrationPriority: 30},
		{OldFormat: "<palavras_secundarias>", NewFormat: "{secondary_keywords}", FieldName: "secondary_keywords", MigrationPriority: 31},
		{OldFormat: "<cluster_id>", NewFormat: "{cluster_id}", FieldName: "cluster_id", MigrationPriority: 32},
		{OldFormat: "<categoria>", NewFormat: "{categoria}", FieldName: "categoria", MigrationPriority: 33},

		{OldFormat: "[[palavra_chave]]", NewFormat: "{primary_keyword}", FieldName: "primary_keyword", MigrationPriority: 40},
		{OldFormat: "[[palavras_secundarias]]", NewFormat: "{secondary_keywords}", FieldName: "secondary_keywords", MigrationPriority: 41},
		{OldFormat: "[[cluster_id]]", NewFormat: "{cluster_id}", FieldName: "cluster_id", MigrationPriority: 42},
		{OldFormat: "[[categoria]]", NewFormat: "{categoria}", FieldName: "categoria", MigrationPriority: 43},
	}
}

// RuleTable is the process-wide immutable rewrite rule set: built once at
// startup, never mutated afterwards.
type RuleTable struct {
	rules    []RewriteRule
	known    map[string]bool
	knownOrd []string
	required []string
}

// NewRuleTable builds the rule table from the built-in rule set.
func NewRuleTable() *RuleTable {
	return newRuleTable(builtinRules())
}

func newRuleTable(rules []RewriteRule) *RuleTable {
	// Stable sort: ties keep declaration order, which makes rewrite
	// application deterministic.
	sorted := make([]RewriteRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MigrationPriority < sorted[j].MigrationPriority
	})

	t := &RuleTable{
		rules: sorted,
		known: make(map[string]bool),
	}
	seenRequired := make(map[string]bool)
	for _, r := range sorted {
		if !t.known[r.FieldName] {
			t.known[r.FieldName] = true
			t.knownOrd = append(t.knownOrd, r.FieldName)
		}
		if r.Required && !seenRequired[r.FieldName] {
			seenRequired[r.FieldName] = true
			t.required = append(t.required, r.FieldName)
		}
	}
	return t
}

// Rules returns the rules in application order.
func (t *RuleTable) Rules() []RewriteRule {
	return t.rules
}

// IsKnownField reports whether name is a canonical field of the table.
func (t *RuleTable) IsKnownField(name string) bool {
	return t.known[strings.ToLower(name)]
}

// KnownFields returns the canonical field names in first-declared order.
func (t *RuleTable) KnownFields() []string {
	return t.knownOrd
}

// RequiredFields returns the field names every migrated template must contain.
func (t *RuleTable) RequiredFields() []string {
	return t.required
}

// WithRegistry returns a new table with the rules from the JSON registry at
// path merged over the built-in set. The file is schema-validated before the
// merge; an invalid file leaves the receiver untouched.
func (t *RuleTable) WithRegistry(path string) (*RuleTable, error) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return nil, errors.NewRulesRegistryInvalidError(path, err)
	}

	merged := make([]RewriteRule, 0, len(t.rules)+len(reg.Rules))
	merged = append(merged, t.rules...)
	for _, r := range reg.Rules {
		merged = append(merged, RewriteRule{
			OldFormat:         r.OldFormat,
			NewFormat:         r.NewFormat,
			FieldName:         r.FieldName,
			Required:          r.Required,
			DefaultValue:      r.DefaultValue,
			MigrationPriority: r.MigrationPriority,
		})
	}
	return newRuleTable(merged), nil
}
