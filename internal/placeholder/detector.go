package placeholder

import (
	"regexp"
	"sort"
	"strings"
)

const contextWindow = 100

// typePatterns holds one compiled pattern per placeholder type. Known
// types match their literal canonical token; Custom captures any other
// braced name.
type typePattern struct {
	ptype Type
	re    *regexp.Regexp
}

func compileTypePatterns(rules *RuleTable) []typePattern {
	patterns := make([]typePattern, 0, len(rules.KnownFields())+1)
	for _, field := range rules.KnownFields() {
		patterns = append(patterns, typePattern{
			ptype: TypeForField(field),
			re:    regexp.MustCompile(`(?i)\{` + regexp.QuoteMeta(field) + `\}`),
		})
	}
	patterns = append(patterns, typePattern{
		ptype: TypeCustom,
		re:    regexp.MustCompile(`(?i)\{([^}]+)\}`),
	})
	return patterns
}

// GapDetector finds placeholder occurrences in canonical text via the
// per-type patterns. Stateless after construction, safe for concurrent
// use.
type GapDetector struct {
	rules    *RuleTable
	patterns []typePattern
	window   int
}

// NewGapDetector compiles the per-type patterns once up front.
func NewGapDetector(rules *RuleTable) *GapDetector {
	return NewGapDetectorWithWindow(rules, contextWindow)
}

// NewGapDetectorWithWindow builds a detector with a custom context
// window. Non-positive values fall back to the default.
func NewGapDetectorWithWindow(rules *RuleTable, window int) *GapDetector {
	if window <= 0 {
		window = contextWindow
	}
	return &GapDetector{
		rules:    rules,
		patterns: compileTypePatterns(rules),
		window:   window,
	}
}

// Detect returns every placeholder occurrence in text, ordered by start
// position. Names already claimed by a known-type pattern are skipped in
// the custom sweep so a span is never reported twice.
func (d *GapDetector) Detect(text string) []DetectedGap {
	var gaps []DetectedGap
	for _, p := range d.patterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
			start, end := loc[0], loc[1]
			name := d.gapName(p, text, loc)
			if p.ptype == TypeCustom && d.rules.IsKnownField(name) {
				continue
			}
			context := d.contextAround(text, start, end)
			gaps = append(gaps, DetectedGap{
				PlaceholderType: p.ptype,
				PlaceholderName: name,
				StartPos:        start,
				EndPos:          end,
				Context:         context,
				Confidence:      d.confidence(p.ptype, context),
				DetectionMethod: MethodRegex,
				ValidationLevel: LevelBasic,
				Metadata:        make(map[string]interface{}),
			})
		}
	}
	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].StartPos < gaps[j].StartPos
	})
	return gaps
}

func (d *GapDetector) gapName(p typePattern, text string, loc []int) string {
	if p.ptype == TypeCustom && len(loc) >= 4 {
		return strings.ToLower(text[loc[2]:loc[3]])
	}
	// Strip the braces from the literal match.
	return strings.ToLower(strings.Trim(text[loc[0]:loc[1]], "{}"))
}

func (d *GapDetector) contextAround(text string, start, end int) string {
	lo := start - d.window
	if lo < 0 {
		lo = 0
	}
	hi := end + d.window
	if hi > len(text) {
		hi = len(text)
	}
	return strings.TrimSpace(text[lo:hi])
}

// confidence assigns the per-type base score, discounted when the match
// sits in too little surrounding text to judge.
func (d *GapDetector) confidence(ptype Type, context string) float64 {
	var base float64
	switch ptype {
	case TypePrimaryKeyword, TypeClusterID:
		base = 0.98
	case TypeCustom:
		base = 0.90
	default:
		base = 0.95
	}
	if len(context) < 10 {
		base *= 0.9
	}
	return base
}
