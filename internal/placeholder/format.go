package placeholder

import "regexp"

// One classifier regex per syntax family. Order matters for deterministic
// iteration when counting ties.
var formatPatterns = []struct {
	format Format
	re     *regexp.Regexp
}{
	{FormatOldBrackets, regexp.MustCompile(`\[[A-Z\- ]+\]`)},
	{FormatNewCurly, regexp.MustCompile(`\{[a-z_]+\}`)},
	{FormatTemplateDollar, regexp.MustCompile(`\$[a-z_]+`)},
	{FormatAngularBrackets, regexp.MustCompile(`<[a-z_]+>`)},
	{FormatDoubleBrackets, regexp.MustCompile(`\[\[[a-z_]+\]\]`)},
}

// DetectFormat returns the placeholder syntax family with the strictly
// greatest match count in text. On a tie, or when nothing matches, it
// defaults to FormatNewCurly so plain prose is treated as already canonical
// and never rewritten by the family sweep.
func DetectFormat(text string) Format {
	counts := make(map[Format]int, len(formatPatterns))
	maxCount := 0
	for _, fp := range formatPatterns {
		n := len(fp.re.FindAllStringIndex(text, -1))
		counts[fp.format] = n
		if n > maxCount {
			maxCount = n
		}
	}

	if maxCount == 0 {
		return FormatNewCurly
	}

	var winner Format
	ties := 0
	for _, fp := range formatPatterns {
		if counts[fp.format] == maxCount {
			winner = fp.format
			ties++
		}
	}
	if ties > 1 {
		return FormatNewCurly
	}
	return winner
}
