package preproc

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// minCommonPrefix is the shortest shared line prefix (in bytes) worth
	// counting as a comment marker.
	minCommonPrefix = 4
	// commonPrefixRatio is the share of lines that must carry the dominant
	// prefix before it gets stripped.
	commonPrefixRatio = 0.8
)

var (
	paragraphPattern   = regexp.MustCompile(`\n{3,}`)
	punctuationPattern = regexp.MustCompile(`[^\p{L}\p{N}\p{M}_\s]+`)
	titleLinePattern   = regexp.MustCompile(`^[^\n]*license( version \S+)?( copyright[^\n]*)?\n\n`)
	statementPattern   = regexp.MustCompile(`^\s*copyright(\s+c\b|\s+\d)`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
)

type textFilter func(string) string

var textFilters = []textFilter{
	removeCommonTokens,
	normalizeVerticalWhitespace,
	removePunctuation,
	lowercase,
	removeTitleLine,
	removeCopyrightStatements,
	collapseWhitespace,
}

// Aggressive reduces a block of normalized lines (joined with "\n") to a
// single space-separated string ready for fingerprinting.
func Aggressive(text string) string {
	for _, filter := range textFilters {
		text = filter(text)
	}
	return text
}

// removeCommonTokens strips a leading marker shared by most lines, such as
// "# " or " * " from a commented block.
func removeCommonTokens(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return text
	}

	counts := make(map[string]int)
	for i := 0; i < len(lines)-1; i++ {
		prefix := commonPrefix(lines[i], lines[i+1])
		if len(prefix) < minCommonPrefix {
			continue
		}
		if _, ok := counts[prefix]; !ok {
			counts[prefix] = 1
		}
		counts[prefix]++
	}
	if len(counts) == 0 {
		return text
	}

	var best string
	bestCount := 0
	for prefix, count := range counts {
		if count > bestCount || (count == bestCount && prefix < best) {
			best, bestCount = prefix, count
		}
	}

	// longer prefixes that extend the winner still vote for it
	total := 0
	for prefix, count := range counts {
		if strings.HasPrefix(prefix, best) {
			total += count
		}
	}
	if float64(total) < commonPrefixRatio*float64(len(lines)) {
		return text
	}

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, best)
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

func normalizeVerticalWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return paragraphPattern.ReplaceAllString(text, "\n\n")
}

func removePunctuation(text string) string {
	return punctuationPattern.ReplaceAllString(text, "")
}

func lowercase(text string) string {
	// Casers keep state, so each call gets its own.
	return cases.Lower(language.Und).String(text)
}

func removeTitleLine(text string) string {
	loc := titleLinePattern.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[loc[1]:]
}

// removeCopyrightStatements drops copyright lines: the first line when it
// mentions copyright, paragraphs that open with copyright lines, and any line
// shaped like "copyright c ..." or "copyright 2018 ...".
func removeCopyrightStatements(text string) string {
	lines := strings.Split(text, "\n")
	paragraphStart := true
	inCopyrightRun := false
	for i, line := range lines {
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		startsCopyright := strings.HasPrefix(trimmed, "copyright")

		drop := false
		switch {
		case i == 0 && strings.Contains(line, "copyright"):
			drop = true
		case startsCopyright && (paragraphStart || inCopyrightRun):
			drop = true
		case statementPattern.MatchString(line):
			drop = true
		}

		inCopyrightRun = drop && startsCopyright
		paragraphStart = trimmed == ""
		if drop {
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}

func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}
