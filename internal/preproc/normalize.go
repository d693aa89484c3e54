package preproc

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const blackboxedURL = "http://blackboxed/url"

var (
	// junkPattern matches anything that is not a letter, digit, mark,
	// whitespace, punctuation, or a pipe.
	junkPattern = regexp.MustCompile(`[^\p{L}\p{N}\p{M}_\s\p{Zs}\p{P}|]+`)

	urlPattern = regexp.MustCompile(`https?://\S+`)

	// horizontalSpacePattern folds runs of spaces, tabs, and separator-like
	// glyphs (slashes, pipes, fraction slash) into a single space.
	horizontalSpacePattern = regexp.MustCompile(`[ \t\p{Zs}\\/|\x{2044}]+`)

	quotePattern = regexp.MustCompile(`["'\x{0060}\x{00B4}\p{Pi}\p{Pf}]+`)
	dashPattern  = regexp.MustCompile(`\p{Pd}+`)
)

type lineFilter func(string) string

var lineFilters = []lineFilter{
	normalizeUnicode,
	removeJunk,
	blackboxURLs,
	normalizeHorizontalWhitespace,
	normalizePunctuation,
	strings.TrimSpace,
}

// Normalize splits text on newlines and cleans every line independently.
// The result always has strings.Count(text, "\n")+1 entries.
func Normalize(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		for _, filter := range lineFilters {
			line = filter(line)
		}
		lines = append(lines, line)
	}
	return lines
}

func normalizeUnicode(s string) string {
	return norm.NFC.String(s)
}

func removeJunk(s string) string {
	return junkPattern.ReplaceAllString(s, "")
}

func blackboxURLs(s string) string {
	return urlPattern.ReplaceAllString(s, blackboxedURL)
}

func normalizeHorizontalWhitespace(s string) string {
	return horizontalSpacePattern.ReplaceAllString(s, " ")
}

func normalizePunctuation(s string) string {
	s = quotePattern.ReplaceAllString(s, "'")
	return dashPattern.ReplaceAllString(s, "-")
}
