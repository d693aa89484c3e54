package textdata

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders a word-level diff between the processed text of t and other.
// Removed words are wrapped in [-...-] and added words in {+...+}. Both sides
// need their text.
func (t *TextData) Diff(other *TextData) (string, error) {
	left, ok := t.ProcessedText()
	if !ok {
		return "", ErrNoText
	}
	right, ok := other.ProcessedText()
	if !ok {
		return "", ErrNoText
	}

	// One word per line lets the line-mode diff work on words.
	dmp := diffmatchpatch.New()
	chars1, chars2, wordArray := dmp.DiffLinesToChars(wordsPerLine(left), wordsPerLine(right))
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, wordArray)

	var b strings.Builder
	for _, d := range diffs {
		words := strings.Fields(d.Text)
		if len(words) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		joined := strings.Join(words, " ")
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			b.WriteString(joined)
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-" + joined + "-]")
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+" + joined + "+}")
		}
	}
	return b.String(), nil
}

func wordsPerLine(processed string) string {
	if processed == "" {
		return ""
	}
	return strings.ReplaceAll(processed, " ", "\n") + "\n"
}
