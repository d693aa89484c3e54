package textdata

import (
	"errors"
	"fmt"
	"strings"

	"licmatch/internal/preproc"
	"licmatch/internal/textutil"
)

var (
	// ErrNoText is returned when an operation needs the stored lines of a
	// TextData whose text was discarded with WithoutText.
	ErrNoText = errors.New("text data does not have original text")
	// ErrInvalidView is returned for line bounds outside the stored lines.
	ErrInvalidView = errors.New("invalid line view")
)

// storedText is the optional part of a TextData. A nil *storedText means the
// text was discarded and only the fingerprint remains.
type storedText struct {
	// normalized holds every line of the original input, not just the view.
	normalized []string
	// processed is the aggressive form of the lines inside the view.
	processed string
}

// TextData is compiled matching data for a body of text: a fingerprint of the
// active line view plus, optionally, the normalized lines it came from.
//
// TextData values are immutable. Narrowing or discarding always returns a new
// value, so one instance may be scored from many goroutines at once.
type TextData struct {
	matchData textutil.Fingerprint
	start     int
	end       int
	text      *storedText
}

// New normalizes text, fingerprints the whole of it, and keeps the normalized
// lines so the result can later be narrowed with OptimizeBounds.
func New(text string) *TextData {
	normalized := preproc.Normalize(text)
	processed := preproc.Aggressive(strings.Join(normalized, "\n"))
	return &TextData{
		matchData: textutil.NewFingerprint(processed, textutil.DefaultGramSize),
		start:     0,
		end:       len(normalized),
		text: &storedText{
			normalized: normalized,
			processed:  processed,
		},
	}
}

// FromString is an alias for New.
func FromString(text string) *TextData {
	return New(text)
}

// FromBytes builds TextData from raw file contents. Invalid UTF-8 sequences
// become U+FFFD.
func FromBytes(data []byte) *TextData {
	return New(strings.ToValidUTF8(string(data), "\uFFFD"))
}

// FromFingerprint wraps an existing fingerprint in a TextData without stored
// text. Catalogs use it to restore references they persisted earlier.
func FromFingerprint(fp textutil.Fingerprint) *TextData {
	return &TextData{matchData: fp}
}

// WithoutText returns a copy that keeps only the fingerprint. The copy can be
// scored and used as the reference side of OptimizeBounds, but it cannot be
// narrowed and Lines reports nothing.
func (t *TextData) WithoutText() *TextData {
	return &TextData{matchData: t.matchData}
}

// HasText reports whether the normalized lines are still stored.
func (t *TextData) HasText() bool {
	return t.text != nil
}

// LinesView returns the active [start, end) line range. A TextData without
// text always reports (0, 0).
func (t *TextData) LinesView() (int, int) {
	return t.start, t.end
}

// Lines returns the normalized lines inside the active view. The boolean is
// false when the text was discarded.
func (t *TextData) Lines() ([]string, bool) {
	if t.text == nil {
		return nil, false
	}
	return t.text.normalized[t.start:t.end], true
}

// LineCount returns the number of lines in the whole stored input, or 0 when
// the text was discarded.
func (t *TextData) LineCount() int {
	if t.text == nil {
		return 0
	}
	return len(t.text.normalized)
}

// ProcessedText returns the aggressively normalized text of the active view.
func (t *TextData) ProcessedText() (string, bool) {
	if t.text == nil {
		return "", false
	}
	return t.text.processed, true
}

// Fingerprint exposes the match data for persistence.
func (t *TextData) Fingerprint() textutil.Fingerprint {
	return t.matchData
}

// MatchScore compares two TextData values and returns a similarity score in
// [0, 1]. Only fingerprints take part, so discarded text never changes it.
func (t *TextData) MatchScore(other *TextData) float64 {
	return textutil.DiceSimilarity(t.matchData, other.matchData)
}

// SameFingerprint reports exact fingerprint equality. Catalog code uses it to
// skip variants that are identical to an entry it already holds.
func (t *TextData) SameFingerprint(other *TextData) bool {
	return t.matchData.Equal(other.matchData)
}

// withView re-fingerprints the [start, end) range of the original stored
// lines. The result still carries every stored line so it can be re-viewed
// again.
func (t *TextData) withView(start, end int) (*TextData, error) {
	if t.text == nil {
		return nil, ErrNoText
	}
	if start < 0 || start > end || end > len(t.text.normalized) {
		return nil, fmt.Errorf("%w: [%d, %d) of %d lines", ErrInvalidView, start, end, len(t.text.normalized))
	}
	processed := preproc.Aggressive(strings.Join(t.text.normalized[start:end], "\n"))
	return &TextData{
		matchData: textutil.NewFingerprint(processed, textutil.DefaultGramSize),
		start:     start,
		end:       end,
		text: &storedText{
			normalized: t.text.normalized,
			processed:  processed,
		},
	}, nil
}

// View returns a copy fingerprinted over lines [start, end) of the stored
// text. Bounds are absolute, not relative to the current view.
func (t *TextData) View(start, end int) (*TextData, error) {
	return t.withView(start, end)
}

// WhiteOut blanks the lines inside the active view and returns a TextData
// covering the whole document again. Scanners use it to hide a license they
// already found before looking for the next one.
func (t *TextData) WhiteOut() (*TextData, error) {
	if t.text == nil {
		return nil, ErrNoText
	}
	lines := make([]string, len(t.text.normalized))
	copy(lines, t.text.normalized)
	for i := t.start; i < t.end; i++ {
		lines[i] = ""
	}
	whited := &TextData{text: &storedText{normalized: lines}}
	return whited.withView(0, len(lines))
}
