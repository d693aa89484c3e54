package scan

import "licmatch/internal/textdata"

// Identified names a catalog entry.
type Identified struct {
	Name string               `json:"name"`
	Kind textdata.LicenseType `json:"kind"`
}

// LineRange is a half-open [Start, End) range of lines.
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of lines in the range.
func (r LineRange) Len() int {
	return r.End - r.Start
}

// Contained is a license found inside a larger document.
type Contained struct {
	Score     float64    `json:"score"`
	License   Identified `json:"license"`
	LineRange LineRange  `json:"line_range"`
}

// Result is the outcome of scanning one document.
type Result struct {
	// Score is the whole-document score of the best catalog entry.
	Score float64 `json:"score"`
	// License is set when the whole document clears the confidence threshold.
	License *Identified `json:"license,omitempty"`
	// Containing lists embedded licenses in file order.
	Containing []Contained `json:"containing"`
}

// Best returns the highest scoring identification: the whole-document license
// when present, otherwise the best contained one.
func (r Result) Best() (Identified, float64, bool) {
	if r.License != nil {
		return *r.License, r.Score, true
	}
	best, found := r.bestContained()
	return best.License, best.Score, found
}

// Region returns the line range holding the strongest license. A contained
// license wins over the whole-document match since it has tighter bounds; the
// whole-document match covers [0, lineCount).
func (r Result) Region(lineCount int) (Contained, bool) {
	if best, ok := r.bestContained(); ok {
		return best, true
	}
	if r.License == nil {
		return Contained{}, false
	}
	return Contained{
		Score:     r.Score,
		License:   *r.License,
		LineRange: LineRange{Start: 0, End: lineCount},
	}, true
}

func (r Result) bestContained() (Contained, bool) {
	var (
		best  Contained
		found bool
	)
	for _, c := range r.Containing {
		if !found || c.Score > best.Score {
			best, found = c, true
		}
	}
	return best, found
}
