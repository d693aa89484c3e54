package scan

import (
	"context"
	"slices"

	"licmatch/internal/store"
	"licmatch/internal/textdata"
)

type candidate struct {
	view  *textdata.TextData
	score float64
	match store.Match
}

// eliminate repeatedly narrows the best match to its lines and blanks them
// out. After the first pass every uncovered segment is optimized on its own:
// blanked lines score nothing, which would otherwise mislead the bounded
// search that assumes one peak. Results are returned in file order.
func (s *Strategy) eliminate(ctx context.Context, text *textdata.TextData, first store.Match) ([]Contained, error) {
	contained := []Contained{}
	var found []LineRange
	current := text
	lineCount := text.LineCount()

	for pass := 0; pass < s.cfg.MaxPasses; pass++ {
		views := []*textdata.TextData{text}
		if pass > 0 {
			var err error
			if views, err = remainingViews(current, lineCount, found); err != nil {
				return nil, err
			}
		}

		var best *candidate
		for _, view := range views {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			match := first
			if pass > 0 {
				var err error
				if match, err = s.store.Analyze(ctx, view); err != nil {
					return nil, err
				}
			}

			optimized, score, err := view.OptimizeBounds(match.Data)
			if err != nil {
				return nil, err
			}
			if best == nil || score > best.score {
				best = &candidate{view: optimized, score: score, match: match}
			}
		}

		if best == nil || best.score < s.cfg.ConfidenceThreshold {
			break
		}
		start, end := best.view.LinesView()
		if start == end {
			break
		}

		r := LineRange{Start: start, End: end}
		contained = append(contained, Contained{
			Score:     best.score,
			License:   Identified{Name: best.match.Name, Kind: best.match.LicenseType},
			LineRange: r,
		})
		found = append(found, r)

		var err error
		if current, err = best.view.WhiteOut(); err != nil {
			return nil, err
		}
	}
	slices.SortFunc(contained, func(a, b Contained) int { return a.LineRange.Start - b.LineRange.Start })
	return contained, nil
}

// remainingViews returns a view of current for every segment not yet claimed
// by a found license.
func remainingViews(current *textdata.TextData, lineCount int, found []LineRange) ([]*textdata.TextData, error) {
	segs := segments(lineCount, found)
	views := make([]*textdata.TextData, 0, len(segs))
	for _, seg := range segs {
		view, err := current.View(seg.Start, seg.End)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func sortedRanges(ranges []LineRange) []LineRange {
	sorted := slices.Clone(ranges)
	slices.SortFunc(sorted, func(a, b LineRange) int { return a.Start - b.Start })
	return sorted
}
