package scan

import (
	"context"

	"licmatch/internal/store"
	"licmatch/internal/textdata"
)

// topDown walks down the document finding one license at a time. Each search
// starts below the previous license, so licenses are reported in file order.
func (s *Strategy) topDown(ctx context.Context, text *textdata.TextData) ([]Contained, error) {
	contained := []Contained{}
	lineCount := text.LineCount()

	start := 0
	for pass := 0; pass < s.cfg.MaxPasses && start < lineCount; pass++ {
		found, ok, err := s.findTopDown(ctx, text, start, lineCount)
		if err != nil {
			return nil, err
		}
		if !ok || found.LineRange.End <= start {
			break
		}
		contained = append(contained, found)
		start = found.LineRange.End
	}
	return contained, nil
}

// findTopDown looks for a license in lines [from, to). The start moves down
// in steps while the window to the end still clears the threshold, then the
// end moves up the same way. The resulting region is optimized when enabled.
func (s *Strategy) findTopDown(ctx context.Context, text *textdata.TextData, from, to int) (Contained, bool, error) {
	step := s.cfg.StepSize

	var best store.Match
	bestStart := -1
	for start := from; start < to; start += step {
		match, err := s.analyzeView(ctx, text, start, to)
		if err != nil {
			return Contained{}, false, err
		}
		if match.Score >= s.cfg.ConfidenceThreshold {
			best, bestStart = match, start
		} else if bestStart >= 0 {
			break
		}
	}
	if bestStart < 0 {
		return Contained{}, false, nil
	}

	bestEnd := to
	for end := to - step; end > bestStart; end -= step {
		match, err := s.analyzeView(ctx, text, bestStart, end)
		if err != nil {
			return Contained{}, false, err
		}
		if match.Score < s.cfg.ConfidenceThreshold {
			break
		}
		best, bestEnd = match, end
	}

	region, err := text.View(bestStart, bestEnd)
	if err != nil {
		return Contained{}, false, err
	}
	score := best.Score
	if s.cfg.Optimize {
		optimized, optimizedScore, err := region.OptimizeBounds(best.Data)
		if err != nil {
			return Contained{}, false, err
		}
		// The stepped search already cleared the threshold; only accept a
		// narrower region that does not score worse.
		if optimizedScore >= score {
			region, score = optimized, optimizedScore
		}
	}

	start, end := region.LinesView()
	return Contained{
		Score:     score,
		License:   Identified{Name: best.Name, Kind: best.LicenseType},
		LineRange: LineRange{Start: start, End: end},
	}, true, nil
}

func (s *Strategy) analyzeView(ctx context.Context, text *textdata.TextData, start, end int) (store.Match, error) {
	if err := ctx.Err(); err != nil {
		return store.Match{}, err
	}
	view, err := text.View(start, end)
	if err != nil {
		return store.Match{}, err
	}
	return s.store.Analyze(ctx, view)
}
