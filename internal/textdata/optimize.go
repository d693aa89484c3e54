package textdata

import "fmt"

// OptimizeBounds narrows t to the contiguous line range that best matches
// reference, returning the narrowed copy and its score.
//
// The end boundary is searched first with the start pinned to the current
// view start, then the start boundary with the new end pinned. Both passes
// assume the score rises to one peak and falls off as a boundary moves, which
// keeps the search far below a full scan but is not guaranteed optimal.
// Runs of blank lines score identically, so the reported bounds may include
// some of them: the search prefers the later index on ties.
//
// t must still hold its text; reference may have been stripped with
// WithoutText.
func (t *TextData) OptimizeBounds(reference *TextData) (*TextData, float64, error) {
	if t.text == nil {
		return nil, 0, ErrNoText
	}

	start, end := t.start, t.end
	endOptimized, _ := searchOptimize(start, end,
		func(e int) float64 { return t.mustView(start, e).MatchScore(reference) },
		func(e int) *TextData { return t.mustView(start, e) },
	)

	newEnd := endOptimized.end
	optimized, score := searchOptimize(start, newEnd,
		func(s int) float64 { return endOptimized.mustView(s, newEnd).MatchScore(reference) },
		func(s int) *TextData { return endOptimized.mustView(s, newEnd) },
	)
	return optimized, score, nil
}

// mustView is withView for callers that already proved the text is present
// and the bounds are in range.
func (t *TextData) mustView(start, end int) *TextData {
	view, err := t.withView(start, end)
	if err != nil {
		panic(fmt.Sprintf("textdata: re-view during optimization: %v", err))
	}
	return view
}

// searchOptimize finds the index in [left, right] with the highest score and
// materializes it with value. Scores are memoized for the duration of the
// call since each one rebuilds a fingerprint.
func searchOptimize(left, right int, score func(int) float64, value func(int) *TextData) (*TextData, float64) {
	memo := make(map[int]float64)
	check := func(index int) float64 {
		if s, ok := memo[index]; ok {
			return s
		}
		s := score(index)
		memo[index] = s
		return s
	}

	index, best := ternarySearch(check, left, right)
	return value(index), best
}

// ternarySearch narrows [left, right] by thirds until at most four indices
// remain, then scans them. Ties go to the later index.
func ternarySearch(score func(int) float64, left, right int) (int, float64) {
	if right-left <= 3 {
		bestIndex, bestScore := 0, 0.0
		for i := left; i <= right; i++ {
			if s := score(i); s >= bestScore {
				bestIndex, bestScore = i, s
			}
		}
		return bestIndex, bestScore
	}

	low := (2*left + right) / 3
	high := (left + 2*right) / 3
	if score(low) > score(high) {
		return ternarySearch(score, left, high-1)
	}
	return ternarySearch(score, low+1, right)
}
