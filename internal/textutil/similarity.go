package textutil

// DiceSimilarity computes 2*|A∩B|/(|A|+|B|) over the gram multisets, where the
// intersection takes the smaller count of each shared gram.
// Fingerprints of different widths never match. Two empty fingerprints are
// identical and score 1; an empty fingerprint scores 0 against anything else.
func DiceSimilarity(a, b Fingerprint) float64 {
	if a.n != b.n {
		return 0
	}
	if a.size == 0 && b.size == 0 {
		return 1
	}
	if a.size == 0 || b.size == 0 {
		return 0
	}
	return 2 * float64(overlapCount(a, b)) / float64(a.size+b.size)
}

func overlapCount(a, b Fingerprint) int {
	small, large := a, b
	if len(large.grams) < len(small.grams) {
		small, large = large, small
	}
	var overlap int
	for gram, count := range small.grams {
		if other, ok := large.grams[gram]; ok {
			overlap += min(count, other)
		}
	}
	return overlap
}
