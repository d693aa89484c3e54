package textutil

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"
)

// DefaultGramSize is the n used for license fingerprints (word bigrams).
const DefaultGramSize = 2

// Fingerprint is a multiset of word n-grams built from processed text.
// The zero value is an empty fingerprint with n = 0.
type Fingerprint struct {
	grams map[string]int
	n     int
	size  int
}

// NewFingerprint splits text on single spaces and counts every run of n
// consecutive words. Text with fewer than n words yields an empty fingerprint.
func NewFingerprint(text string, n int) Fingerprint {
	fp := Fingerprint{grams: make(map[string]int), n: n}
	if n <= 0 {
		return fp
	}
	words := strings.Split(text, " ")
	for i := 0; i+n <= len(words); i++ {
		fp.add(strings.Join(words[i:i+n], " "))
	}
	return fp
}

func (f *Fingerprint) add(gram string) {
	f.grams[gram]++
	f.size++
}

// N returns the gram width.
func (f Fingerprint) N() int {
	return f.n
}

// Len returns the number of grams counted with multiplicity.
func (f Fingerprint) Len() int {
	return f.size
}

// TokenCount returns the number of distinct grams.
func (f Fingerprint) TokenCount() int {
	return len(f.grams)
}

// IsEmpty reports whether no grams were recorded.
func (f Fingerprint) IsEmpty() bool {
	return f.size == 0
}

// Count returns how many times gram occurs.
func (f Fingerprint) Count(gram string) int {
	return f.grams[gram]
}

// Equal reports exact multiset equality, including gram width.
func (f Fingerprint) Equal(other Fingerprint) bool {
	return f.n == other.n && f.size == other.size && maps.Equal(f.grams, other.grams)
}

type fingerprintJSON struct {
	N     int            `json:"n"`
	Grams map[string]int `json:"grams"`
}

// MarshalJSON encodes the gram width and counts.
func (f Fingerprint) MarshalJSON() ([]byte, error) {
	grams := f.grams
	if grams == nil {
		grams = map[string]int{}
	}
	return json.Marshal(fingerprintJSON{N: f.n, Grams: grams})
}

// UnmarshalJSON restores a fingerprint produced by MarshalJSON.
func (f *Fingerprint) UnmarshalJSON(data []byte) error {
	var raw fingerprintJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := Fingerprint{grams: make(map[string]int, len(raw.Grams)), n: raw.N}
	for gram, count := range raw.Grams {
		if count <= 0 {
			return fmt.Errorf("fingerprint gram %q: invalid count %d", gram, count)
		}
		out.grams[gram] = count
		out.size += count
	}
	*f = out
	return nil
}
