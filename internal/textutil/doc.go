// Package textutil provides the n-gram fingerprints that license matching is
// built on.
//
// The primary use cases are:
//   - Building a word n-gram multiset from preprocessed text
//   - Computing Dice similarity between two fingerprints
//   - Serializing fingerprints so catalogs can be stored without source text
//
// Fingerprints expect text that has already been reduced by
// preproc.Aggressive: lowercase words separated by single spaces. Grams are
// counted with multiplicity, so repeated phrases weigh more.
package textutil
