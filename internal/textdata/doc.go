// Package textdata holds the compiled form of a text used for license
// matching and the search that locates a known text inside a larger one.
//
// A TextData wraps a bigram fingerprint of some text, the normalized lines it
// came from, and the line range (the view) the fingerprint covers. Scoring two
// TextData values compares fingerprints only. OptimizeBounds re-fingerprints
// narrowed views of a document to find the range that best matches a
// reference, first moving the end boundary and then the start.
//
// Catalogs keep their references small by calling WithoutText; such values
// remain valid score targets but cannot be narrowed themselves.
package textdata
