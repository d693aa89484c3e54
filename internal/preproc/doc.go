// Package preproc turns raw text into the forms used for similarity matching.
//
// Two passes exist:
//   - Normalize cleans each line independently (unicode composition, junk
//     removal, URL blackboxing, whitespace and punctuation folding) and keeps
//     the line structure intact so callers can map matches back to line numbers
//   - Aggressive collapses a block of normalized lines into a single string
//     suitable for n-gram fingerprinting: comment prefixes, punctuation, case,
//     title lines, and copyright statements are all stripped
//
// Normalize never changes the number of lines in its input. Line indices that
// come out of a match always refer to lines of the original text.
package preproc
