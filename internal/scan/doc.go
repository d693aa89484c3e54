// Package scan identifies the licenses in a document by comparing it against
// a license store.
//
// A Strategy first scores the whole document. When that score does not clear
// the shallow limit, it searches for licenses embedded in larger text, either
// by elimination (match, narrow, blank out, repeat) or top-down (slide a
// window down the file). Both searches report the line range of every license
// they find.
package scan
