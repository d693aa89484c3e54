// Package store holds the catalog of reference licenses that scanned text is
// compared against.
//
// A Store lives in memory and is safe for concurrent use. Analyze fans the
// comparison out across a bounded worker pool and returns the single best
// Match. DB persists a Store to SQLite: fingerprints are encoded as JSON,
// compressed with xz, and stored next to a BLAKE3 hash of the encoded form so
// corrupted rows are caught on load. Lock serializes catalog rebuilds across
// processes with an advisory file lock.
package store
