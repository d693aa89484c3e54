package store

import "errors"

var (
	// ErrNotFound is returned when a variant is added for an unknown license.
	ErrNotFound = errors.New("license not found")
	// ErrEmpty is returned by Analyze when the store holds no licenses.
	ErrEmpty = errors.New("license store is empty")
	// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
	// ErrCorrupt is returned when a persisted fingerprint fails its hash check.
	ErrCorrupt = errors.New("corrupt store entry")
	// ErrLocked is returned when another process holds the rebuild lock.
	ErrLocked = errors.New("license store is locked by another process")
)
