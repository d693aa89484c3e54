package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"licmatch/internal/textdata"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema changes.
// Databases with another version must be rebuilt with `licmatch store build`.
const schemaVersion = 1

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// DB persists a license catalog in SQLite.
type DB struct {
	db   *sql.DB
	path string
}

// Entry describes one persisted row without decoding its fingerprint.
type Entry struct {
	Name        string
	LicenseType textdata.LicenseType
	GramCount   int
	BlobSize    int
	ContentHash string
	UpdatedAt   time.Time
}

// Open initializes or connects to the catalog database at path.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &DB{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (d *DB) Path() string {
	return d.path
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

func (d *DB) initSchema(ctx context.Context) error {
	var tableExists int
	err := d.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return d.createSchema(ctx)
	}

	var version int
	if err := d.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s and run 'licmatch store build')",
			ErrSchemaMismatch, version, schemaVersion, d.path)
	}
	return nil
}

func (d *DB) createSchema(ctx context.Context) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Save replaces the persisted catalog with the contents of s. Only
// fingerprints are written; stored text is not persisted.
func (d *DB) Save(ctx context.Context, s *Store) error {
	type row struct {
		name string
		kind textdata.LicenseType
		seq  int
		data *textdata.TextData
	}
	var rows []row
	for _, name := range s.Licenses() {
		license, _ := s.Get(name)
		if license.Original != nil {
			rows = append(rows, row{name: name, kind: textdata.Original, data: license.Original})
		}
		for i, h := range license.Headers {
			rows = append(rows, row{name: name, kind: textdata.Header, seq: i, data: h})
		}
		for i, a := range license.Alternates {
			rows = append(rows, row{name: name, kind: textdata.Alternate, seq: i, data: a})
		}
	}

	// Encode before opening the transaction so the write lock is held briefly.
	encoded := make([]encodedFingerprint, len(rows))
	for i, r := range rows {
		enc, err := encodeFingerprint(r.data.Fingerprint())
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", r.name, r.kind.Key(), err)
		}
		encoded[i] = enc
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	return retryOnBusy(ctx, func() error {
		tx, err := d.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin save tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, "DELETE FROM licenses"); err != nil {
			return fmt.Errorf("clear licenses: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO licenses (
            name, kind, seq, gram_size, gram_count, content_hash, fingerprint, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for i, r := range rows {
			fp := r.data.Fingerprint()
			if _, err := stmt.ExecContext(ctx,
				r.name, r.kind.Key(), r.seq, fp.N(), fp.Len(), encoded[i].hash, encoded[i].blob, now,
			); err != nil {
				return fmt.Errorf("insert %s %s: %w", r.name, r.kind.Key(), err)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit save: %w", err)
		}
		return nil
	})
}

const loadOrder = ` ORDER BY name,
    CASE kind WHEN 'original' THEN 0 WHEN 'header' THEN 1 ELSE 2 END,
    seq`

// Load reads the persisted catalog into a new Store built with opts.
func (d *DB) Load(ctx context.Context, opts ...Option) (*Store, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT name, kind, content_hash, fingerprint FROM licenses`+loadOrder)
	if err != nil {
		return nil, fmt.Errorf("query licenses: %w", err)
	}
	defer rows.Close()

	s := New(opts...)
	for rows.Next() {
		var (
			name, kindKey, hash string
			blob                []byte
		)
		if err := rows.Scan(&name, &kindKey, &hash, &blob); err != nil {
			return nil, fmt.Errorf("scan license: %w", err)
		}
		kind, err := textdata.ParseLicenseType(kindKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, name, err)
		}
		fp, err := decodeFingerprint(blob, hash)
		if err != nil {
			return nil, fmt.Errorf("load %s %s: %w", name, kindKey, err)
		}

		data := textdata.FromFingerprint(fp)
		if kind == textdata.Original {
			s.Add(name, data)
			continue
		}
		if err := s.AddVariant(name, kind, data); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, fmt.Errorf("%w: %s %s has no original", ErrCorrupt, name, kindKey)
			}
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate licenses: %w", err)
	}
	return s, nil
}

// Entries lists persisted rows in load order.
func (d *DB) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT name, kind, gram_count, length(fingerprint), content_hash, updated_at FROM licenses`+loadOrder)
	if err != nil {
		return nil, fmt.Errorf("query licenses: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry            Entry
			kindKey, updated string
		)
		if err := rows.Scan(&entry.Name, &kindKey, &entry.GramCount, &entry.BlobSize, &entry.ContentHash, &updated); err != nil {
			return nil, fmt.Errorf("scan license: %w", err)
		}
		if entry.LicenseType, err = textdata.ParseLicenseType(kindKey); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, entry.Name, err)
		}
		if ts, parseErr := time.Parse(time.RFC3339Nano, updated); parseErr == nil {
			entry.UpdatedAt = ts
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate licenses: %w", err)
	}
	return entries, nil
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
