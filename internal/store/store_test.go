package store_test

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"testing"

	_ "modernc.org/sqlite"

	"licmatch/internal/store"
	"licmatch/internal/testsupport"
	"licmatch/internal/textdata"
)

func TestAddVariant(t *testing.T) {
	s := store.New()
	s.Add("MIT", textdata.New(testsupport.MITText))

	if err := s.AddVariant("missing", textdata.Header, textdata.New("x y z")); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.AddVariant("MIT", textdata.Header, textdata.New(testsupport.MITText)); err != nil {
		t.Fatalf("AddVariant identical: %v", err)
	}
	if err := s.AddVariant("MIT", textdata.Alternate, textdata.New("permission is hereby granted free of charge")); err != nil {
		t.Fatalf("AddVariant alternate: %v", err)
	}
	if err := s.AddVariant("MIT", textdata.Original, textdata.New("a b c")); err == nil {
		t.Fatal("expected error for original passed as variant")
	}

	license, ok := s.Get("MIT")
	if !ok {
		t.Fatal("expected MIT entry")
	}
	if len(license.Headers) != 0 {
		t.Fatalf("identical header should be skipped, got %d", len(license.Headers))
	}
	if len(license.Alternates) != 1 {
		t.Fatalf("expected one alternate, got %d", len(license.Alternates))
	}
}

func TestLicensesSorted(t *testing.T) {
	s := testsupport.NewStore(t)
	want := []string{"Apache-2.0", "BSD-2-Clause", "ISC", "MIT", "Zlib"}
	if got := s.Licenses(); !slices.Equal(got, want) {
		t.Fatalf("Licenses = %v, want %v", got, want)
	}
	if s.Len() != len(want) {
		t.Fatalf("Len = %d, want %d", s.Len(), len(want))
	}
}

func TestAnalyze(t *testing.T) {
	s := testsupport.NewStore(t, store.WithWorkers(3))
	ctx := context.Background()

	tests := []struct {
		name     string
		text     string
		wantName string
		wantType textdata.LicenseType
		minScore float64
	}{
		{name: "exact original", text: testsupport.MITText, wantName: "MIT", wantType: textdata.Original, minScore: 1},
		{
			name:     "filled in copyright",
			text:     "ISC License\n\nCopyright (c) 2024 Jane Example\n" + testsupport.ISCText[len("ISC License\n\nCopyright (c) <year> <copyright holders>\n"):],
			wantName: "ISC",
			wantType: textdata.Original,
			minScore: 0.95,
		},
		{name: "header", text: testsupport.ApacheHeader, wantName: "Apache-2.0", wantType: textdata.Header, minScore: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := s.Analyze(ctx, textdata.New(tt.text))
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}
			if match.Name != tt.wantName || match.LicenseType != tt.wantType {
				t.Fatalf("got %s (%s), want %s (%s)", match.Name, match.LicenseType, tt.wantName, tt.wantType)
			}
			if match.Score < tt.minScore {
				t.Fatalf("score %f below %f", match.Score, tt.minScore)
			}
			if match.Data == nil {
				t.Fatal("expected match data")
			}
		})
	}
}

func TestAnalyzeTieBreaksByName(t *testing.T) {
	s := store.New(store.WithWorkers(4))
	s.Add("b-license", textdata.New(testsupport.ZlibText))
	s.Add("a-license", textdata.New(testsupport.ZlibText))

	match, err := s.Analyze(context.Background(), textdata.New(testsupport.ZlibText))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if match.Name != "a-license" {
		t.Fatalf("expected first name to win tie, got %s", match.Name)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	if _, err := store.New().Analyze(context.Background(), textdata.New("hello world")); !errors.Is(err, store.ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := db.Save(ctx, testsupport.NewStore(t)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := db.Load(ctx, store.WithWorkers(2))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Len() != len(testsupport.Fixtures()) {
		t.Fatalf("loaded %d licenses, want %d", loaded.Len(), len(testsupport.Fixtures()))
	}

	match, err := loaded.Analyze(ctx, textdata.New(testsupport.ApacheHeader))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if match.Name != "Apache-2.0" || match.LicenseType != textdata.Header || match.Score != 1 {
		t.Fatalf("unexpected match after reload: %+v", match)
	}
	if match.Data.HasText() {
		t.Fatal("persisted entries should not carry text")
	}

	entries, err := db.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != len(testsupport.Fixtures())+1 {
		t.Fatalf("expected one row per fixture plus the header, got %d", len(entries))
	}
	if entries[0].Name != "Apache-2.0" || entries[0].LicenseType != textdata.Original || entries[1].LicenseType != textdata.Header {
		t.Fatalf("unexpected entry order: %+v", entries[:2])
	}
	for _, entry := range entries {
		if len(entry.ContentHash) != 64 || entry.BlobSize == 0 || entry.GramCount == 0 {
			t.Fatalf("incomplete entry: %+v", entry)
		}
	}

	// Saving again replaces rows instead of duplicating them.
	if err := db.Save(ctx, testsupport.NewStore(t)); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	again, err := db.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(again) != len(entries) {
		t.Fatalf("expected %d rows after resave, got %d", len(entries), len(again))
	}
}

func rawExec(t *testing.T, path, query string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec(query); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

func TestLoadDetectsCorruption(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := db.Save(ctx, testsupport.NewStore(t)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	rawExec(t, cfg.Paths.StorePath, "UPDATE licenses SET content_hash = 'bad' WHERE name = 'MIT'")

	if _, err := db.Load(ctx); !errors.Is(err, store.ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db, err := store.Open(cfg.Paths.StorePath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	db.Close()

	rawExec(t, cfg.Paths.StorePath, "UPDATE schema_version SET version = 99")

	if _, err := store.Open(cfg.Paths.StorePath); !errors.Is(err, store.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestLock(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	release, err := store.Lock(cfg.LockPath())
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if _, err := store.Lock(cfg.LockPath()); !errors.Is(err, store.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if err := release(); err != nil {
		t.Fatalf("release: %v", err)
	}

	release, err = store.Lock(cfg.LockPath())
	if err != nil {
		t.Fatalf("Lock after release: %v", err)
	}
	_ = release()
}
