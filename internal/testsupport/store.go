package testsupport

import (
	"testing"

	"licmatch/internal/config"
	"licmatch/internal/store"
	"licmatch/internal/textdata"
)

// MustOpenStore opens the catalog database named by cfg and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.DB {
	t.Helper()

	db, err := store.Open(cfg.Paths.StorePath)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// NewStore builds an in-memory catalog from the bundled fixtures, including
// their headers.
func NewStore(t testing.TB, opts ...store.Option) *store.Store {
	t.Helper()

	s := store.New(opts...)
	for _, fixture := range Fixtures() {
		s.Add(fixture.ID, textdata.New(fixture.Text))
		if fixture.Header == "" {
			continue
		}
		if err := s.AddVariant(fixture.ID, textdata.Header, textdata.New(fixture.Header)); err != nil {
			t.Fatalf("AddVariant %s: %v", fixture.ID, err)
		}
	}
	return s
}
