package store

import (
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"

	"licmatch/internal/logging"
	"licmatch/internal/textdata"
)

// License is one catalog entry: the full license text plus the shorter forms
// it is commonly found in.
type License struct {
	Name       string
	Original   *textdata.TextData
	Headers    []*textdata.TextData
	Alternates []*textdata.TextData
}

// Store is an in-memory license catalog.
type Store struct {
	mu       sync.RWMutex
	licenses map[string]*License
	workers  int
	logger   *slog.Logger
}

// Option customizes a Store.
type Option func(*Store)

// WithWorkers bounds how many comparisons Analyze runs at once. Values below
// one fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *Store) {
		s.workers = n
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{licenses: make(map[string]*License)}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	s.logger = logging.NewComponentLogger(s.logger, "store")
	return s
}

// Add registers the original text of a license, replacing any earlier entry
// with the same name along with its variants.
func (s *Store) Add(name string, data *textdata.TextData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.licenses[name] = &License{Name: name, Original: data}
}

// AddVariant attaches a header or alternate form to an existing license.
// Variants whose fingerprint equals the original are dropped since they can
// never change a match.
func (s *Store) AddVariant(name string, kind textdata.LicenseType, data *textdata.TextData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	license, ok := s.licenses[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if license.Original != nil && license.Original.SameFingerprint(data) {
		s.logger.Debug("skipping variant identical to original",
			logging.License(name),
			logging.Kind(kind.Key()),
		)
		return nil
	}

	switch kind {
	case textdata.Header:
		license.Headers = append(license.Headers, data)
	case textdata.Alternate:
		license.Alternates = append(license.Alternates, data)
	default:
		return fmt.Errorf("add variant %s: unsupported license type %s", name, kind)
	}
	return nil
}

// Len returns the number of licenses.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.licenses)
}

// Licenses returns the license names in sorted order.
func (s *Store) Licenses() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.licenses))
	for name := range s.licenses {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns a copy of the entry for name.
func (s *Store) Get(name string) (License, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	license, ok := s.licenses[name]
	if !ok {
		return License{}, false
	}
	return License{
		Name:       license.Name,
		Original:   license.Original,
		Headers:    slices.Clone(license.Headers),
		Alternates: slices.Clone(license.Alternates),
	}, true
}

// candidate is one comparable text in the catalog.
type candidate struct {
	name string
	kind textdata.LicenseType
	data *textdata.TextData
}

// candidates flattens the catalog in a stable order: names ascending, then
// original, headers, alternates.
func (s *Store) candidates() []candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.licenses))
	for name := range s.licenses {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]candidate, 0, len(names))
	for _, name := range names {
		license := s.licenses[name]
		if license.Original != nil {
			out = append(out, candidate{name: name, kind: textdata.Original, data: license.Original})
		}
		for _, h := range license.Headers {
			out = append(out, candidate{name: name, kind: textdata.Header, data: h})
		}
		for _, a := range license.Alternates {
			out = append(out, candidate{name: name, kind: textdata.Alternate, data: a})
		}
	}
	return out
}
