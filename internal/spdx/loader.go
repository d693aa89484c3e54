package spdx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"licmatch/internal/logging"
	"licmatch/internal/store"
	"licmatch/internal/textdata"
)

// ErrNoDocuments is returned when the directory holds no detail documents.
var ErrNoDocuments = errors.New("no SPDX license documents found")

// Options controls which documents are loaded.
type Options struct {
	IncludeDeprecated bool
	Logger            *slog.Logger
}

// Summary reports what LoadDir added.
type Summary struct {
	Licenses int
	Headers  int
	Skipped  int
}

// document is the subset of an SPDX detail document licmatch reads.
type document struct {
	LicenseID             string `json:"licenseId"`
	Name                  string `json:"name"`
	LicenseText           string `json:"licenseText"`
	StandardLicenseHeader string `json:"standardLicenseHeader"`
	IsDeprecated          bool   `json:"isDeprecatedLicenseId"`
}

// DetailsDir returns the directory LoadDir reads documents from. A path that
// already points at the details directory is used as is.
func DetailsDir(dir string) string {
	details := filepath.Join(dir, "json", "details")
	if info, err := os.Stat(details); err == nil && info.IsDir() {
		return details
	}
	return dir
}

// LoadDir reads every SPDX detail document below dir into s.
func LoadDir(ctx context.Context, dir string, s *store.Store, opts Options) (Summary, error) {
	logger := logging.NewComponentLogger(opts.Logger, "spdx")
	detailsDir := DetailsDir(dir)

	entries, err := os.ReadDir(detailsDir)
	if err != nil {
		return Summary{}, fmt.Errorf("read SPDX directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return Summary{}, fmt.Errorf("%w in %s", ErrNoDocuments, detailsDir)
	}
	slices.Sort(names)

	var summary Summary
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		path := filepath.Join(detailsDir, name)
		doc, err := readDocument(path)
		if err != nil {
			return summary, err
		}

		if doc.LicenseID == "" || strings.TrimSpace(doc.LicenseText) == "" {
			logger.Debug("skipping document without license text", slog.String(logging.FieldFile, path))
			summary.Skipped++
			continue
		}
		if doc.IsDeprecated && !opts.IncludeDeprecated {
			logger.Debug("skipping deprecated license", logging.License(doc.LicenseID))
			summary.Skipped++
			continue
		}

		s.Add(doc.LicenseID, textdata.New(doc.LicenseText))
		summary.Licenses++

		if strings.TrimSpace(doc.StandardLicenseHeader) == "" {
			continue
		}
		if err := s.AddVariant(doc.LicenseID, textdata.Header, textdata.New(doc.StandardLicenseHeader)); err != nil {
			return summary, fmt.Errorf("add header for %s: %w", doc.LicenseID, err)
		}
		summary.Headers++
	}

	logger.Info("loaded SPDX licenses",
		slog.Int("licenses", summary.Licenses),
		slog.Int("headers", summary.Headers),
		slog.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

func readDocument(path string) (document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return document{}, fmt.Errorf("read SPDX document: %w", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return doc, nil
}
