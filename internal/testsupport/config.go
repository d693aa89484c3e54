package testsupport

import (
	"path/filepath"
	"testing"

	"licmatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StorePath = filepath.Join(base, "data", "licenses.db")
	cfgVal.Paths.SPDXDir = filepath.Join(base, "spdx")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Scan.Workers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithScanMode overrides the scan strategy on the test config.
func WithScanMode(mode string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.Mode = mode
	}
}

// WithOptimize toggles line-range optimization on the test config.
func WithOptimize(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.Optimize = enabled
	}
}

// WithSPDXFixtures writes the bundled license fixtures as SPDX detail
// documents under the config's SPDX directory.
func WithSPDXFixtures() ConfigOption {
	return func(b *configBuilder) {
		WriteSPDXFixtures(b.t, b.cfg.Paths.SPDXDir)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.SPDXDir)
}
