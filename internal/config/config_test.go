package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"licmatch/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("LICMATCH_STORE_PATH", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantStore := filepath.Join(tempHome, ".local", "share", "licmatch", "licenses.db")
	if cfg.Paths.StorePath != wantStore {
		t.Fatalf("unexpected store path: got %q want %q", cfg.Paths.StorePath, wantStore)
	}
	if cfg.Paths.SPDXDir != "" {
		t.Fatalf("expected empty spdx dir, got %q", cfg.Paths.SPDXDir)
	}
	if cfg.Scan.Mode != config.ModeElimination {
		t.Fatalf("unexpected scan mode: %q", cfg.Scan.Mode)
	}
	if !cfg.Scan.Optimize {
		t.Fatal("expected optimize enabled by default")
	}
	if cfg.Scan.ConfidenceThreshold != config.Default().Scan.ConfidenceThreshold {
		t.Fatalf("unexpected confidence threshold: %v", cfg.Scan.ConfidenceThreshold)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" || cfg.Logging.FileLevel != "debug" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.LockPath() != wantStore+".lock" {
		t.Fatalf("unexpected lock path: %q", cfg.LockPath())
	}
}

func TestLoadStorePathFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	storePath := filepath.Join(t.TempDir(), "custom.db")
	t.Setenv("LICMATCH_STORE_PATH", storePath)

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.StorePath != storePath {
		t.Fatalf("expected store path from env, got %q", cfg.Paths.StorePath)
	}
}

func TestLoadCustomFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("LICMATCH_STORE_PATH", "")

	cfg := config.Default()
	cfg.Paths.StorePath = "~/data/store.db"
	cfg.Paths.SPDXDir = "~/spdx"
	cfg.Scan.Mode = "Top-Down"
	cfg.Scan.ConfidenceThreshold = 0.8
	cfg.Scan.Workers = 3
	cfg.Logging.Format = "JSON"

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "licmatch.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	loaded, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected existing config at %q, got %q (exists=%v)", path, resolved, exists)
	}
	if loaded.Paths.StorePath != filepath.Join(tempHome, "data", "store.db") {
		t.Fatalf("unexpected store path: %q", loaded.Paths.StorePath)
	}
	if loaded.Paths.SPDXDir != filepath.Join(tempHome, "spdx") {
		t.Fatalf("unexpected spdx dir: %q", loaded.Paths.SPDXDir)
	}
	if loaded.Scan.Mode != config.ModeTopDown {
		t.Fatalf("expected mode normalized to top_down, got %q", loaded.Scan.Mode)
	}
	if loaded.Scan.Workers != 3 {
		t.Fatalf("unexpected workers: %d", loaded.Scan.Workers)
	}
	if loaded.Logging.Format != "json" {
		t.Fatalf("expected lowercased format, got %q", loaded.Logging.Format)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[scan]\nbogus = 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected parse error for unknown field")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"defaults", func(*config.Config) {}, ""},
		{"zero threshold", func(c *config.Config) { c.Scan.ConfidenceThreshold = 0 }, "confidence_threshold"},
		{"threshold above one", func(c *config.Config) { c.Scan.ConfidenceThreshold = 1.5 }, "confidence_threshold"},
		{"shallow below threshold", func(c *config.Config) { c.Scan.ShallowLimit = 0.5 }, "shallow_limit"},
		{"unknown mode", func(c *config.Config) { c.Scan.Mode = "sideways" }, "scan.mode"},
		{"negative workers", func(c *config.Config) { c.Scan.Workers = -1 }, "scan.workers"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad file log level", func(c *config.Config) { c.Logging.FileLevel = "trace" }, "logging.file_level"},
		{"missing store", func(c *config.Config) { c.Paths.StorePath = "" }, "store_path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateSampleLoads(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LICMATCH_STORE_PATH", "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Scan.MaxPasses != config.Default().Scan.MaxPasses {
		t.Fatalf("unexpected max passes: %d", cfg.Scan.MaxPasses)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StorePath = filepath.Join(base, "db", "licenses.db")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{filepath.Join(base, "db"), cfg.Paths.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q: %v", dir, err)
		}
	}
}
