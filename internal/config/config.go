package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory locations.
type Paths struct {
	StorePath string `toml:"store_path"`
	SPDXDir   string `toml:"spdx_dir"`
	LogDir    string `toml:"log_dir"`
}

// Scan contains thresholds and limits for license scanning.
type Scan struct {
	// ConfidenceThreshold is the minimum score for a match to be reported.
	ConfidenceThreshold float64 `toml:"confidence_threshold"`
	// ShallowLimit is the score at which a whole-file match is accepted
	// without searching for embedded licenses.
	ShallowLimit float64 `toml:"shallow_limit"`
	// Optimize enables line-range narrowing of matches.
	Optimize bool `toml:"optimize"`
	// MaxPasses caps how many licenses are pulled out of one file.
	MaxPasses int `toml:"max_passes"`
	// Mode selects the search strategy: "elimination" or "top_down".
	Mode string `toml:"mode"`
	// StepSize is the window step, in lines, for top_down mode.
	StepSize int `toml:"step_size"`
	// Workers bounds concurrent catalog comparisons. 0 uses GOMAXPROCS.
	Workers int `toml:"workers"`
	// IncludeDeprecated keeps deprecated SPDX identifiers when building the store.
	IncludeDeprecated bool `toml:"include_deprecated"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// FileLevel is the minimum level written to the JSON log file in LogDir.
	FileLevel string `toml:"file_level"`
}

// Config encapsulates all configuration values for licmatch.
//
// Configuration sections by subsystem:
//   - Paths: license store database, SPDX data directory, logs
//   - Scan: match thresholds and search strategy
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Scan    Scan    `toml:"scan"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("licmatch.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories that hold the store and logs.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if strings.TrimSpace(c.Paths.StorePath) != "" {
		dirs = append(dirs, filepath.Dir(c.Paths.StorePath))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockPath returns the file used to serialize store rebuilds.
func (c *Config) LockPath() string {
	return c.Paths.StorePath + ".lock"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
