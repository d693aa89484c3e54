package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScan()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("LICMATCH_STORE_PATH"); ok && strings.TrimSpace(value) != "" {
		c.Paths.StorePath = value
	}
	if strings.TrimSpace(c.Paths.StorePath) == "" {
		c.Paths.StorePath = defaultStorePath
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}

	var err error
	if c.Paths.StorePath, err = expandPath(strings.TrimSpace(c.Paths.StorePath)); err != nil {
		return fmt.Errorf("paths.store_path: %w", err)
	}
	if c.Paths.SPDXDir, err = expandPath(strings.TrimSpace(c.Paths.SPDXDir)); err != nil {
		return fmt.Errorf("paths.spdx_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeScan() {
	c.Scan.Mode = strings.ToLower(strings.TrimSpace(c.Scan.Mode))
	c.Scan.Mode = strings.ReplaceAll(c.Scan.Mode, "-", "_")
	if c.Scan.Mode == "" {
		c.Scan.Mode = ModeElimination
	}
	if c.Scan.MaxPasses == 0 {
		c.Scan.MaxPasses = defaultMaxPasses
	}
	if c.Scan.StepSize == 0 {
		c.Scan.StepSize = defaultStepSize
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.FileLevel = strings.ToLower(strings.TrimSpace(c.Logging.FileLevel))
	if c.Logging.FileLevel == "" {
		c.Logging.FileLevel = defaultFileLogLevel
	}
}
