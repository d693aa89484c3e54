package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.StorePath == "" {
		return errors.New("paths.store_path must be set")
	}
	return nil
}

func (c *Config) validateScan() error {
	if c.Scan.ConfidenceThreshold <= 0 || c.Scan.ConfidenceThreshold > 1 {
		return errors.New("scan.confidence_threshold must be in (0, 1]")
	}
	if c.Scan.ShallowLimit <= 0 || c.Scan.ShallowLimit > 1 {
		return errors.New("scan.shallow_limit must be in (0, 1]")
	}
	if c.Scan.ShallowLimit < c.Scan.ConfidenceThreshold {
		return errors.New("scan.shallow_limit must not be below scan.confidence_threshold")
	}
	if c.Scan.MaxPasses < 0 {
		return errors.New("scan.max_passes must be positive")
	}
	if c.Scan.StepSize < 0 {
		return errors.New("scan.step_size must be positive")
	}
	if c.Scan.Workers < 0 {
		return errors.New("scan.workers must not be negative")
	}
	switch c.Scan.Mode {
	case ModeElimination, ModeTopDown:
	default:
		return fmt.Errorf("scan.mode: unsupported value %q (want %q or %q)", c.Scan.Mode, ModeElimination, ModeTopDown)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	if !validLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if !validLevel(c.Logging.FileLevel) {
		return fmt.Errorf("logging.file_level: unsupported value %q", c.Logging.FileLevel)
	}
	return nil
}

func validLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
