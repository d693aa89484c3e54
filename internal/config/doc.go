// Package config loads, normalizes, and validates licmatch configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// LICMATCH_STORE_PATH. The Config type centralizes every knob the CLI and the
// scanner need, so store locations and match thresholds are discovered in one
// pass.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config
