// Package config loads, normalizes, and validates movieshelf configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. Named library locations live here so the
// CLI never embeds machine-specific paths: commands resolve location names
// against the configured list and receive absolute, cleaned roots.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
