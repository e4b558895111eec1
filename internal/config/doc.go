// Package config loads, normalizes, and validates shelve configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SHELVE_SOURCE. The Config type centralizes every knob the CLI needs,
// allowing source/destination directories and the category table to be
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
