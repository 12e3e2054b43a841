// Package config loads, normalizes, and validates snapsort configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and parses the origin anchor date. The Config
// type centralizes every knob the daemon and CLI need; the daemon freezes the
// classification section into an immutable policy value at startup.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical extension lists, and clear validation errors.
package config
