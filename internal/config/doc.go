// Package config loads, normalizes, and validates vimdl configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// VIMDL_USER_AGENT. The Config type centralizes every knob the CLI and the
// download pipeline need so directories, HTTP settings, and assembler limits
// are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
