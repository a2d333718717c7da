// Package config loads, normalizes, and validates mediumcheck configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours environment fallbacks such as KODI_URL and
// KODI_PASSWORD. Kodi credentials may also come from a separate INI file so the
// main config can be shared without secrets.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
