// Package config loads and validates the TOML configuration for ladle.
//
// Configuration is resolved from an explicit --config path, then
// ~/.config/ladle/config.toml, then ./ladle.toml, falling back to built-in
// defaults when no file exists. Values are normalized (path expansion, URL
// trimming, defaulting) before validation so downstream packages can rely on
// well-formed fields.
package config
