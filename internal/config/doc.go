// Package config loads and validates whispersrt configuration files.
//
// Configuration is TOML. Load resolves the file location, applies defaults,
// expands paths, folds in environment fallbacks and validates enumerations so
// commands receive a ready-to-use Config. CLI flags override individual
// values after loading.
package config
