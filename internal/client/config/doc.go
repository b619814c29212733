// Package config loads the CLI configuration from layered sources:
// defaults, then environment variables (.env aware), then an optional
// JSON file, then command-line flags. Later sources win.
package config
