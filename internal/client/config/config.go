package config

import "time"

// Config holds runtime settings for the ShelfKeeper CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API.
//   - DatabasePath: path of the local sqlite database file.
//   - RequestTimeout: end-to-end bound on every backend request.
//   - VerifyTimeout: bound on the startup session verification call.
//   - LogLevel: debug | info | warn | error.
type Config struct {
	ServerBaseURL  string
	DatabasePath   string
	RequestTimeout time.Duration
	VerifyTimeout  time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.DatabasePath = "shelfkeeper.db"
	c.RequestTimeout = 30 * time.Second
	c.VerifyTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (a .env file is honored if present), a JSON file
// (-c/-config) and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
