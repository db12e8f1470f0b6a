package config

import "time"

// Config holds runtime settings for the DMS CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API, including the /api prefix.
//   - RequestTimeout: per-request timeout applied by the gateway's HTTP client.
//   - SessionDBPath: path of the local sqlite database holding the persisted session.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	SessionDBPath  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8080/api"
	c.RequestTimeout = 15 * time.Second
	c.SessionDBPath = "dms.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (including an optional .env file), a JSON file (if present)
// and command-line flags (if present). Later sources take precedence over
// earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
