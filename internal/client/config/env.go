package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment. A .env
// file in the working directory is loaded first, if present; real environment
// variables win over values from the file.
//
// Recognised variables:
//
//	DMS_SERVER_URL       base URL of the backend API
//	DMS_REQUEST_TIMEOUT  per-request timeout, time.ParseDuration syntax
//	DMS_SESSION_DB       path of the local session database
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("DMS_SERVER_URL"); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := os.Getenv("DMS_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("DMS_SESSION_DB"); v != "" {
		cfg.SessionDBPath = v
	}
}
