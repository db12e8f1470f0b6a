package config

import (
	"encoding/json"
	"os"

	"github.com/dmskit/dmscli/internal/flagx"
	"github.com/dmskit/dmscli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify timeouts either as strings like "15s" or
// as integer nanoseconds. After parsing, values are copied into the runtime
// Config (which uses time.Duration).
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	SessionDBPath  string         `json:"session_db_path"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c or -config flags. When no file is given the function is a no-op.
// Read or unmarshal errors panic; configuration is resolved once at startup
// and a broken file should stop the program.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
}
