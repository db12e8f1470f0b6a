// Package config loads runtime configuration for the DMS CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, with an optional .env file (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-t int      request timeout (seconds)
//	-s string   path of the local session database
//
// # JSON schema
//
// The JSON loader uses timex.Duration for timeouts, so values can be either
// strings like "15s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://localhost:8080/api",
//	  "request_timeout": "15s",
//	  "session_db_path": "dms.db"
//	}
package config
