// Package config loads runtime configuration for the IT Controller CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST API
//	-d string   path of the local SQLite file holding the session
//	-t int      per-request timeout in seconds (0 disables it)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so "3s" and integer nanoseconds both work:
//
//	{
//	  "api_base_url": "http://localhost:5021/api",
//	  "database_path": "itcontroller.db",
//	  "request_timeout": "10s",
//	  "log_level": "info"
//	}
//
// Keys absent from the file keep their default value.
package config
