// Package config loads runtime configuration for the storepulse CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API, including the /api/v1 prefix
//	-d string   directory for the local database and logs
//	-t int      per-request timeout (seconds)
//	-v          verbose (debug) logging
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8000/api/v1",
//	  "data_dir": "/home/me/.storepulse",
//	  "request_timeout": "15s"
//	}
//
// Note: this package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
