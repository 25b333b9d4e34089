// Package config loads runtime configuration for the metactl CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. .env / .env.local files and METACTL_* environment variables.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the metadata server
//	-p string   project name
//	-s string   shared HMAC secret
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "30s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_url": "http://127.0.0.1:8080",
//	  "project": "default",
//	  "secret_key": "secretKey",
//	  "request_timeout": "30s"
//	}
package config
