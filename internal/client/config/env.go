package config

import (
	"os"
	"time"
)

// parseEnv overlays Config with values from METACTL_* environment variables.
// Variables are usually supplied via .env/.env.local files loaded by
// godotenv, but real environment variables work the same way.
//
// Supported variables:
//
//	METACTL_ENDPOINT   base URL of the metadata server
//	METACTL_PROJECT    project name
//	METACTL_SECRET     shared HMAC secret
//	METACTL_TIMEOUT    request timeout, Go duration syntax (e.g. "30s")
func parseEnv(cfg *Config) {
	if v := os.Getenv("METACTL_ENDPOINT"); v != "" {
		cfg.ServerEndpointURL = v
	}
	if v := os.Getenv("METACTL_PROJECT"); v != "" {
		cfg.Project = v
	}
	if v := os.Getenv("METACTL_SECRET"); v != "" {
		cfg.SecretKey = v
	}
	if v := os.Getenv("METACTL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
