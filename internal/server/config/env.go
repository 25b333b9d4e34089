package config

import (
	"os"
	"time"
)

// parseEnv overlays Config with values from METASTORE_* environment
// variables (usually fed by .env/.env.local through godotenv).
func parseEnv(cfg *Config) {
	if v := os.Getenv("METASTORE_ADDR"); v != "" {
		cfg.EndpointAddr = v
	}
	if v := os.Getenv("METASTORE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("METASTORE_SECRET"); v != "" {
		cfg.SecretKey = v
	}
	if v := os.Getenv("METASTORE_TOKEN_MAX_AGE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TokenMaxAge = d
		}
	}
	if v := os.Getenv("METASTORE_S3_USER"); v != "" {
		cfg.S3RootUser = v
	}
	if v := os.Getenv("METASTORE_S3_PASSWORD"); v != "" {
		cfg.S3RootPassword = v
	}
	if v := os.Getenv("METASTORE_S3_BUCKET"); v != "" {
		cfg.S3Bucket = v
	}
	if v := os.Getenv("METASTORE_S3_REGION"); v != "" {
		cfg.S3Region = v
	}
	if v := os.Getenv("METASTORE_S3_ENDPOINT"); v != "" {
		cfg.S3BaseEndpoint = v
	}
}
