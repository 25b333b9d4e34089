package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the metactl CLI.
//
// Fields:
//   - ServerEndpointURL: base URL of the metadata server.
//   - Project: project whose metadata document the CLI operates on.
//   - SecretKey: shared HMAC secret used to mint request tokens.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	ServerEndpointURL string
	Project           string
	SecretKey         string
	RequestTimeout    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointURL = "http://127.0.0.1:8080"
	c.Project = "default"
	c.SecretKey = "secretKey"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from .env files, environment variables, JSON (if present) and
// command-line flags (if present). Later sources take precedence over
// earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()

	// .env files feed the environment; explicit env vars win over files.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
	parseEnv(cfg)

	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
