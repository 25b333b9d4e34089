package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, 1*time.Minute, c.TokenMaxAge)
	assert.Empty(t, c.S3Bucket, "archiving is off unless a bucket is configured")
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, 1*time.Minute, cfg.TokenMaxAge)
}

func Test_parseEnv_Overrides(t *testing.T) {
	t.Setenv("METASTORE_ADDR", ":9191")
	t.Setenv("METASTORE_DSN", "postgres://u:p@db:5432/meta")
	t.Setenv("METASTORE_TOKEN_MAX_AGE", "5m")
	t.Setenv("METASTORE_S3_BUCKET", "revisions")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9191", cfg.EndpointAddr)
	assert.Equal(t, "postgres://u:p@db:5432/meta", cfg.DatabaseDSN)
	assert.Equal(t, 5*time.Minute, cfg.TokenMaxAge)
	assert.Equal(t, "revisions", cfg.S3Bucket)
}
