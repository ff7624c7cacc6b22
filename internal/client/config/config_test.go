package config

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/bmic/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, client.DefaultLookupURL, c.RemoteURL)
	assert.Equal(t, "http://127.0.0.1:8080", c.ServerBaseURL)
	assert.Equal(t, StorageSQLite, c.StorageBackend)
	assert.NotEmpty(t, c.StoragePath)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Zero(t, c.RequestTimeout)
	assert.Equal(t, "text", c.LogFormat)
	assert.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	withArgs(t, "testbin")

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, client.DefaultLookupURL, cfg.RemoteURL)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		var c Config
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"file backend", func(c *Config) { c.StorageBackend = StorageFile }, true},
		{"unknown backend", func(c *Config) { c.StorageBackend = "redis" }, false},
		{"empty path", func(c *Config) { c.StoragePath = "" }, false},
		{"zero interval", func(c *Config) { c.OnlineCheckInterval = 0 }, false},
		{"negative timeout", func(c *Config) { c.RequestTimeout = -time.Second }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			if tt.ok {
				assert.NoError(t, c.Validate())
			} else {
				assert.Error(t, c.Validate())
			}
		})
	}
}
