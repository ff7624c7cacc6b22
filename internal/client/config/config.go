package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/bmic/internal/client/client"
	"github.com/dmitrijs2005/bmic/internal/logging"
)

// Storage backends accepted by -s.
const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
)

// Config holds runtime settings for the BMIC CLI.
//
// Units: OnlineCheckInterval and RequestTimeout are time.Duration values.
// A zero RequestTimeout leaves requests bounded only by their context.
type Config struct {
	RemoteURL           string
	ServerBaseURL       string
	StoragePath         string
	StorageBackend      string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	LogFormat           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.RemoteURL = client.DefaultLookupURL
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.StoragePath = defaultStoragePath()
	c.StorageBackend = StorageSQLite
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 0
	c.LogFormat = logging.FormatText
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageSQLite, StorageFile:
	default:
		return fmt.Errorf("unknown storage backend %q (want %s or %s)", c.StorageBackend, StorageSQLite, StorageFile)
	}
	if c.StoragePath == "" {
		return fmt.Errorf("storage path is empty")
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative, got %s", c.RequestTimeout)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return filepath.Join(".bmic", "bmic.db")
	}
	return filepath.Join(dir, "bmic", "bmic.db")
}
