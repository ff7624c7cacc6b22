// Package config handles configuration for the server component,
// including defaults, a JSON or YAML file overlay, and command-line flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bmic/internal/logging"
)

// Config holds runtime settings for the BMIC lookup server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory account store.
//   - SecretKey: HMAC secret for signing lookup tokens (HS256). Empty means a
//     random per-process secret.
//   - TokenValidityDuration: lifetime of issued tokens.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
//   - S3PublicBaseURL: prefix for public avatar URLs; derived from the
//     endpoint and bucket when empty.
type Config struct {
	EndpointAddrHTTP      string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	S3RootUser            string
	S3RootPassword        string
	S3Bucket              string
	S3Region              string
	S3BaseEndpoint        string
	S3PublicBaseURL       string
	LogFormat             string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the S3 credentials match a local MinIO and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = ""
	c.TokenValidityDuration = 24 * time.Hour
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "avatars"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.S3PublicBaseURL = ""
	c.LogFormat = logging.FormatJSON
}

func (c *Config) Validate() error {
	if c.EndpointAddrHTTP == "" {
		return fmt.Errorf("http address is empty")
	}
	if c.TokenValidityDuration <= 0 {
		return fmt.Errorf("token validity must be positive, got %s", c.TokenValidityDuration)
	}
	if c.S3Bucket == "" {
		return fmt.Errorf("s3 bucket is empty")
	}
	return nil
}

// AvatarBaseURL is the prefix public avatar URLs are built from.
func (c *Config) AvatarBaseURL() string {
	if c.S3PublicBaseURL != "" {
		return strings.TrimRight(c.S3PublicBaseURL, "/")
	}
	return strings.TrimRight(c.S3BaseEndpoint, "/") + "/" + c.S3Bucket
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
