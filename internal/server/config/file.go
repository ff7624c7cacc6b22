package config

import (
	"github.com/dmitrijs2005/bmic/internal/flagx"
	"github.com/dmitrijs2005/bmic/internal/timex"
)

// FileConfig is the on-disk shape of the server configuration. It is only
// used for decoding; set fields are copied into Config.
type FileConfig struct {
	EndpointAddrHTTP      string          `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	DatabaseDSN           string          `json:"database_dsn" yaml:"database_dsn"`
	SecretKey             string          `json:"secret_key" yaml:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration" yaml:"token_validity_duration"`
	S3RootUser            string          `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword        string          `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket              string          `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region              string          `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint        string          `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3PublicBaseURL       string          `json:"s3_public_base_url" yaml:"s3_public_base_url"`
	LogFormat             string          `json:"log_format" yaml:"log_format"`
}

// parseFile loads the file named by -c/-config into config. Nothing happens
// when the flag is absent; read or decode errors panic.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	c := &FileConfig{}
	if err := flagx.DecodeConfigFile(path, c); err != nil {
		panic(err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.SecretKey, c.SecretKey)
	set(&config.S3RootUser, c.S3RootUser)
	set(&config.S3RootPassword, c.S3RootPassword)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	set(&config.S3PublicBaseURL, c.S3PublicBaseURL)
	set(&config.LogFormat, c.LogFormat)

	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
}
