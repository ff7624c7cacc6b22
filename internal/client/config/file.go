package config

import (
	"time"

	"github.com/dmitrijs2005/bmic/internal/flagx"
	"github.com/dmitrijs2005/bmic/internal/timex"
)

// FileConfig is a DTO used only for decoding config files. Unset fields keep
// the values already in Config.
type FileConfig struct {
	RemoteURL           string          `json:"remote_url" yaml:"remote_url"`
	ServerBaseURL       string          `json:"server_base_url" yaml:"server_base_url"`
	StoragePath         string          `json:"storage_path" yaml:"storage_path"`
	StorageBackend      string          `json:"storage_backend" yaml:"storage_backend"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogFormat           string          `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with the file named by -c/-config. Panics on read or
// decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	var fc FileConfig
	if err := flagx.DecodeConfigFile(path, &fc); err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.RemoteURL, fc.RemoteURL)
	setString(&cfg.ServerBaseURL, fc.ServerBaseURL)
	setString(&cfg.StoragePath, fc.StoragePath)
	setString(&cfg.StorageBackend, fc.StorageBackend)
	setString(&cfg.LogFormat, fc.LogFormat)
	setDuration(&cfg.OnlineCheckInterval, fc.OnlineCheckInterval)
	setDuration(&cfg.RequestTimeout, fc.RequestTimeout)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
