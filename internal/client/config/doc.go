// Package config loads runtime configuration for the BMIC CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml/.yml are YAML, anything else JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Durations in files use timex.Duration, so "3s" and integer nanoseconds
// both work:
//
//	{
//	  "remote_url": "https://andrew-tran-impt.github.io/bmic-api/bmic-login.json",
//	  "server_base_url": "http://127.0.0.1:8080",
//	  "storage_path": "/home/me/.config/bmic/bmic.db",
//	  "storage_backend": "sqlite",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "log_format": "text"
//	}
//
// Environment variables are not read.
package config
