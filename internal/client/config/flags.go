package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/bmic/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-r string   remote login lookup URL
//	-a string   base URL of the BMIC server (avatar uploads)
//	-d string   local storage path
//	-s string   storage backend: sqlite or file
//	-i int      online check interval in seconds
//	-t int      request timeout in seconds, 0 for none
//	-l string   log format: text, json or zap
//
// os.Args is filtered with flagx.FilterArgs first, so -c/-config and any
// other unrelated flag is ignored here.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-r", "-a", "-d", "-s", "-i", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.RemoteURL, "r", cfg.RemoteURL, "remote login lookup URL")
	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "BMIC server base URL")
	fs.StringVar(&cfg.StoragePath, "d", cfg.StoragePath, "local storage path")
	fs.StringVar(&cfg.StorageBackend, "s", cfg.StorageBackend, "storage backend (sqlite|file)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds, 0 = none)")
	fs.StringVar(&cfg.LogFormat, "l", cfg.LogFormat, "log format (text|json|zap)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
