package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/bmic/internal/buildinfo"
	"github.com/dmitrijs2005/bmic/internal/client/cli"
	"github.com/dmitrijs2005/bmic/internal/client/config"
	"github.com/dmitrijs2005/bmic/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogFormat, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := context.Background()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// The REPL blocks on stdin, so a signal flushes the session and exits
	// from here instead of waiting for the next line.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		app.Close(ctx)
		os.Exit(0)
	}()

	app.Run(ctx)
}
