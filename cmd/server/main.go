package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/bmic/internal/buildinfo"
	"github.com/dmitrijs2005/bmic/internal/logging"
	"github.com/dmitrijs2005/bmic/internal/server"
	"github.com/dmitrijs2005/bmic/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogFormat, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
