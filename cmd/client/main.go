package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/receiptkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/receiptkeeper/internal/client/cli"
	"github.com/dmitrijs2005/receiptkeeper/internal/client/client"
	"github.com/dmitrijs2005/receiptkeeper/internal/client/config"
	"github.com/dmitrijs2005/receiptkeeper/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger, err := logging.NewTextLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		if errors.Is(err, client.ErrConfiguration) {
			logger.Error(ctx, "API base URL is not configured; set RECEIPTS_API_BASE_URL, api_base_url or -a", "error", err)
		} else {
			logger.Error(ctx, "client stopped", "error", err)
		}
		app.Close()
		os.Exit(1)
	}
}
