package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"NewsCurator/internal/app"
	"NewsCurator/internal/config"
	"NewsCurator/internal/logging"
)

func main() {
	historical := flag.Bool("historical", false,
		"process the URLs given as arguments once, bypassing the dedup ledger")
	flag.Parse()

	// Load .env if present; missing files are fine.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	if err := cfg.Validate(!*historical); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	if *historical {
		urls := flag.Args()
		if len(urls) == 0 {
			logger.Error("historical mode requires at least one URL argument")
			os.Exit(1)
		}
		result := application.RunHistorical(ctx, urls)
		if result.Failed > 0 && result.Succeeded == 0 {
			os.Exit(1)
		}
		return
	}

	if err := application.RunContinuous(ctx); err != nil && ctx.Err() == nil {
		logger.Error("monitor stopped", "error", err)
		os.Exit(1)
	}
}
