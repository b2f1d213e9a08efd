package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/puigmarti/directesport/internal/app"
	"github.com/puigmarti/directesport/internal/pkg/config"
	"github.com/puigmarti/directesport/internal/pkg/logging"
)

const defaultConfigPath = "configs/production.yaml"

func main() {
	var configPath string
	var dryRun bool

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	flag.StringVar(&configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.BoolVar(&dryRun, "dry-run", false, "Fetch and render, but skip persisting state and notifications")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logging.Setup("generator")
	slog.Info("Starting listings generator", "config", configPath, "dry_run", dryRun)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, cancelling run")
		cancel()
	}()

	started := time.Now()
	if err := app.New(cfg, dryRun).Run(ctx); err != nil {
		// Everything upstream degrades in place; reaching here means the
		// published outputs could not be written.
		slog.Error("Run failed", "error", err, "duration", time.Since(started))
		os.Exit(1)
	}
	slog.Info("Listings generator finished", "duration", time.Since(started))
}
