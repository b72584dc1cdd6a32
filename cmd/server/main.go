package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"dirok/internal/app"
	"dirok/internal/platform/config"
	"dirok/internal/platform/logger"
)

// main wires configuration from the environment and runs the HTTP API until
// SIGINT or SIGTERM. Business logic lives in internal/diagnosis.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialise server", "error", err)
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}
