// Command migfix-server serves the INSERT rewriter over HTTP.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/migfix/internal/config"
	"github.com/JonMunkholm/migfix/internal/logging"
	"github.com/JonMunkholm/migfix/internal/migration"
	"github.com/JonMunkholm/migfix/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)
	logger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"id_mode", cfg.Rewrite.IDMode,
		"strict_arity", cfg.Rewrite.StrictArity,
		"max_body_size", cfg.Server.MaxBodySize,
	)

	fixer, err := migration.NewFixerFromConfig(cfg.Rewrite, logger)
	if err != nil {
		logger.Error("failed to create fixer", "error", err)
		os.Exit(1)
	}

	server := web.NewServer(fixer, cfg.Server)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
