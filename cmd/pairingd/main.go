package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/mcoot/pairings-web/internal/config"
	"github.com/mcoot/pairings-web/internal/factory"
	"github.com/mcoot/pairings-web/internal/rpc"
)

// backendConfig holds the settings of the pairing service
type backendConfig struct {
	Factory factory.Config
	RPC     rpc.Config
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, logger)
	stop()
	if err != nil {
		logger.Error("pairing service error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run serves the pairing service until ctx ends, closing storage on return.
func run(ctx context.Context, logger *slog.Logger) error {
	var cfg backendConfig
	if err := config.ParseEnv(&cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	app, err := factory.New(cfg.Factory, logger)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	defer func() { _ = app.Close() }()

	server, err := rpc.Listen(cfg.RPC.Addr, app.Controller, logger)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	if err := server.Serve(ctx); err != nil {
		return err
	}

	logger.Info("pairing service stopped", slog.String("storage", cfg.Factory.StorageType))
	return nil
}
