package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/mcoot/pairings-web/internal/api"
	"github.com/mcoot/pairings-web/internal/config"
	"github.com/mcoot/pairings-web/internal/connection"
	"github.com/mcoot/pairings-web/internal/web"
)

// frontendConfig holds the settings of the web frontend
type frontendConfig struct {
	Pairing   connection.Config
	HTTP      api.ServerConfig
	StaticDir string `env:"STATIC_DIR"`
}

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, logger)
	stop()
	if err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// run serves the frontend until ctx ends. Every deferred cleanup has run by
// the time it returns.
func run(ctx context.Context, logger *slog.Logger) error {
	var cfg frontendConfig
	if err := config.ParseEnv(&cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Connect to the pairing service
	dialCtx, cancelDial := context.WithTimeout(ctx, cfg.Pairing.DialTimeout)
	conn, err := connection.Dial(dialCtx, cfg.Pairing.Addr, logger)
	cancelDial()
	if err != nil {
		return fmt.Errorf("connect to pairing service at %s: %w", cfg.Pairing.Addr, err)
	}
	defer func() { _ = conn.Close() }()

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:  logger,
		Backend: conn,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:    logger,
		Backend:   conn,
		StaticDir: cfg.StaticDir,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	server := api.NewServer(mux, cfg.HTTP, logger)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}
