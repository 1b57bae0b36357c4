package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var loadErr error
	cfg, loadErr = LoadConfig()
	if loadErr != nil {
		cfg = &Config{ServerURL: "http://localhost:8080", Output: OutputText}
	}

	rootCmd := &cobra.Command{
		Use:   "pairings",
		Short: "CLI tool for the tournament pairings API",
		Long: `pairings is a CLI tool for interacting with the tournament pairings JSON API.

Entities are addressed by reference: "<uuid>" for public access, or
"<uuid>/<proof>" for the holder of the entity's proof. Web links such as
"/tournament/<uuid>/<proof>/" are accepted too.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if loadErr != nil {
				return loadErr
			}

			// Debug logs go to stderr only with --verbose
			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			client = NewClient(cfg.ServerURL, logger)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: PAIRINGS_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: PAIRINGS_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newTournamentCmd())
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := ExecuteContext(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// ExecuteContext runs the root command with args, writing results to stdout
// and errors to stderr.
func ExecuteContext(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SilenceErrors = true

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		NewOutput(cfg.Output, stderr).PrintError(err)
	}
	return err
}

func newOutput(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout())
}
