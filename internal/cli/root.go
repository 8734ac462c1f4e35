package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"terminal-trivia/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	bank       string
}

// Execute runs the CLI.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("trivia failed", "error", err)
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	opts := &options{}
	cmd := &cobra.Command{
		Use:           "trivia [questions-file]",
		Short:         "Terminal trivia quiz game",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), opts, args)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("TRIVIA_CONFIG"), "path to YAML config (default "+config.DefaultPath+")")
	cmd.PersistentFlags().StringVar(&opts.bank, "bank", "", "load questions from this Postgres bank instead of a file")
	cmd.AddCommand(newPlayCmd(opts))
	cmd.AddCommand(NewMigrateCmd(opts))
	cmd.AddCommand(newImportCmd(opts))
	return cmd
}

// loadConfig reads the config file. Only an explicitly named file has to exist.
func loadConfig(opts *options) (config.Config, error) {
	if opts.configPath != "" {
		return config.Load(opts.configPath, true)
	}
	return config.Load(config.DefaultPath, false)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}
