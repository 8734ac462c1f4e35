package cli

import (
	"context"
	"fmt"
	"io"

	"terminal-trivia/internal/config"
	pgloader "terminal-trivia/internal/infra/postgres"
	"github.com/spf13/cobra"
)

// NewMigrateCmd applies database migrations.
func NewMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the question bank tables in Postgres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			newLogger(cfg.Log.Level)
			return runMigrations(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
}

func runMigrations(ctx context.Context, cfg config.Config, out io.Writer) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	store := pgloader.OpenBankStore(cfg.Postgres.URL)
	defer store.Close()

	applied, err := store.Migrate(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "migrations applied: %d\n", applied)
	return nil
}
