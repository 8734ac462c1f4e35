package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"terminal-trivia/internal/domain"
	"terminal-trivia/internal/infra/file"
	pgloader "terminal-trivia/internal/infra/postgres"
	infraredis "terminal-trivia/internal/infra/redis"
	"github.com/spf13/cobra"
)

func newImportCmd(opts *options) *cobra.Command {
	var bankID string
	cmd := &cobra.Command{
		Use:   "import <questions-file>",
		Short: "Validate a question file and store it as a Postgres bank",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Log.Level)
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}

			path := args[0]
			result, err := file.NewQuestionLoader(logger).LoadFile(path)
			if err != nil {
				return err
			}
			if result.Accepted() == 0 {
				return fmt.Errorf("%s: %w", path, domain.ErrNoQuestions)
			}

			id := bankID
			if id == "" {
				id = bankIDFromPath(path)
			}

			store := pgloader.OpenBankStore(cfg.Postgres.URL)
			defer store.Close()
			if _, err := store.Migrate(cmd.Context()); err != nil {
				return err
			}
			if err := store.SaveBank(cmd.Context(), id, result.Questions); err != nil {
				return err
			}
			if cfg.Redis.Addr != "" {
				// Players pick up the new bank now instead of after the cache TTL.
				client := newRedisClient(cfg)
				defer client.Close()
				cache := infraredis.NewBankRepository(client, nil, 0, logger)
				if err := cache.Invalidate(cmd.Context(), id); err != nil {
					logger.Warn("drop cached bank", "bank", id, "error", err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported bank %q: %d accepted, %d rejected\n", id, result.Accepted(), len(result.Rejected))
			return nil
		},
	}
	cmd.Flags().StringVar(&bankID, "id", "", "bank id (defaults to the file name without extension)")
	return cmd
}

func bankIDFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
