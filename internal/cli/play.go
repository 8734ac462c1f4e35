package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"terminal-trivia/internal/app"
	"terminal-trivia/internal/config"
	"terminal-trivia/internal/domain"
	"terminal-trivia/internal/infra/file"
	"terminal-trivia/internal/infra/memory"
	pgloader "terminal-trivia/internal/infra/postgres"
	infraredis "terminal-trivia/internal/infra/redis"
	"terminal-trivia/internal/transport/console"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

type bankRepository interface {
	GetQuestions(ctx context.Context, source string) ([]domain.Question, error)
}

func newPlayCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "play [questions-file]",
		Short: "Start the interactive game (default command)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), opts, args)
		},
	}
}

func runPlay(ctx context.Context, opts *options, args []string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Log.Level)

	defaults := cfg.GameDefaults()
	if err := defaults.Validate(); err != nil {
		return fmt.Errorf("game settings: %w", err)
	}

	source, loader, closeLoader, err := buildLoader(ctx, cfg, opts, args, logger)
	if err != nil {
		return err
	}
	defer closeLoader()

	repo, closeRepo := buildRepository(cfg, loader, logger)
	defer closeRepo()

	view := console.NewView(os.Stdout)
	questions, err := repo.GetQuestions(ctx, source)
	if err != nil {
		view.Error("failed to load questions or no questions found")
		return fmt.Errorf("load questions from %s: %w", source, err)
	}
	view.Loaded(len(questions), source)

	g := &game{
		defaults: defaults,
		repo:     repo,
		source:   source,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		poll:     config.TTLDuration(cfg.Game.PollInterval, app.DefaultPollInterval),
		log:      logger,
	}
	return g.run(ctx, os.Stdin, view)
}

// buildLoader picks the question source: a file argument, then a Postgres bank, then the configured path.
func buildLoader(ctx context.Context, cfg config.Config, opts *options, args []string, logger *slog.Logger) (string, memory.QuestionLoader, func(), error) {
	if len(args) == 1 {
		return args[0], file.NewQuestionLoader(logger), func() {}, nil
	}

	bank := opts.bank
	if bank == "" {
		bank = cfg.Questions.Bank
	}
	if bank == "" {
		return cfg.Questions.Path, file.NewQuestionLoader(logger), func() {}, nil
	}

	if cfg.Postgres.URL == "" {
		return "", nil, nil, fmt.Errorf("bank %q requested but postgres url not configured", bank)
	}
	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return "", nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	return bank, pgloader.NewQuestionLoader(pool, logger), pool.Close, nil
}

// buildRepository caches loaded banks in Redis when configured, in memory otherwise.
func buildRepository(cfg config.Config, loader memory.QuestionLoader, logger *slog.Logger) (bankRepository, func()) {
	if cfg.Redis.Addr == "" {
		return memory.NewBankRepository(loader, config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)), func() {}
	}
	client := newRedisClient(cfg)
	repo := infraredis.NewBankRepository(client, loader, config.TTLDuration(cfg.Redis.TTL, 10*time.Minute), logger)
	return repo, func() { _ = client.Close() }
}

func newRedisClient(cfg config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// game runs the menu loop. Each game fetches its bank through the repository, so
// a bank re-imported while the menu is open is picked up once the cache expires.
type game struct {
	defaults domain.GameConfig
	repo     bankRepository
	source   string
	rnd      *rand.Rand // one generator per process, shared by every session's bank
	poll     time.Duration
	tick     time.Duration
	log      *slog.Logger
}

func (g *game) run(ctx context.Context, in io.Reader, view *console.View) error {
	if g.log == nil {
		g.log = slog.Default()
	}
	collector := app.NewAnswerCollector(in)
	menu := console.NewMenu(collector, view)
	round := app.NewQuestionRound(collector, view, app.RoundOptions{
		Tick:         g.tick,
		PollInterval: g.poll,
		Logger:       g.log,
	})

	for {
		sel, err := menu.Main(ctx)
		if err != nil {
			return endOfInput(err)
		}
		if sel.Exit {
			view.Notice("Thank you for playing Terminal Trivia Game!")
			return nil
		}
		if !sel.Valid {
			view.Notice("Invalid choice. Please try again.")
			if err := menu.WaitForEnter(ctx); err != nil {
				return endOfInput(err)
			}
			continue
		}

		count, err := menu.PlayerCount(ctx)
		if err != nil {
			return endOfInput(err)
		}
		if count == 0 {
			view.Notice("Invalid choice. Returning to main menu.")
			if err := menu.WaitForEnter(ctx); err != nil {
				return endOfInput(err)
			}
			continue
		}
		names, err := menu.PlayerNames(ctx, count)
		if err != nil {
			return endOfInput(err)
		}

		questions, err := g.repo.GetQuestions(ctx, g.source)
		if err != nil {
			g.log.Error("load questions", "source", g.source, "error", err)
			view.Error(fmt.Sprintf("could not load questions from %s", g.source))
			if err := menu.WaitForEnter(ctx); err != nil {
				return endOfInput(err)
			}
			continue
		}

		cfg := g.defaults
		cfg.Difficulty = sel.Difficulty
		cfg.Players = count
		session, err := app.NewGameSession(app.SessionConfig{
			Game:        cfg,
			PlayerNames: names,
			Source:      memory.NewQuestionBank(questions, g.rnd),
			Round:       round,
			View:        view,
			Logger:      g.log,
		})
		if err != nil {
			return fmt.Errorf("new session: %w", err)
		}

		g.log.Debug("game starting", "session_id", session.ID(), "questions", len(questions))
		view.Banner(cfg)
		if err := menu.WaitForEnter(ctx); err != nil {
			return endOfInput(err)
		}
		report := session.Run(ctx)
		view.Report(report)
		if err := menu.WaitForEnter(ctx); err != nil {
			return endOfInput(err)
		}
	}
}

// endOfInput treats a closed stdin or an interrupt as a normal exit.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
