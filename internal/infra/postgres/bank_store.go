package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"terminal-trivia/internal/domain"
	pgmigrations "terminal-trivia/internal/infra/postgres/migrations"
	"terminal-trivia/internal/infra/file"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// BankStore writes question banks and owns schema migrations.
type BankStore struct {
	db *bun.DB
}

// OpenBankStore connects with the bun pg driver.
func OpenBankStore(dsn string) *BankStore {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return &BankStore{db: bun.NewDB(sqldb, pgdialect.New())}
}

func (s *BankStore) Close() error {
	return s.db.Close()
}

// Migrate applies all pending migrations and returns how many ran.
func (s *BankStore) Migrate(ctx context.Context) (int, error) {
	migrator := migrate.NewMigrator(s.db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return 0, fmt.Errorf("init migrations: %w", err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrate: %w", err)
	}
	if group == nil {
		return 0, nil
	}
	return len(group.Migrations), nil
}

// SaveBank upserts questions under bankID in the same document shape as question files.
func (s *BankStore) SaveBank(ctx context.Context, bankID string, questions []domain.Question) error {
	data, err := json.Marshal(file.Document{Questions: file.Records(questions)})
	if err != nil {
		return fmt.Errorf("marshal bank: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO question_banks (id, data) VALUES (?, ?::jsonb)
		 ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data, updated_at=NOW()`,
		bankID, string(data))
	if err != nil {
		return fmt.Errorf("save bank %s: %w", bankID, err)
	}
	return nil
}
