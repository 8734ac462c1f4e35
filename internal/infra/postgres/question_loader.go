package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"terminal-trivia/internal/domain"
	"terminal-trivia/internal/infra/file"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuestionLoader loads question banks stored as JSONB documents. The source is a bank id.
type QuestionLoader struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewQuestionLoader(pool *pgxpool.Pool, logger *slog.Logger) *QuestionLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuestionLoader{pool: pool, log: logger}
}

func (l *QuestionLoader) LoadQuestions(ctx context.Context, bankID string) ([]domain.Question, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM question_banks WHERE id=$1`, bankID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("load bank %s: %w", bankID, domain.ErrBankNotFound)
		}
		return nil, fmt.Errorf("load bank: %w", err)
	}

	// Stored banks are re-validated; rows may predate stricter rules.
	result, err := file.Parse(raw, file.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("unmarshal bank %s: %w", bankID, err)
	}
	for _, rej := range result.Rejected {
		l.log.Warn("question rejected", "bank", bankID, "record", rej.Index, "reason", rej.Reason)
	}
	if result.Accepted() == 0 {
		return nil, fmt.Errorf("bank %s: %w", bankID, domain.ErrNoQuestions)
	}
	return result.Questions, nil
}
