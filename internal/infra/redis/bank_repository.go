package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"terminal-trivia/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// QuestionLoader fetches validated questions from a backing store (file, Postgres).
type QuestionLoader interface {
	LoadQuestions(ctx context.Context, source string) ([]domain.Question, error)
}

// BankRepository caches question banks in Redis and falls back to a loader on a miss.
// Each bank is stored as: SET trivia:bank:{source} <json questions> EX ttl
type BankRepository struct {
	client *redis.Client
	loader QuestionLoader
	ttl    time.Duration
	sf     singleflight.Group
	log    *slog.Logger

	rndMu sync.Mutex
	rnd   *rand.Rand
}

type cachedQuestion struct {
	ID         int      `json:"id"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	Correct    int      `json:"correct"`
	Difficulty string   `json:"difficulty"`
	Category   string   `json:"category"`
}

func NewBankRepository(client *redis.Client, loader QuestionLoader, ttl time.Duration, logger *slog.Logger) *BankRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &BankRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		log:    logger,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *BankRepository) GetQuestions(ctx context.Context, source string) ([]domain.Question, error) {
	if questions, ok := r.fromCache(ctx, source); ok {
		return questions, nil
	}

	result, err, _ := r.sf.Do(source, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if questions, ok := r.fromCache(ctx, source); ok {
			return questions, nil
		}

		questions, err := r.loader.LoadQuestions(ctx, source)
		if err != nil {
			return nil, err
		}
		r.store(ctx, source, questions)
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

// Invalidate removes a cached bank.
func (r *BankRepository) Invalidate(ctx context.Context, source string) error {
	return r.client.Del(ctx, r.key(source)).Err()
}

func (r *BankRepository) fromCache(ctx context.Context, source string) ([]domain.Question, bool) {
	raw, err := r.client.Get(ctx, r.key(source)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("redis bank lookup failed", "source", source, "error", err)
		}
		return nil, false
	}
	var cached []cachedQuestion
	if err := json.Unmarshal(raw, &cached); err != nil {
		r.log.Warn("discarding corrupt cached bank", "source", source, "error", err)
		return nil, false
	}
	questions := make([]domain.Question, 0, len(cached))
	for _, c := range cached {
		difficulty, _ := domain.ParseDifficulty(c.Difficulty)
		q := domain.Question{
			ID:         c.ID,
			Text:       c.Text,
			Options:    c.Options,
			Correct:    c.Correct,
			Difficulty: difficulty,
			Category:   domain.ParseCategory(c.Category),
		}
		// Cached entries are never trusted at scoring time.
		if q.Validate() != nil {
			r.log.Warn("discarding cached bank with invalid question", "source", source, "question_id", c.ID)
			return nil, false
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, false
	}
	return questions, true
}

// store is best effort; a failed write only costs a reload next time.
func (r *BankRepository) store(ctx context.Context, source string, questions []domain.Question) {
	cached := make([]cachedQuestion, len(questions))
	for i, q := range questions {
		cached[i] = cachedQuestion{
			ID:         q.ID,
			Text:       q.Text,
			Options:    q.Options,
			Correct:    q.Correct,
			Difficulty: q.Difficulty.Key(),
			Category:   q.Category.String(),
		}
	}
	raw, err := json.Marshal(cached)
	if err != nil {
		r.log.Warn("encode bank for cache", "source", source, "error", err)
		return
	}
	if err := r.client.Set(ctx, r.key(source), raw, r.ttlWithJitter()).Err(); err != nil {
		r.log.Warn("cache bank in redis", "source", source, "error", err)
	}
}

func (r *BankRepository) key(source string) string {
	return "trivia:bank:" + source
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
