package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"terminal-trivia/internal/domain"
	"golang.org/x/sync/singleflight"
)

// QuestionLoader fetches validated questions from a backing store (file, Postgres).
type QuestionLoader interface {
	LoadQuestions(ctx context.Context, source string) ([]domain.Question, error)
}

// BankRepository keeps each loaded bank for ttl (plus up to 10% jitter). Every
// game asks it for its bank, so an edited file or re-imported Postgres bank is
// seen by the first game after expiry. A zero ttl reloads on every call.
type BankRepository struct {
	loader QuestionLoader
	ttl    time.Duration
	now    func() time.Time
	loads  singleflight.Group

	mu    sync.Mutex
	rnd   *rand.Rand
	banks map[string]loadedBank
}

type loadedBank struct {
	questions []domain.Question
	staleAt   time.Time
}

func NewBankRepository(loader QuestionLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		loader: loader,
		ttl:    ttl,
		now:    time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		banks:  make(map[string]loadedBank),
	}
}

// GetQuestions returns the bank for source. Callers racing on a stale or
// missing bank share a single load.
func (r *BankRepository) GetQuestions(ctx context.Context, source string) ([]domain.Question, error) {
	if questions, ok := r.fresh(source); ok {
		return questions, nil
	}

	v, err, _ := r.loads.Do(source, func() (interface{}, error) {
		if questions, ok := r.fresh(source); ok {
			return questions, nil
		}
		questions, err := r.loader.LoadQuestions(ctx, source)
		if err != nil {
			return nil, err
		}
		r.keep(source, questions)
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Question), nil
}

func (r *BankRepository) fresh(source string) ([]domain.Question, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bank, ok := r.banks[source]
	if !ok || !r.now().Before(bank.staleAt) {
		return nil, false
	}
	return bank.questions, true
}

func (r *BankRepository) keep(source string, questions []domain.Question) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lifetime := r.ttl
	if lifetime > 0 {
		lifetime += time.Duration(r.rnd.Int63n(int64(r.ttl)/10 + 1))
	}
	r.banks[source] = loadedBank{questions: questions, staleAt: r.now().Add(lifetime)}
}

// StaticQuestionLoader serves fixed banks keyed by source.
type StaticQuestionLoader struct {
	banks map[string][]domain.Question
}

func NewStaticQuestionLoader(banks map[string][]domain.Question) *StaticQuestionLoader {
	return &StaticQuestionLoader{banks: banks}
}

func (l *StaticQuestionLoader) LoadQuestions(_ context.Context, source string) ([]domain.Question, error) {
	if questions, ok := l.banks[source]; ok {
		return questions, nil
	}
	return nil, domain.ErrBankNotFound
}
