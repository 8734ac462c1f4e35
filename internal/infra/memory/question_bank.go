package memory

import (
	"math/rand"
	"sync"

	"terminal-trivia/internal/domain"
)

// QuestionBank is an immutable question list with a shared random source.
// Both draw methods are safe for concurrent use.
type QuestionBank struct {
	questions []domain.Question

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewQuestionBank keeps only valid questions. rnd is owned by the bank from here
// on; pass one process-wide source rather than seeding per draw.
func NewQuestionBank(questions []domain.Question, rnd *rand.Rand) *QuestionBank {
	kept := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		if q.Validate() == nil {
			kept = append(kept, q)
		}
	}
	return &QuestionBank{questions: kept, rnd: rnd}
}

func (b *QuestionBank) Len() int {
	return len(b.questions)
}

// Count returns how many questions pass filter.
func (b *QuestionBank) Count(filter domain.Difficulty) int {
	n := 0
	for _, q := range b.questions {
		if filter.Matches(q.Difficulty) {
			n++
		}
	}
	return n
}

// Random draws any question matching filter; repeats are possible.
func (b *QuestionBank) Random(filter domain.Difficulty) (domain.Question, bool) {
	return b.RandomUnused(filter, nil)
}

// RandomUnused draws a question matching filter whose ID is not in used.
// It reports false once the filtered bank is exhausted.
func (b *QuestionBank) RandomUnused(filter domain.Difficulty, used map[int]struct{}) (domain.Question, bool) {
	candidates := make([]int, 0, len(b.questions))
	for i, q := range b.questions {
		if !filter.Matches(q.Difficulty) {
			continue
		}
		if _, seen := used[q.ID]; seen {
			continue
		}
		candidates = append(candidates, i)
	}
	if len(candidates) == 0 {
		return domain.Question{}, false
	}

	b.mu.Lock()
	pick := candidates[b.rnd.Intn(len(candidates))]
	b.mu.Unlock()
	return b.questions[pick], true
}
