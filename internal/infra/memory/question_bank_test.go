package memory

import (
	"math/rand"
	"testing"

	"terminal-trivia/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBank() *QuestionBank {
	return NewQuestionBank(sampleQuestions(), rand.New(rand.NewSource(42)))
}

func TestQuestionBankDropsInvalidQuestions(t *testing.T) {
	questions := append(sampleQuestions(), domain.Question{ID: 9, Text: "bad", Options: []string{"a", "b", "c", "d"}, Correct: 5})
	bank := NewQuestionBank(questions, rand.New(rand.NewSource(1)))
	assert.Equal(t, 4, bank.Len())
}

func TestQuestionBankRandomHonoursFilter(t *testing.T) {
	bank := newTestBank()
	for i := 0; i < 50; i++ {
		q, ok := bank.Random(domain.DifficultyEasy)
		require.True(t, ok)
		assert.Equal(t, domain.DifficultyEasy, q.Difficulty)
	}
	assert.Equal(t, 2, bank.Count(domain.DifficultyEasy))
	assert.Equal(t, 4, bank.Count(domain.DifficultyAny))
}

func TestQuestionBankRandomUnusedExhausts(t *testing.T) {
	bank := newTestBank()
	used := map[int]struct{}{}
	for i := 0; i < bank.Len(); i++ {
		q, ok := bank.RandomUnused(domain.DifficultyAny, used)
		require.True(t, ok)
		_, dup := used[q.ID]
		require.False(t, dup, "question %d drawn twice", q.ID)
		used[q.ID] = struct{}{}
	}
	_, ok := bank.RandomUnused(domain.DifficultyAny, used)
	assert.False(t, ok)
}

func TestQuestionBankFilterWithoutMatches(t *testing.T) {
	bank := NewQuestionBank(sampleQuestions()[:1], rand.New(rand.NewSource(1)))
	_, ok := bank.Random(domain.DifficultyHard)
	assert.False(t, ok)
}

func TestQuestionBankSeededDrawsAreReproducible(t *testing.T) {
	a := NewQuestionBank(sampleQuestions(), rand.New(rand.NewSource(7)))
	b := NewQuestionBank(sampleQuestions(), rand.New(rand.NewSource(7)))
	for i := 0; i < 20; i++ {
		qa, _ := a.Random(domain.DifficultyAny)
		qb, _ := b.Random(domain.DifficultyAny)
		require.Equal(t, qa.ID, qb.ID)
	}
}
