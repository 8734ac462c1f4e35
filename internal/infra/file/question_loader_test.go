package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"terminal-trivia/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "questions": [
    {"question": "What is 2 + 2?", "options": ["3", "4", "5", "6"], "correct": 1, "difficulty": "easy"},
    {"question": "Bad index", "options": ["a", "b", "c", "d"], "correct": 5, "difficulty": "easy"},
    {"question": "Chemical symbol for gold?", "options": ["Ag", "Au"], "correct": 1, "difficulty": "medium", "category": "science"},
    {"question": "No answer", "options": ["a", "b"]},
    {"question": "Capitalised tier", "options": ["a", "b", "c"], "correct": 2, "difficulty": "Hard"},
    {"question": "Too many", "options": ["a", "b", "c", "d", "e"], "correct": 0}
  ]
}`

func TestParseRejectsBadRecords(t *testing.T) {
	result, err := Parse([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)

	require.Equal(t, 3, result.Accepted())
	require.Len(t, result.Rejected, 3)
	assert.Equal(t, 1, result.Rejected[0].Index)
	assert.Equal(t, 3, result.Rejected[1].Index)
	assert.Equal(t, 5, result.Rejected[2].Index)

	gold := result.Questions[1]
	assert.Equal(t, 1, gold.ID)
	assert.Equal(t, domain.DifficultyMedium, gold.Difficulty)
	assert.Equal(t, domain.CategoryScience, gold.Category)

	// Difficulty matching is case-sensitive; unknown values default to easy.
	assert.Equal(t, domain.DifficultyEasy, result.Questions[2].Difficulty)
	assert.Equal(t, domain.CategoryGeneral, result.Questions[2].Category)
}

func TestParseBareArrayAndYAML(t *testing.T) {
	arr := `[{"question": "q", "options": ["a", "b"], "correct": 0, "difficulty": "hard"}]`
	result, err := Parse([]byte(arr), FormatJSON)
	require.NoError(t, err)
	require.Equal(t, 1, result.Accepted())
	assert.Equal(t, domain.DifficultyHard, result.Questions[0].Difficulty)

	doc := `
questions:
  - question: Largest planet?
    options: [Mars, Jupiter, Venus]
    correct: 1
    difficulty: medium
  - question: Broken
    options: [a, b]
    correct: 2
`
	result, err = Parse([]byte(doc), FormatYAML)
	require.NoError(t, err)
	require.Equal(t, 1, result.Accepted())
	assert.Equal(t, "Jupiter", result.Questions[0].Options[1])

	seq := `
- question: Fastest land animal?
  options: [Cheetah, Horse]
  correct: 0
`
	result, err = Parse([]byte(seq), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Accepted())
}

func TestParseMalformedDocument(t *testing.T) {
	_, err := Parse([]byte(`{"questions": [`), FormatJSON)
	assert.Error(t, err)

	_, err = Parse([]byte("  \n"), FormatJSON)
	assert.ErrorIs(t, err, domain.ErrNoQuestions)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("bank.YML"))
	assert.Equal(t, FormatYAML, FormatFromPath("dir/bank.yaml"))
	assert.Equal(t, FormatJSON, FormatFromPath("data/questions.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("questions"))
}

func TestLoadQuestions(t *testing.T) {
	dir := t.TempDir()
	loader := NewQuestionLoader(nil)
	ctx := context.Background()

	good := filepath.Join(dir, "questions.json")
	require.NoError(t, os.WriteFile(good, []byte(sampleJSON), 0o644))
	questions, err := loader.LoadQuestions(ctx, good)
	require.NoError(t, err)
	assert.Len(t, questions, 3)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"questions": [{"question": "x", "options": ["a"], "correct": 0}]}`), 0o644))
	_, err = loader.LoadQuestions(ctx, empty)
	assert.ErrorIs(t, err, domain.ErrNoQuestions)

	_, err = loader.LoadQuestions(ctx, filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, domain.ErrBankNotFound)
}

func TestRecordsRoundTripThroughParse(t *testing.T) {
	result, err := Parse([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)

	data, err := json.Marshal(Document{Questions: Records(result.Questions)})
	require.NoError(t, err)

	again, err := Parse(data, FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, again.Rejected)
	assert.Equal(t, result.Questions, again.Questions)
}

func TestConvertTruncatesOverlongText(t *testing.T) {
	correct := 0
	long := strings.Repeat("é", domain.MaxQuestionLen) // two bytes per rune
	result := Convert([]Record{{
		Question: long,
		Options:  []string{strings.Repeat("a", domain.MaxOptionLen+10), "b"},
		Correct:  &correct,
	}})

	require.Empty(t, result.Rejected)
	q := result.Questions[0]
	assert.Len(t, q.Text, domain.MaxQuestionLen)
	assert.True(t, strings.HasPrefix(long, q.Text))
	assert.Len(t, q.Options[0], domain.MaxOptionLen)
	assert.NoError(t, q.Validate())

	odd := truncate("aé", 2)
	assert.Equal(t, "a", odd)
}
