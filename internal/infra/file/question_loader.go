package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"terminal-trivia/internal/domain"
	"gopkg.in/yaml.v3"
)

// Format selects the decoder for a question document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks YAML for .yaml/.yml files and JSON for everything else.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Record is the on-disk shape of one question.
//
//	{"question": "...", "options": ["..", ".."], "correct": 0, "difficulty": "easy", "category": "science"}
type Record struct {
	Question   string   `json:"question" yaml:"question"`
	Options    []string `json:"options" yaml:"options"`
	Correct    *int     `json:"correct" yaml:"correct"`
	Difficulty string   `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Category   string   `json:"category,omitempty" yaml:"category,omitempty"`
}

// Document is the top-level object form. A bare array of records is also accepted.
type Document struct {
	Questions []Record `json:"questions" yaml:"questions"`
}

// RecordError explains why a single record was left out of the bank.
type RecordError struct {
	Index  int // 0-based position in the document
	Reason string
}

func (e RecordError) Error() string {
	return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
}

// LoadResult separates accepted questions from rejected records.
type LoadResult struct {
	Questions []domain.Question
	Rejected  []RecordError
}

// Accepted is the count of questions that made it into the bank.
func (r LoadResult) Accepted() int {
	return len(r.Questions)
}

// Parse decodes a document and validates every record independently.
// Only a malformed document is an error; bad records are reported in Rejected.
func Parse(data []byte, format Format) (LoadResult, error) {
	records, err := decode(data, format)
	if err != nil {
		return LoadResult{}, err
	}
	return Convert(records), nil
}

// Convert validates records and assigns sequential IDs to the accepted ones.
func Convert(records []Record) LoadResult {
	var result LoadResult
	for i, rec := range records {
		q, err := rec.toQuestion()
		if err != nil {
			result.Rejected = append(result.Rejected, RecordError{Index: i, Reason: err.Error()})
			continue
		}
		q.ID = len(result.Questions)
		result.Questions = append(result.Questions, q)
	}
	return result
}

// Records converts validated questions back to their document shape.
func Records(questions []domain.Question) []Record {
	records := make([]Record, len(questions))
	for i, q := range questions {
		correct := q.Correct
		records[i] = Record{
			Question:   q.Text,
			Options:    append([]string(nil), q.Options...),
			Correct:    &correct,
			Difficulty: q.Difficulty.Key(),
			Category:   strings.ToLower(q.Category.String()),
		}
	}
	return records
}

func (r Record) toQuestion() (domain.Question, error) {
	if r.Correct == nil {
		return domain.Question{}, fmt.Errorf("%w: missing correct index", domain.ErrInvalidQuestion)
	}
	// Unknown or missing tiers fall back to easy.
	difficulty, _ := domain.ParseDifficulty(r.Difficulty)
	// Overlong text is cut to fit rather than rejected.
	options := make([]string, len(r.Options))
	for i, opt := range r.Options {
		options[i] = truncate(opt, domain.MaxOptionLen)
	}
	q := domain.Question{
		Text:       truncate(strings.TrimSpace(r.Question), domain.MaxQuestionLen),
		Options:    options,
		Correct:    *r.Correct,
		Difficulty: difficulty,
		Category:   domain.ParseCategory(r.Category),
	}
	if err := q.Validate(); err != nil {
		return domain.Question{}, err
	}
	return q, nil
}

// truncate cuts s to at most limit bytes without splitting a UTF-8 sequence.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func decode(data []byte, format Format) ([]Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("decode questions: %w", domain.ErrNoQuestions)
	}

	switch format {
	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(trimmed, &node); err != nil {
			return nil, fmt.Errorf("decode yaml questions: %w", err)
		}
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
			var records []Record
			if err := node.Decode(&records); err != nil {
				return nil, fmt.Errorf("decode yaml questions: %w", err)
			}
			return records, nil
		}
		var doc Document
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode yaml questions: %w", err)
		}
		return doc.Questions, nil
	default:
		if trimmed[0] == '[' {
			var records []Record
			if err := json.Unmarshal(trimmed, &records); err != nil {
				return nil, fmt.Errorf("decode json questions: %w", err)
			}
			return records, nil
		}
		var doc Document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("decode json questions: %w", err)
		}
		return doc.Questions, nil
	}
}

// QuestionLoader reads question banks from the local filesystem. The source is a path.
type QuestionLoader struct {
	log *slog.Logger
}

func NewQuestionLoader(logger *slog.Logger) *QuestionLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuestionLoader{log: logger}
}

// LoadFile parses path and reports every rejected record.
func (l *QuestionLoader) LoadFile(path string) (LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return LoadResult{}, fmt.Errorf("open questions file %s: %w", path, domain.ErrBankNotFound)
		}
		return LoadResult{}, fmt.Errorf("read questions file: %w", err)
	}
	result, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return LoadResult{}, fmt.Errorf("parse %s: %w", path, err)
	}
	for _, rej := range result.Rejected {
		l.log.Warn("question rejected", "file", path, "record", rej.Index, "reason", rej.Reason)
	}
	return result, nil
}

// LoadQuestions satisfies the bank loader contract: zero accepted records is fatal.
func (l *QuestionLoader) LoadQuestions(_ context.Context, source string) ([]domain.Question, error) {
	result, err := l.LoadFile(source)
	if err != nil {
		return nil, err
	}
	if result.Accepted() == 0 {
		return nil, fmt.Errorf("%s: %w", source, domain.ErrNoQuestions)
	}
	l.log.Info("questions loaded", "file", source, "accepted", result.Accepted(), "rejected", len(result.Rejected))
	return result.Questions, nil
}
