package domain

import (
	"fmt"
	"strings"
)

const (
	// MinOptions and MaxOptions bound the answer list of a question.
	MinOptions = 2
	MaxOptions = 4
	// MaxQuestionLen and MaxOptionLen bound the text stored per question.
	MaxQuestionLen = 512
	MaxOptionLen   = 256
	// MaxPlayers is the largest number of local seats.
	MaxPlayers = 4
)

// Difficulty is a question tier. It doubles as a session filter.
type Difficulty int

const (
	// DifficultyAny disables the difficulty filter.
	DifficultyAny Difficulty = iota - 1
	DifficultyEasy
	DifficultyMedium
	DifficultyHard
)

// ParseDifficulty maps the file representation of a tier. Matching is case-sensitive.
func ParseDifficulty(raw string) (Difficulty, bool) {
	switch raw {
	case "easy":
		return DifficultyEasy, true
	case "medium":
		return DifficultyMedium, true
	case "hard":
		return DifficultyHard, true
	}
	return DifficultyEasy, false
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyAny:
		return "Any"
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	}
	return "Unknown"
}

// Key is the lowercase form used in question files.
func (d Difficulty) Key() string {
	return strings.ToLower(d.String())
}

// Matches reports whether a question of tier q passes the filter d.
func (d Difficulty) Matches(q Difficulty) bool {
	return d == DifficultyAny || d == q
}

// Category is an informational tag; it never affects scoring.
type Category int

const (
	CategoryGeneral Category = iota
	CategoryScience
	CategoryHistory
	CategorySports
	CategoryEntertainment
)

// ParseCategory falls back to General for blank or unknown values.
func ParseCategory(raw string) Category {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "science":
		return CategoryScience
	case "history":
		return CategoryHistory
	case "sports":
		return CategorySports
	case "entertainment":
		return CategoryEntertainment
	}
	return CategoryGeneral
}

func (c Category) String() string {
	switch c {
	case CategoryGeneral:
		return "General"
	case CategoryScience:
		return "Science"
	case CategoryHistory:
		return "History"
	case CategorySports:
		return "Sports"
	case CategoryEntertainment:
		return "Entertainment"
	}
	return "Unknown"
}

// Question models an MCQ question with exactly one correct option.
// Correct is a 0-based index into Options.
type Question struct {
	ID         int
	Text       string
	Options    []string
	Correct    int
	Difficulty Difficulty
	Category   Category
}

// Validate checks the invariants every banked question must hold.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: empty question text", ErrInvalidQuestion)
	}
	if len(q.Text) > MaxQuestionLen {
		return fmt.Errorf("%w: question text longer than %d bytes", ErrInvalidQuestion, MaxQuestionLen)
	}
	if len(q.Options) < MinOptions || len(q.Options) > MaxOptions {
		return fmt.Errorf("%w: %d options, want %d-%d", ErrInvalidQuestion, len(q.Options), MinOptions, MaxOptions)
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: option %d is empty", ErrInvalidQuestion, i+1)
		}
		if len(opt) > MaxOptionLen {
			return fmt.Errorf("%w: option %d longer than %d bytes", ErrInvalidQuestion, i+1, MaxOptionLen)
		}
	}
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return fmt.Errorf("%w: correct index %d outside [0, %d)", ErrInvalidQuestion, q.Correct, len(q.Options))
	}
	return nil
}

// IsCorrect takes the 1-based choice typed by a player.
func (q Question) IsCorrect(choice int) bool {
	return choice-1 == q.Correct
}

// CorrectOption returns the 1-based number and text of the right answer.
func (q Question) CorrectOption() (int, string) {
	return q.Correct + 1, q.Options[q.Correct]
}

// GameConfig is fixed for the lifetime of one session.
type GameConfig struct {
	QuestionsPerGame int
	TimePerQuestion  int // seconds
	Difficulty       Difficulty
	UseTimer         bool
	Players          int
}

// Validate rejects configurations a session cannot run with.
func (c GameConfig) Validate() error {
	if c.QuestionsPerGame < 1 {
		return fmt.Errorf("%w: questions per game must be at least 1", ErrInvalidConfig)
	}
	if c.UseTimer && c.TimePerQuestion <= 0 {
		return fmt.Errorf("%w: time per question must be positive when the timer is enabled", ErrInvalidConfig)
	}
	if c.Players < 1 || c.Players > MaxPlayers {
		return fmt.Errorf("%w: player count %d outside 1-%d", ErrInvalidConfig, c.Players, MaxPlayers)
	}
	if c.Difficulty < DifficultyAny || c.Difficulty > DifficultyHard {
		return fmt.Errorf("%w: unknown difficulty %d", ErrInvalidConfig, c.Difficulty)
	}
	return nil
}

// TotalRounds is the number of questions asked across all seats.
func (c GameConfig) TotalRounds() int {
	return c.QuestionsPerGame * max(c.Players, 1)
}

// Player accumulates one seat's results. Single-player games use a one-element slice.
type Player struct {
	Name     string
	Score    int
	Correct  int
	Wrong    int
	Timeouts int
}

// DefaultPlayerName is used for seats left unnamed.
func DefaultPlayerName(seat int) string {
	return fmt.Sprintf("Player %d", seat+1)
}

// NewPlayers builds count seats, taking names in order and defaulting blank ones.
func NewPlayers(count int, names []string) []Player {
	players := make([]Player, count)
	for i := range players {
		name := ""
		if i < len(names) {
			name = strings.TrimSpace(names[i])
		}
		if name == "" {
			name = DefaultPlayerName(i)
		}
		players[i].Name = name
	}
	return players
}

// Answered counts every round the player took, timeouts included.
func (p Player) Answered() int {
	return p.Correct + p.Wrong + p.Timeouts
}

// Accuracy is the share of correct answers in percent, 0 when nothing was answered.
func (p Player) Accuracy() float64 {
	answered := p.Answered()
	if answered == 0 {
		return 0
	}
	return float64(p.Correct) / float64(answered) * 100
}

// EndReason records why a session stopped.
type EndReason string

const (
	EndReasonCompleted EndReason = "completed"
	EndReasonQuit      EndReason = "quit"
	EndReasonExhausted EndReason = "exhausted"
)

// Standing is one ranked row of the final report.
type Standing struct {
	Seat   int
	Place  int // 1-based; tied players share a place
	Player Player
}

// Report is the final summary of a session.
type Report struct {
	SessionID    string
	Players      []Player
	Standings    []Standing
	Winner       int // seat index, -1 on a tie
	Tie          bool
	RoundsPlayed int
	EndReason    EndReason
}

// SinglePlayer reports whether the session had one seat.
func (r Report) SinglePlayer() bool {
	return len(r.Players) == 1
}
