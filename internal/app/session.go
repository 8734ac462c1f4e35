package app

import (
	"context"
	"errors"
	"log/slog"

	"terminal-trivia/internal/domain"
	"github.com/google/uuid"
)

// QuestionSource hands out questions for a session. RandomUnused never returns a
// question whose ID is in used; both report false when nothing matches filter.
//
//go:generate mockgen -package=mocks -destination=mocks/mock_question_source.go terminal-trivia/internal/app QuestionSource
type QuestionSource interface {
	Random(filter domain.Difficulty) (domain.Question, bool)
	RandomUnused(filter domain.Difficulty, used map[int]struct{}) (domain.Question, bool)
}

// RoundPlayer resolves a single question. *QuestionRound is the production implementation.
type RoundPlayer interface {
	Play(ctx context.Context, player domain.Player, q domain.Question, number, total int, cfg domain.GameConfig) RoundResult
}

// SessionView renders session progress between rounds.
type SessionView interface {
	RoundScored(player domain.Player, q domain.Question, result RoundResult, points int)
	Scoreboard(players []domain.Player)
	SourceExhausted(filter domain.Difficulty)
	QuitRequested()
}

// SessionConfig wires a GameSession.
type SessionConfig struct {
	Game        domain.GameConfig
	PlayerNames []string
	Source      QuestionSource
	Round       RoundPlayer
	View        SessionView
	Logger      *slog.Logger
}

var (
	errNilSource = errors.New("question source cannot be nil")
	errNilRound  = errors.New("round player cannot be nil")
	errNilView   = errors.New("session view cannot be nil")
)

// GameSession runs one game from the first question to the final report.
// It is driven from a single goroutine and owns all player state.
type GameSession struct {
	id      string
	cfg     domain.GameConfig
	source  QuestionSource
	round   RoundPlayer
	view    SessionView
	players []domain.Player
	turns   *TurnManager
	used    map[int]struct{}
	log     *slog.Logger
}

func NewGameSession(cfg SessionConfig) (*GameSession, error) {
	if err := cfg.Game.Validate(); err != nil {
		return nil, err
	}
	if cfg.Source == nil {
		return nil, errNilSource
	}
	if cfg.Round == nil {
		return nil, errNilRound
	}
	if cfg.View == nil {
		return nil, errNilView
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.NewString()
	return &GameSession{
		id:      id,
		cfg:     cfg.Game,
		source:  cfg.Source,
		round:   cfg.Round,
		view:    cfg.View,
		players: domain.NewPlayers(cfg.Game.Players, cfg.PlayerNames),
		turns:   NewTurnManager(cfg.Game.Players),
		used:    make(map[int]struct{}),
		log:     logger.With("session_id", id),
	}, nil
}

func (s *GameSession) ID() string {
	return s.id
}

// Players returns a copy of the current seat state.
func (s *GameSession) Players() []domain.Player {
	out := make([]domain.Player, len(s.players))
	copy(out, s.players)
	return out
}

// CurrentSeat is the index of the player whose turn it is.
func (s *GameSession) CurrentSeat() int {
	return s.turns.Current()
}

// Run plays every round, stopping early on quit or when the source runs dry.
func (s *GameSession) Run(ctx context.Context) domain.Report {
	total := s.cfg.TotalRounds()
	reason := domain.EndReasonCompleted
	played := 0

	s.log.Info("session started",
		"players", len(s.players),
		"rounds", total,
		"difficulty", s.cfg.Difficulty.String(),
		"timer", s.cfg.UseTimer,
	)

	for i := 0; i < total; i++ {
		seat := s.turns.Current()
		q, ok := s.source.RandomUnused(s.cfg.Difficulty, s.used)
		if !ok {
			s.log.Warn("question source exhausted", "round", i+1, "filter", s.cfg.Difficulty.String())
			s.view.SourceExhausted(s.cfg.Difficulty)
			reason = domain.EndReasonExhausted
			break
		}
		s.used[q.ID] = struct{}{}

		result := s.round.Play(ctx, s.players[seat], q, i+1, total, s.cfg)
		if result.Outcome == OutcomeQuit {
			s.log.Info("session quit", "round", i+1, "seat", seat)
			s.view.QuitRequested()
			reason = domain.EndReasonQuit
			break
		}

		points := s.apply(seat, q, result)
		played++
		s.log.Debug("round resolved",
			"round", i+1,
			"seat", seat,
			"question_id", q.ID,
			"outcome", result.Outcome.String(),
			"remaining", result.Remaining,
			"points", points,
		)
		s.view.RoundScored(s.players[seat], q, result, points)
		if len(s.players) > 1 {
			s.view.Scoreboard(s.Players())
		}
		s.turns.Advance()
	}

	report := BuildReport(s.id, s.players, played, reason)
	s.log.Info("session finished", "reason", string(reason), "rounds_played", played, "tie", report.Tie)
	return report
}

// apply records a resolved round against a seat and returns the points awarded.
func (s *GameSession) apply(seat int, q domain.Question, result RoundResult) int {
	p := &s.players[seat]
	switch result.Outcome {
	case OutcomeTimedOut:
		p.Timeouts++
		return 0
	case OutcomeAnswered:
		if !q.IsCorrect(result.Choice) {
			p.Wrong++
			return 0
		}
		points := Score(true, result.Remaining, q.Difficulty)
		p.Correct++
		p.Score += points
		return points
	}
	return 0
}
