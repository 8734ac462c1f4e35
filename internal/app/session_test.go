package app

import (
	"context"
	"testing"

	"terminal-trivia/internal/app/mocks"
	"terminal-trivia/internal/domain"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// scriptedRounds returns canned results in order and records who was asked.
type scriptedRounds struct {
	results []RoundResult
	seats   []string
	numbers []int
}

func (r *scriptedRounds) Play(_ context.Context, player domain.Player, _ domain.Question, number, _ int, _ domain.GameConfig) RoundResult {
	r.seats = append(r.seats, player.Name)
	r.numbers = append(r.numbers, number)
	result := r.results[0]
	r.results = r.results[1:]
	return result
}

type sessionView struct {
	scored      []int
	scoreboards int
	exhausted   bool
	quit        bool
}

func (v *sessionView) RoundScored(_ domain.Player, _ domain.Question, _ RoundResult, points int) {
	v.scored = append(v.scored, points)
}
func (v *sessionView) Scoreboard([]domain.Player)        { v.scoreboards++ }
func (v *sessionView) SourceExhausted(domain.Difficulty) { v.exhausted = true }
func (v *sessionView) QuitRequested()                    { v.quit = true }

type GameSessionTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockSource *mocks.MockQuestionSource
	view       *sessionView
	ctx        context.Context

	easy   domain.Question
	medium domain.Question
	hard   domain.Question
}

func TestGameSessionTestSuite(t *testing.T) {
	suite.Run(t, new(GameSessionTestSuite))
}

func (s *GameSessionTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSource = mocks.NewMockQuestionSource(s.mockCtrl)
	s.view = &sessionView{}
	s.ctx = context.Background()

	s.easy = domain.Question{ID: 1, Text: "easy", Options: []string{"a", "b"}, Correct: 0, Difficulty: domain.DifficultyEasy}
	s.medium = domain.Question{ID: 2, Text: "medium", Options: []string{"a", "b", "c"}, Correct: 2, Difficulty: domain.DifficultyMedium}
	s.hard = domain.Question{ID: 3, Text: "hard", Options: []string{"a", "b", "c", "d"}, Correct: 3, Difficulty: domain.DifficultyHard}
}

func (s *GameSessionTestSuite) newSession(cfg domain.GameConfig, rounds *scriptedRounds, names ...string) *GameSession {
	session, err := NewGameSession(SessionConfig{
		Game:        cfg,
		PlayerNames: names,
		Source:      s.mockSource,
		Round:       rounds,
		View:        s.view,
	})
	s.Require().NoError(err)
	return session
}

func (s *GameSessionTestSuite) config(players, perPlayer int) domain.GameConfig {
	return domain.GameConfig{
		QuestionsPerGame: perPlayer,
		TimePerQuestion:  30,
		Difficulty:       domain.DifficultyAny,
		UseTimer:         true,
		Players:          players,
	}
}

func (s *GameSessionTestSuite) TestSinglePlayerScoresEachOutcome() {
	gomock.InOrder(
		s.mockSource.EXPECT().RandomUnused(domain.DifficultyAny, gomock.Any()).Return(s.easy, true),
		s.mockSource.EXPECT().RandomUnused(domain.DifficultyAny, gomock.Any()).Return(s.medium, true),
		s.mockSource.EXPECT().RandomUnused(domain.DifficultyAny, gomock.Any()).Return(s.hard, true),
	)
	rounds := &scriptedRounds{results: []RoundResult{
		{Outcome: OutcomeAnswered, Choice: 1, Remaining: 9},
		{Outcome: OutcomeAnswered, Choice: 1, Remaining: 20},
		{Outcome: OutcomeTimedOut},
	}}

	report := s.newSession(s.config(1, 3), rounds).Run(s.ctx)

	s.Equal(domain.EndReasonCompleted, report.EndReason)
	s.Equal(3, report.RoundsPlayed)
	s.Require().Len(report.Players, 1)
	p := report.Players[0]
	s.Equal("Player 1", p.Name)
	s.Equal(14, p.Score)
	s.Equal(1, p.Correct)
	s.Equal(1, p.Wrong)
	s.Equal(1, p.Timeouts)
	s.Equal([]int{14, 0, 0}, s.view.scored)
	s.Zero(s.view.scoreboards)
	s.Equal(0, report.Winner)
}

func (s *GameSessionTestSuite) TestQuestionsAreNotRepeated() {
	var seen []map[int]struct{}
	s.mockSource.EXPECT().RandomUnused(domain.DifficultyAny, gomock.Any()).
		DoAndReturn(func(_ domain.Difficulty, used map[int]struct{}) (domain.Question, bool) {
			snapshot := make(map[int]struct{}, len(used))
			for id := range used {
				snapshot[id] = struct{}{}
			}
			seen = append(seen, snapshot)
			for _, q := range []domain.Question{s.easy, s.medium, s.hard} {
				if _, ok := used[q.ID]; !ok {
					return q, true
				}
			}
			return domain.Question{}, false
		}).Times(3)
	rounds := &scriptedRounds{results: []RoundResult{
		{Outcome: OutcomeTimedOut}, {Outcome: OutcomeTimedOut}, {Outcome: OutcomeTimedOut},
	}}

	report := s.newSession(s.config(1, 3), rounds).Run(s.ctx)

	s.Equal(3, report.RoundsPlayed)
	s.Len(seen[0], 0)
	s.Len(seen[1], 1)
	s.Len(seen[2], 2)
}

func (s *GameSessionTestSuite) TestMultiplayerRotatesTurns() {
	s.mockSource.EXPECT().RandomUnused(domain.DifficultyAny, gomock.Any()).Return(s.easy, true).Times(6)
	rounds := &scriptedRounds{results: []RoundResult{
		{Outcome: OutcomeAnswered, Choice: 1, Remaining: 0},
		{Outcome: OutcomeAnswered, Choice: 2, Remaining: 0},
		{Outcome: OutcomeTimedOut},
		{Outcome: OutcomeAnswered, Choice: 1, Remaining: 4},
		{Outcome: OutcomeAnswered, Choice: 1, Remaining: 0},
		{Outcome: OutcomeAnswered, Choice: 1, Remaining: 0},
	}}

	session := s.newSession(s.config(3, 2), rounds, "Ann", "", "Cy")
	report := session.Run(s.ctx)

	s.Equal([]string{"Ann", "Player 2", "Cy", "Ann", "Player 2", "Cy"}, rounds.seats)
	s.Equal([]int{1, 2, 3, 4, 5, 6}, rounds.numbers)
	s.Equal(6, s.view.scoreboards)
	s.Equal(0, session.CurrentSeat())

	s.Equal(22, report.Players[0].Score)
	s.Equal(10, report.Players[1].Score)
	s.Equal(10, report.Players[2].Score)
	s.Equal(1, report.Players[1].Wrong)
	s.Equal(1, report.Players[2].Timeouts)
	s.False(report.Tie)
	s.Equal(0, report.Winner)
}

func (s *GameSessionTestSuite) TestMultiplayerTie() {
	s.mockSource.EXPECT().RandomUnused(domain.DifficultyAny, gomock.Any()).Return(s.easy, true).Times(2)
	rounds := &scriptedRounds{results: []RoundResult{
		{Outcome: OutcomeAnswered, Choice: 1, Remaining: 0},
		{Outcome: OutcomeAnswered, Choice: 1, Remaining: 0},
	}}

	report := s.newSession(s.config(2, 1), rounds).Run(s.ctx)

	s.True(report.Tie)
	s.Equal(-1, report.Winner)
}

func (s *GameSessionTestSuite) TestQuitStopsImmediately() {
	s.mockSource.EXPECT().RandomUnused(domain.DifficultyAny, gomock.Any()).Return(s.easy, true).Times(2)
	rounds := &scriptedRounds{results: []RoundResult{
		{Outcome: OutcomeAnswered, Choice: 1, Remaining: 0},
		{Outcome: OutcomeQuit, Remaining: 12},
	}}

	report := s.newSession(s.config(2, 5), rounds).Run(s.ctx)

	s.Equal(domain.EndReasonQuit, report.EndReason)
	s.Equal(1, report.RoundsPlayed)
	s.True(s.view.quit)
	s.Zero(report.Players[1].Answered())
}

func (s *GameSessionTestSuite) TestExhaustionEndsSessionWithReport() {
	cfg := s.config(1, 5)
	cfg.Difficulty = domain.DifficultyHard
	gomock.InOrder(
		s.mockSource.EXPECT().RandomUnused(domain.DifficultyHard, gomock.Any()).Return(s.hard, true),
		s.mockSource.EXPECT().RandomUnused(domain.DifficultyHard, gomock.Any()).Return(domain.Question{}, false),
	)
	rounds := &scriptedRounds{results: []RoundResult{{Outcome: OutcomeAnswered, Choice: 4, Remaining: 2}}}

	report := s.newSession(cfg, rounds).Run(s.ctx)

	s.Equal(domain.EndReasonExhausted, report.EndReason)
	s.Equal(1, report.RoundsPlayed)
	s.Equal(31, report.Players[0].Score)
	s.True(s.view.exhausted)
}

func (s *GameSessionTestSuite) TestEmptySourceStillReports() {
	s.mockSource.EXPECT().RandomUnused(domain.DifficultyAny, gomock.Any()).Return(domain.Question{}, false)

	report := s.newSession(s.config(1, 3), &scriptedRounds{}).Run(s.ctx)

	s.Equal(domain.EndReasonExhausted, report.EndReason)
	s.Zero(report.RoundsPlayed)
	s.Zero(report.Players[0].Accuracy())
}

func (s *GameSessionTestSuite) TestRejectsInvalidConfig() {
	_, err := NewGameSession(SessionConfig{
		Game:   s.config(0, 3),
		Source: s.mockSource,
		Round:  &scriptedRounds{},
		View:   s.view,
	})
	s.ErrorIs(err, domain.ErrInvalidConfig)

	_, err = NewGameSession(SessionConfig{Game: s.config(1, 3), Round: &scriptedRounds{}, View: s.view})
	s.ErrorIs(err, errNilSource)
}
