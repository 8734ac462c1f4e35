package app

import (
	"context"
	"log/slog"
	"time"

	"terminal-trivia/internal/domain"
)

// DefaultPollInterval bounds each input poll while the countdown runs.
const DefaultPollInterval = 100 * time.Millisecond

// Outcome is the single result a round resolves to.
type Outcome int

const (
	OutcomeAnswered Outcome = iota + 1
	OutcomeTimedOut
	OutcomeQuit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAnswered:
		return "answered"
	case OutcomeTimedOut:
		return "timed_out"
	case OutcomeQuit:
		return "quit"
	}
	return "unknown"
}

// RoundResult carries the outcome plus what scoring needs from the moment it resolved.
type RoundResult struct {
	Outcome   Outcome
	Choice    int // 1-based, set for OutcomeAnswered
	Remaining int // seconds left when the round resolved
}

// RoundView renders a round. Implementations must not block.
type RoundView interface {
	QuestionShown(player domain.Player, q domain.Question, number, total int, timeLimit int)
	RemainingChanged(seconds int)
	InvalidInput(optionCount int)
	TimeUp()
}

// QuestionRound races a countdown against polled input for one question.
type QuestionRound struct {
	countdown    *Countdown
	input        InputSource
	view         RoundView
	pollInterval time.Duration
	log          *slog.Logger
}

// RoundOptions configures a QuestionRound. Zero values pick defaults.
type RoundOptions struct {
	Tick         time.Duration
	PollInterval time.Duration
	Logger       *slog.Logger
}

func NewQuestionRound(input InputSource, view RoundView, opts RoundOptions) *QuestionRound {
	poll := opts.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &QuestionRound{
		countdown:    NewCountdown(opts.Tick),
		input:        input,
		view:         view,
		pollInterval: poll,
		log:          logger,
	}
}

// Play presents q to player and resolves it to exactly one outcome.
// Context cancellation resolves as a quit.
func (r *QuestionRound) Play(ctx context.Context, player domain.Player, q domain.Question, number, total int, cfg domain.GameConfig) RoundResult {
	timeLimit := 0
	if cfg.UseTimer {
		timeLimit = cfg.TimePerQuestion
	}
	r.view.QuestionShown(player, q, number, total, timeLimit)

	if !cfg.UseTimer {
		return r.playUntimed(ctx, q, cfg.TimePerQuestion)
	}
	return r.playTimed(ctx, q, cfg.TimePerQuestion)
}

func (r *QuestionRound) playTimed(ctx context.Context, q domain.Question, seconds int) RoundResult {
	if err := r.countdown.Reset(seconds); err != nil {
		r.log.Error("reset countdown", "error", err)
		return RoundResult{Outcome: OutcomeTimedOut}
	}
	if err := r.countdown.Start(seconds); err != nil {
		r.log.Error("start countdown", "error", err)
		return RoundResult{Outcome: OutcomeTimedOut}
	}
	defer r.countdown.Stop()

	optionCount := len(q.Options)
	shown := seconds
	for r.countdown.Running() {
		if ctx.Err() != nil {
			return r.resolve(OutcomeQuit, 0)
		}
		in := r.input.Poll(optionCount, r.pollInterval)
		if result, done := r.handle(in, optionCount); done {
			return result
		}
		if remaining := r.countdown.Remaining(); remaining != shown {
			shown = remaining
			r.view.RemainingChanged(remaining)
		}
	}

	// Input already buffered when the clock ran out still beats the timeout.
	for {
		in := r.input.Poll(optionCount, 0)
		if in.Kind == InputPending {
			break
		}
		if result, done := r.handle(in, optionCount); done {
			return result
		}
	}

	r.countdown.Stop()
	r.view.TimeUp()
	return RoundResult{Outcome: OutcomeTimedOut}
}

// handle maps polled input to a final result. done is false for pending and invalid input.
func (r *QuestionRound) handle(in Input, optionCount int) (RoundResult, bool) {
	switch in.Kind {
	case InputQuit, InputClosed:
		return r.resolve(OutcomeQuit, 0), true
	case InputChoice:
		return r.resolve(OutcomeAnswered, in.Choice), true
	case InputInvalid:
		r.log.Debug("invalid answer input", "input", in.Raw)
		r.view.InvalidInput(optionCount)
	}
	return RoundResult{}, false
}

func (r *QuestionRound) resolve(outcome Outcome, choice int) RoundResult {
	r.countdown.Stop()
	return RoundResult{
		Outcome:   outcome,
		Choice:    choice,
		Remaining: r.countdown.Remaining(),
	}
}

// playUntimed blocks on input, reprompting on invalid lines like the timed path does.
func (r *QuestionRound) playUntimed(ctx context.Context, q domain.Question, timeCredit int) RoundResult {
	optionCount := len(q.Options)
	for {
		if ctx.Err() != nil {
			return RoundResult{Outcome: OutcomeQuit}
		}
		in := r.input.Poll(optionCount, r.pollInterval)
		switch in.Kind {
		case InputQuit, InputClosed:
			return RoundResult{Outcome: OutcomeQuit}
		case InputChoice:
			return RoundResult{Outcome: OutcomeAnswered, Choice: in.Choice, Remaining: timeCredit}
		case InputInvalid:
			r.log.Debug("invalid answer input", "input", in.Raw)
			r.view.InvalidInput(optionCount)
		}
	}
}
