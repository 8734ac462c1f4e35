package domain

import "errors"

var (
	// ErrNoQuestions is returned when a question source yields zero valid records.
	ErrNoQuestions = errors.New("no valid questions loaded")
	// ErrInvalidQuestion wraps every question invariant violation.
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrInvalidConfig wraps game configuration violations.
	ErrInvalidConfig = errors.New("invalid game config")
	// ErrBankNotFound indicates the requested question bank does not exist.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrCountdownRunning is returned when starting a countdown twice.
	ErrCountdownRunning = errors.New("countdown already running")
	// ErrInvalidDuration is returned for non-positive countdown lengths.
	ErrInvalidDuration = errors.New("countdown duration must be positive")
)
