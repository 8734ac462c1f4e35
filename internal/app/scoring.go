package app

import "terminal-trivia/internal/domain"

// BasePoints is the reward for a correct answer before the time bonus.
func BasePoints(d domain.Difficulty) int {
	switch d {
	case domain.DifficultyMedium:
		return 20
	case domain.DifficultyHard:
		return 30
	default:
		return 10
	}
}

// Score awards nothing for a wrong answer, otherwise the tier base plus half the seconds left.
func Score(correct bool, remaining int, d domain.Difficulty) int {
	if !correct {
		return 0
	}
	if remaining < 0 {
		remaining = 0
	}
	return BasePoints(d) + remaining/2
}
