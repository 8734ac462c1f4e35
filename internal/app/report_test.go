package app

import (
	"testing"

	"terminal-trivia/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playersWithScores(scores ...int) []domain.Player {
	players := domain.NewPlayers(len(scores), nil)
	for i, s := range scores {
		players[i].Score = s
	}
	return players
}

func TestBuildReportTie(t *testing.T) {
	report := BuildReport("s1", playersWithScores(10, 10, 5), 6, domain.EndReasonCompleted)

	assert.True(t, report.Tie)
	assert.Equal(t, -1, report.Winner)
	require.Len(t, report.Standings, 3)
	assert.Equal(t, 0, report.Standings[0].Seat)
	assert.Equal(t, 1, report.Standings[0].Place)
	assert.Equal(t, 1, report.Standings[1].Seat)
	assert.Equal(t, 1, report.Standings[1].Place)
	assert.Equal(t, 3, report.Standings[2].Place)
}

func TestBuildReportSoleWinner(t *testing.T) {
	report := BuildReport("s1", playersWithScores(10, 5, 5), 6, domain.EndReasonCompleted)

	assert.False(t, report.Tie)
	assert.Equal(t, 0, report.Winner)
	assert.Equal(t, 2, report.Standings[1].Place)
	assert.Equal(t, 2, report.Standings[2].Place)
}

func TestBuildReportRanksLaterSeatFirst(t *testing.T) {
	report := BuildReport("s1", playersWithScores(5, 20, 10, 0), 8, domain.EndReasonQuit)

	assert.Equal(t, 1, report.Winner)
	seats := []int{}
	for _, st := range report.Standings {
		seats = append(seats, st.Seat)
	}
	assert.Equal(t, []int{1, 2, 0, 3}, seats)
	assert.Equal(t, domain.EndReasonQuit, report.EndReason)
}

func TestBuildReportSinglePlayer(t *testing.T) {
	report := BuildReport("s1", playersWithScores(0), 0, domain.EndReasonExhausted)

	assert.True(t, report.SinglePlayer())
	assert.False(t, report.Tie)
	assert.Equal(t, 0, report.Winner)
	assert.Zero(t, report.Players[0].Accuracy())
}
