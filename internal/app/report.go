package app

import (
	"sort"

	"terminal-trivia/internal/domain"
)

// BuildReport ranks players by score. Several players sharing the top score is a
// tie and leaves Winner at -1.
func BuildReport(sessionID string, players []domain.Player, rounds int, reason domain.EndReason) domain.Report {
	snapshot := make([]domain.Player, len(players))
	copy(snapshot, players)

	standings := make([]domain.Standing, len(snapshot))
	for i, p := range snapshot {
		standings[i] = domain.Standing{Seat: i, Player: p}
	}
	// Score desc, then seat order.
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Player.Score > standings[j].Player.Score
	})
	for i := range standings {
		if i > 0 && standings[i].Player.Score == standings[i-1].Player.Score {
			standings[i].Place = standings[i-1].Place
		} else {
			standings[i].Place = i + 1
		}
	}

	report := domain.Report{
		SessionID:    sessionID,
		Players:      snapshot,
		Standings:    standings,
		Winner:       -1,
		RoundsPlayed: rounds,
		EndReason:    reason,
	}
	if len(standings) == 0 {
		return report
	}

	leaders := 0
	for _, st := range standings {
		if st.Place == 1 {
			leaders++
		}
	}
	if leaders > 1 {
		report.Tie = true
		return report
	}
	report.Winner = standings[0].Seat
	return report
}
