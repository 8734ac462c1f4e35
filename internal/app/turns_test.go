package app

import "testing"

func TestTurnRotation(t *testing.T) {
	for seats := 1; seats <= 4; seats++ {
		turns := NewTurnManager(seats)
		for k := 0; k < 13; k++ {
			if got, want := turns.Current(), k%seats; got != want {
				t.Fatalf("seats=%d after %d rounds: got seat %d, want %d", seats, k, got, want)
			}
			turns.Advance()
		}
	}
}

func TestTurnManagerClampsSeats(t *testing.T) {
	turns := NewTurnManager(0)
	turns.Advance()
	turns.Advance()
	if turns.Current() != 0 {
		t.Fatalf("expected a single seat, got current=%d", turns.Current())
	}
}
