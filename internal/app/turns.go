package app

// TurnManager tracks whose turn it is. A single seat always stays at index 0.
type TurnManager struct {
	seats   int
	current int
}

func NewTurnManager(seats int) *TurnManager {
	if seats < 1 {
		seats = 1
	}
	return &TurnManager{seats: seats}
}

// Current is the active seat index in [0, seats).
func (t *TurnManager) Current() int {
	return t.current
}

// Advance hands the turn to the next seat.
func (t *TurnManager) Advance() {
	t.current = (t.current + 1) % t.seats
}
