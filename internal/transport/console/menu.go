package console

import (
	"context"
	"strconv"

	"terminal-trivia/internal/domain"
)

// LineReader is the blocking side of the answer collector.
type LineReader interface {
	ReadLine(ctx context.Context) (string, error)
}

// Selection is what the main menu resolved to.
type Selection struct {
	Difficulty domain.Difficulty
	Exit       bool
	Valid      bool
}

// Menu drives the prompts around a game. It shares one reader with the rounds
// so no input is lost between them.
type Menu struct {
	in   LineReader
	view *View
}

func NewMenu(in LineReader, view *View) *Menu {
	return &Menu{in: in, view: view}
}

var menuDifficulties = map[int]domain.Difficulty{
	1: domain.DifficultyEasy,
	2: domain.DifficultyMedium,
	3: domain.DifficultyHard,
	4: domain.DifficultyAny,
}

// Main shows the main menu. Anything other than 1-5 comes back with Valid unset.
func (m *Menu) Main(ctx context.Context) (Selection, error) {
	m.view.MainMenu()
	line, err := m.in.ReadLine(ctx)
	if err != nil {
		return Selection{}, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return Selection{}, nil
	}
	if n == 5 {
		return Selection{Exit: true, Valid: true}, nil
	}
	d, ok := menuDifficulties[n]
	if !ok {
		return Selection{}, nil
	}
	return Selection{Difficulty: d, Valid: true}, nil
}

// PlayerCount returns 0 for anything outside 1..MaxPlayers.
func (m *Menu) PlayerCount(ctx context.Context) (int, error) {
	m.view.PlayerCountMenu()
	line, err := m.in.ReadLine(ctx)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > domain.MaxPlayers {
		return 0, nil
	}
	return n, nil
}

// PlayerNames asks each seat for a name. Blank answers keep the default.
func (m *Menu) PlayerNames(ctx context.Context, count int) ([]string, error) {
	if count <= 1 {
		return nil, nil
	}
	m.view.NamesHeader()
	names := make([]string, count)
	for i := range names {
		m.view.NamePrompt(i)
		line, err := m.in.ReadLine(ctx)
		if err != nil {
			return nil, err
		}
		names[i] = line
	}
	return names, nil
}

func (m *Menu) WaitForEnter(ctx context.Context) error {
	m.view.PressEnter()
	_, err := m.in.ReadLine(ctx)
	return err
}
