package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"terminal-trivia/internal/app"
	"terminal-trivia/internal/domain"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

const rule = "═══════════════════════════════════════════════════════"

// View renders rounds, scoreboards and reports as plain text. Terminal-only
// output (screen clears, in-place countdown) is skipped when out is not a tty.
type View struct {
	mu          sync.Mutex
	out         io.Writer
	interactive bool
	multiplayer bool
}

// NewView detects whether out is a terminal.
func NewView(out io.Writer) *View {
	interactive := false
	if f, ok := out.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &View{out: out, interactive: interactive}
}

var (
	_ app.RoundView   = (*View)(nil)
	_ app.SessionView = (*View)(nil)
)

func (v *View) printf(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, format, args...)
}

func (v *View) header(title string) {
	v.printf("\n%s\n%s\n%s\n\n", rule, center(title), rule)
}

func center(title string) string {
	pad := (len([]rune(rule)) - len(title)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + title
}

// Clear wipes the screen on a terminal and does nothing otherwise.
func (v *View) Clear() {
	if v.interactive {
		v.printf("\033[H\033[2J")
	}
}

func (v *View) Loaded(count int, source string) {
	v.printf("Loaded %d questions from %s\n", count, source)
}

func (v *View) Error(msg string) {
	v.printf("Error: %s\n", msg)
}

func (v *View) Notice(msg string) {
	v.printf("\n%s\n", msg)
}

func (v *View) MainMenu() {
	v.Clear()
	v.header("TERMINAL TRIVIA GAME - MAIN MENU")
	v.printf("  1. Start New Game (Easy)\n")
	v.printf("  2. Start New Game (Medium)\n")
	v.printf("  3. Start New Game (Hard)\n")
	v.printf("  4. Start New Game (Mixed Difficulty)\n")
	v.printf("  5. Exit\n")
	v.printf("\n  Enter your choice: ")
}

func (v *View) PlayerCountMenu() {
	v.Clear()
	v.header("SELECT NUMBER OF PLAYERS")
	v.printf("  1. Single Player\n")
	v.printf("  2. Two Players\n")
	v.printf("  3. Three Players\n")
	v.printf("  4. Four Players\n")
	v.printf("\n  Enter your choice: ")
}

func (v *View) NamesHeader() {
	v.Clear()
	v.header("ENTER PLAYER NAMES")
}

func (v *View) NamePrompt(seat int) {
	v.printf("  Enter name for %s: ", domain.DefaultPlayerName(seat))
}

func (v *View) PressEnter() {
	v.printf("\nPress Enter to continue...")
}

// Banner summarizes the game about to start.
func (v *View) Banner(cfg domain.GameConfig) {
	v.mu.Lock()
	v.multiplayer = cfg.Players > 1
	v.mu.Unlock()

	v.Clear()
	v.header("WELCOME TO TERMINAL TRIVIA GAME!")
	v.printf("Game Configuration:\n")
	v.printf("  Questions: %d\n", cfg.QuestionsPerGame)
	if cfg.UseTimer {
		v.printf("  Time per question: %d seconds\n", cfg.TimePerQuestion)
	} else {
		v.printf("  Time per question: untimed\n")
	}
	v.printf("  Difficulty: %s\n", cfg.Difficulty)
	v.printf("  Players: %d\n", cfg.Players)
}

func (v *View) QuestionShown(player domain.Player, q domain.Question, number, total int, timeLimit int) {
	v.Clear()
	v.printf("\n%s\n", rule)
	v.printf("  Question %d/%d  [%s | %s]\n", number, total, q.Difficulty, q.Category)
	v.mu.Lock()
	multiplayer := v.multiplayer
	v.mu.Unlock()
	if multiplayer {
		v.printf("  %s's turn\n", player.Name)
	}
	v.printf("%s\n\n", rule)
	v.printf("  %s\n\n", q.Text)
	for i, opt := range q.Options {
		v.printf("    %d. %s\n", i+1, opt)
	}
	v.printf("\n")
	if timeLimit > 0 {
		v.printf("  Time remaining: %d seconds\n", timeLimit)
	}
	v.printf("  Enter your answer (1-%d) or 'q' to quit: ", len(q.Options))
}

// RemainingChanged redraws the countdown in place. Piped output would only
// collect noise, so it is dropped there.
func (v *View) RemainingChanged(seconds int) {
	if !v.interactive {
		return
	}
	v.printf("\r  Time remaining: %d seconds   ", seconds)
}

func (v *View) InvalidInput(optionCount int) {
	v.printf("  Invalid input. Enter 1-%d: ", optionCount)
}

func (v *View) TimeUp() {
	v.printf("\n\n  Time's up!\n")
}

func (v *View) RoundScored(_ domain.Player, q domain.Question, result app.RoundResult, points int) {
	number, text := q.CorrectOption()
	switch {
	case result.Outcome == app.OutcomeTimedOut:
		v.printf("\nTime's up! The correct answer was: %d. %s\n", number, text)
	case q.IsCorrect(result.Choice):
		v.printf("\nCorrect! +%d points\n", points)
	default:
		v.printf("\nWrong! The correct answer was: %d. %s\n", number, text)
	}
}

func (v *View) Scoreboard(players []domain.Player) {
	v.printf("\nCurrent Scores:\n")
	for _, p := range players {
		v.printf("  %s: %d points\n", p.Name, p.Score)
	}
}

func (v *View) SourceExhausted(filter domain.Difficulty) {
	v.printf("\nNo more questions available (difficulty: %s).\n", filter)
}

func (v *View) QuitRequested() {
	v.printf("\nGame quit by user.\n")
}

// Report prints the final statistics.
func (v *View) Report(report domain.Report) {
	v.Clear()
	v.header("GAME STATISTICS")

	switch report.EndReason {
	case domain.EndReasonQuit:
		v.printf("Game ended early after %d rounds.\n\n", report.RoundsPlayed)
	case domain.EndReasonExhausted:
		v.printf("Ran out of questions after %d rounds.\n\n", report.RoundsPlayed)
	}

	if report.SinglePlayer() {
		p := report.Players[0]
		v.printf("  Total Questions: %d\n", p.Answered())
		v.printf("  Final Score: %d points\n", p.Score)
		v.printf("  Correct: %d\n", p.Correct)
		v.printf("  Wrong: %d\n", p.Wrong)
		v.printf("  Timeouts: %d\n", p.Timeouts)
		v.printf("  Accuracy: %.1f%%\n", p.Accuracy())
		return
	}

	v.printf("Final Standings:\n\n")
	for _, st := range report.Standings {
		p := st.Player
		v.printf("  %s  %s: %d points\n", humanize.Ordinal(st.Place), p.Name, p.Score)
		v.printf("       Correct: %d  Wrong: %d  Timeouts: %d  Accuracy: %.1f%%\n",
			p.Correct, p.Wrong, p.Timeouts, p.Accuracy())
	}
	v.printf("\n")
	if report.Tie {
		v.printf("It's a tie!\n")
		return
	}
	v.printf("Winner: %s!\n", report.Players[report.Winner].Name)
}
