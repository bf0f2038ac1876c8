// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI loop, input mapping, and screen orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. ID identifies the game
// model that scheduled it, so ticks left over from a finished round are
// dropped instead of speeding up the next one.
type TickMsg struct {
	ID   int
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick after interval.
// The model reschedules it on every tick; the loop ends with the program.
func tickCmd(id int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
