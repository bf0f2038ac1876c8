package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nepaliayush/flappy-bird/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestGameKeyMapAction(t *testing.T) {
	keys := DefaultGameKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionJump},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump},
		{"w", runeKey('w'), core.ActionJump},
		{"r", runeKey('r'), core.ActionRestart},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionRestart},
		{"p", runeKey('p'), core.ActionPause},
		{"esc", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionBack},
		{"b", runeKey('b'), core.ActionBack},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"autopilot has no game action", runeKey('a'), core.ActionNone},
		{"screenshot has no game action", tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionNone},
		{"unbound", runeKey('x'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keys.Action(tc.msg); got != tc.expected {
				t.Errorf("Action(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestKeyMapsHaveHelp(t *testing.T) {
	if len(DefaultGameKeyMap().ShortHelp()) == 0 || len(DefaultGameKeyMap().FullHelp()) == 0 {
		t.Error("game key map should provide help")
	}
	if len(DefaultMenuKeyMap().ShortHelp()) == 0 || len(DefaultMenuKeyMap().FullHelp()) == 0 {
		t.Error("menu key map should provide help")
	}
	if len(DefaultScoreboardKeyMap().ShortHelp()) == 0 || len(DefaultScoreboardKeyMap().FullHelp()) == 0 {
		t.Error("scoreboard key map should provide help")
	}
}
