package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nepaliayush/flappy-bird/internal/games/flappy"
	"github.com/nepaliayush/flappy-bird/internal/storage"
)

// MenuChoice is what the player picked on the title screen.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceQuit
)

// MenuItem is one selectable line of the title screen.
type MenuItem struct {
	Title  string
	Choice MenuChoice
}

var menuItems = []MenuItem{
	{Title: "Play", Choice: ChoicePlay},
	{Title: "High Scores", Choice: ChoiceScores},
	{Title: "Quit", Choice: ChoiceQuit},
}

var logo = []string{
	`  ___ _                        ___ _        _ `,
	` | __| |__ _ _ __ _ __ _  _   | _ |_)_ _ __| |`,
	` | _|| / _' | '_ \ '_ \ || |  | _ \ | '_/ _' |`,
	` |_| |_\__,_| .__/ .__/\_, |  |___/_|_| \__,_|`,
	`            |_|  |_|   |__/                   `,
}

// MenuModel is the Bubble Tea model for the title screen.
type MenuModel struct {
	cursor int
	width  int
	height int
	player string
	best   int
	mine   int // The player's own best
	keys   MenuKeyMap
	help   help.Model
	choice MenuChoice
}

// NewMenuModel creates a title screen. The best score is read from store
// when one is given.
func NewMenuModel(store *storage.Store, player string, width, height int) MenuModel {
	m := MenuModel{
		width:  width,
		height: height,
		player: player,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
	m.help.Width = width

	if store != nil {
		if best, err := store.HighScore(flappy.ID); err == nil {
			m.best = best
		}
		if player != "" {
			if mine, err := store.PlayerBest(flappy.ID, player); err == nil {
				m.mine = mine
			}
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.choice = ChoiceQuit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		m.choice = menuItems[m.cursor].Choice

	case key.Matches(msg, m.keys.Scores):
		m.choice = ChoiceScores
	}

	if m.choice == ChoiceQuit {
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice == ChoiceQuit {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	if m.width >= len(logo[0]) {
		for _, line := range logo {
			b.WriteString(titleStyle.Render(centerText(line, m.width)))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(titleStyle.Render(centerText(flappy.Title, m.width)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.best > 0 {
		b.WriteString(dimStyle.Render(centerText(fmt.Sprintf("High score: %d", m.best), m.width)))
		b.WriteString("\n")
	}
	if m.player != "" {
		line := "Playing as " + m.player
		if m.mine > 0 {
			line += fmt.Sprintf(" (best %d)", m.mine)
		}
		b.WriteString(dimStyle.Render(centerText(line, m.width)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range menuItems {
		line := "  " + item.Title + "  "
		if i == m.cursor {
			line = accentStyle.Render("> " + item.Title + " <")
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns what was picked, or ChoiceNone.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Cursor returns the highlighted item index.
func (m MenuModel) Cursor() int {
	return m.cursor
}

// Best returns the high score shown on the title screen.
func (m MenuModel) Best() int {
	return m.best
}

// PlayerBest returns the current player's own best score.
func (m MenuModel) PlayerBest() int {
	return m.mine
}
