package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type appScreen int

const (
	screenMenu appScreen = iota
	screenGame
	screenScores
)

// AppModel manages the full session flow: menu -> game or scoreboard -> menu.
// It is the top-level model for both local and SSH play.
type AppModel struct {
	opts     Options
	screen   appScreen
	menu     MenuModel
	game     *GameModel
	board    *ScoreboardModel
	games    int // Game models started, used as tick IDs
	quitting bool
}

// NewAppModel creates the session model, starting on the title screen.
func NewAppModel(opts Options) AppModel {
	opts = opts.withDefaults()
	return AppModel{
		opts: opts,
		menu: NewMenuModel(opts.Store, opts.Player, opts.Width, opts.Height),
	}
}

// Init initializes the session.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Width = wsm.Width
		m.opts.Height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates on the title screen.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch m.menu.Choice() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoicePlay:
		m.games++
		opts := m.opts
		// Each game in a session gets its own course.
		opts.Seed = m.opts.Seed + int64(m.games-1)
		gameModel := NewGameModel(m.games, opts)
		m.game = &gameModel
		m.screen = screenGame
		return m, m.game.Init()

	case ChoiceScores:
		board := NewScoreboardModel(m.opts.Store, m.opts.Width, m.opts.Height)
		m.board = &board
		m.screen = screenScores
		return m, m.board.Init()
	}

	return m, cmd
}

// updateGame handles updates while a round is on screen.
func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.backToMenu()
		return m, nil
	}

	return m, cmd
}

// updateScores handles updates on the scoreboard.
func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.board.Update(msg)
	if board, ok := newModel.(ScoreboardModel); ok {
		m.board = &board
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.board.IsGoingBack() {
		m.backToMenu()
		return m, nil
	}

	return m, cmd
}

func (m *AppModel) backToMenu() {
	m.game = nil
	m.board = nil
	m.screen = screenMenu
	// Rebuilt so the high score reflects the round just played.
	m.menu = NewMenuModel(m.opts.Store, m.opts.Player, m.opts.Width, m.opts.Height)
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.board.View()
	default:
		return m.menu.View()
	}
}

// RunApp starts a Bubble Tea program with the title screen.
func RunApp(opts Options) error {
	p := tea.NewProgram(
		NewAppModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
