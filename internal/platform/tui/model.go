package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nepaliayush/flappy-bird/internal/config"
	"github.com/nepaliayush/flappy-bird/internal/core"
	"github.com/nepaliayush/flappy-bird/internal/games/flappy"
	"github.com/nepaliayush/flappy-bird/internal/storage"
)

// Options configures the terminal front end.
type Options struct {
	Game          config.FlappyConfig
	Seed          int64  // 0 picks one from the clock
	Player        string // Name stored with saved scores
	Store         *storage.Store
	Logger        *log.Logger
	Width         int
	Height        int
	ScreenshotDir string // Defaults to ~/.flappy/screenshots
	Standalone    bool   // Back quits instead of returning to the menu
}

func (o Options) withDefaults() Options {
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	if o.Player == "" {
		o.Player = storage.DefaultPlayer
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Width <= 0 || o.Height <= 0 {
		def := core.DefaultConfig()
		o.Width, o.Height = def.ScreenW, def.ScreenH
	}
	return o
}

// GameModel is the Bubble Tea model for one play session. It owns the game,
// a screen buffer one row shorter than the terminal, and the help line below.
type GameModel struct {
	id         int
	game       *flappy.Game
	pilot      *flappy.Autopilot
	autopilot  bool
	assisted   bool // Autopilot flew during this round
	screen     *core.Screen
	layout     flappy.Layout
	opts       Options
	logger     *log.Logger
	keys       GameKeyMap
	help       help.Model
	best       int
	scoreSaved bool
	status     string
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model. id tags its tick messages.
func NewGameModel(id int, opts Options) GameModel {
	opts = opts.withDefaults()

	m := GameModel{
		id:     id,
		game:   flappy.New(opts.Game, opts.Seed),
		pilot:  flappy.NewAutopilot(opts.Game),
		screen: core.NewScreen(opts.Width, core.Max(opts.Height-1, 0)),
		opts:   opts,
		logger: opts.Logger.WithPrefix("game"),
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
	}
	m.help.Width = opts.Width
	m.layout = m.game.Render(m.screen)

	if opts.Store != nil {
		best, err := opts.Store.HighScore(flappy.ID)
		if err != nil {
			m.logger.Warn("could not load high score", "error", err)
		}
		m.best = best
	}
	return m
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.logger.Debug("round started", "seed", m.opts.Seed, "player", m.opts.Player)
	return tickCmd(m.id, m.game.Config().Physics.TickInterval)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.ID != m.id {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey applies actions immediately; the physics catches up on the
// next tick.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Autopilot):
		m.autopilot = !m.autopilot
		m.status = ""
		if m.autopilot {
			m.assisted = true
			m.status = "autopilot on, this round is not saved"
		}
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		if m.game.Phase() == flappy.GameOver || m.game.Paused() {
			if m.opts.Standalone {
				m.quitting = true
				return m, tea.Quit
			}
			m.backToMenu = true
		}

	case core.ActionNone:

	default:
		m.apply(action)
	}
	return m, nil
}

// handleMouse maps a left click: on the Play Again button it restarts,
// anywhere else on the playfield it flaps.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	switch {
	case m.game.Phase() == flappy.GameOver && m.layout.Button.Contains(msg.X, msg.Y):
		m.apply(core.ActionRestart)
	case m.layout.Viewport.Contains(msg.X, msg.Y):
		m.apply(core.ActionJump)
	}
	return m, nil
}

func (m *GameModel) apply(a core.Action) {
	if ev := m.game.Act(a); ev == core.EventRestart {
		m.scoreSaved = false
		m.assisted = m.autopilot
		m.status = ""
		m.logger.Debug("round restarted", "round", m.game.Round())
	}
}

// handleResize resizes the screen buffer. The round keeps going: the world
// has fixed dimensions and only its projection changes.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Width, m.opts.Height = msg.Width, msg.Height
	m.screen.Resize(msg.Width, core.Max(msg.Height-1, 0))
	m.help.Width = msg.Width
	m.layout = m.game.Render(m.screen)
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.autopilot && m.game.Phase() == flappy.Running {
		m.pilot.Drive(m.game)
	}

	result := m.game.Tick()
	if result.Has(core.EventGameOver) {
		m.onGameOver(result.State.Score)
	}

	m.layout = m.game.Render(m.screen)
	return m, tickCmd(m.id, m.game.Config().Physics.TickInterval)
}

// onGameOver records the score once per round. Saving is best-effort: a
// storage error is logged and play continues.
func (m *GameModel) onGameOver(score int) {
	m.logger.Info("game over", "player", m.opts.Player, "score", score, "ticks", m.game.Ticks())
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true

	if score > m.best {
		m.best = score
		if !m.assisted {
			m.status = "new high score!"
		}
	}

	if m.opts.Store == nil || score <= 0 || m.assisted {
		return
	}
	_, err := m.opts.Store.SaveScore(storage.ScoreEntry{
		GameID: flappy.ID,
		Player: m.opts.Player,
		Score:  score,
		Ticks:  m.game.Ticks(),
	})
	if err != nil {
		m.logger.Error("could not save score", "error", err)
		m.status = "score not saved"
	}
}

// saveScreenshot writes the current frame as plain text.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.logger.Error("could not resolve home directory", "error", err)
			return
		}
		dir = filepath.Join(home, ".flappy", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Error("could not create screenshot directory", "dir", dir, "error", err)
		m.status = "screenshot failed"
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", flappy.ID, time.Now().Format("20060102_150405.000"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Error("could not save screenshot", "path", path, "error", err)
		m.status = "screenshot failed"
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.status = "saved " + filename
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = accentStyle.Render(m.status) + "  " + footer
	}
	if m.best > 0 {
		footer = dimStyle.Render(fmt.Sprintf("best %d", m.best)) + "  " + footer
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// Game returns the underlying game.
func (m GameModel) Game() *flappy.Game {
	return m.game
}

// Layout returns where the last frame was drawn.
func (m GameModel) Layout() flappy.Layout {
	return m.layout
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// RunGame starts a Bubble Tea program that goes straight into a round.
func RunGame(opts Options) error {
	opts.Standalone = true
	p := tea.NewProgram(
		NewGameModel(1, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
