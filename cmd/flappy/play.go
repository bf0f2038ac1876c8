package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nepaliayush/flappy-bird/internal/platform/tui"
)

var (
	flagDirect bool
	flagPlayer string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Flappy Bird",
	Long: `Start the game in the terminal.

Controls:
  Space/Up/W/click   - Flap
  P                  - Pause
  R/Enter/click      - Play again (after game over)
  A                  - Toggle autopilot (scores are not saved)
  Ctrl+S             - Save a screenshot to ~/.flappy/screenshots
  Esc/B              - Back to the title screen (paused or game over)
  Q/Ctrl+C           - Quit

Examples:
  flappy play
  flappy play --direct
  flappy play --seed 42 --player ann
  flappy play --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagDirect, "direct", false, "Skip the title screen")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name stored with your scores (default: your user name)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	opts := tui.Options{
		Game:   gameConfig,
		Seed:   flagSeed,
		Player: playerName(),
		Store:  store,
		Logger: uiLogger(),
		Width:  width,
		Height: height,
	}

	var err error
	if flagDirect {
		err = tui.RunGame(opts)
	} else {
		err = tui.RunApp(opts)
	}
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return ""
}
