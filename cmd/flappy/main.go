// flappy is Flappy Bird for the terminal.
//
// Usage:
//
//	flappy play              - Title screen, then play
//	flappy play --direct     - Straight into a round
//	flappy scores            - Show high scores
//	flappy serve             - Start SSH server for remote play
//	flappy sim               - Run the autopilot without a terminal
//	flappy config            - Print the effective configuration
//
// Global flags:
//
//	--seed <value>      - Set RNG seed for reproducible courses
//	--db <path>         - Set database path (default: ~/.flappy/scores.db)
//	--config <path>     - Load game constants from a YAML file
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Append logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nepaliayush/flappy-bird/internal/config"
	"github.com/nepaliayush/flappy-bird/internal/storage"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

var (
	gameConfig config.FlappyConfig
	logger     *log.Logger
	logFile    *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird in your terminal",
	Long: `Flappy Bird for the terminal: flap through an endless stream of
pipes. Play locally, host it over SSH, or let the autopilot fly.

Available commands:
  play     - Play (title screen first unless --direct)
  scores   - View, export or clear high scores
  serve    - Start SSH server for remote play
  sim      - Headless run driven by the autopilot
  config   - Print the effective configuration as YAML

Examples:
  flappy play
  flappy play --direct --seed 42
  flappy scores --export scores.csv
  flappy serve --ssh :2222
  flappy sim --ticks 5000`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// setup builds the logger and loads the game configuration before any
// subcommand runs.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var out io.Writer = os.Stderr
	if flagLogFile != "" {
		path, err := storage.ExpandPath(flagLogFile)
		if err != nil {
			return err
		}
		logFile, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		out = logFile
	}

	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
		Level:           level,
	})

	gameConfig, err = config.LoadFlappy(flagConfig)
	if err != nil {
		return err
	}
	logger.Debug("config loaded",
		"path", flagConfig,
		"tick", gameConfig.Physics.TickInterval,
		"timing", gameConfig.Collision.Timing)
	return nil
}

// uiLogger returns a logger that does not write over a full-screen UI:
// the log file when one is set, otherwise nothing.
func uiLogger() *log.Logger {
	if logFile != nil {
		return logger
	}
	quiet := log.New(io.Discard)
	quiet.SetLevel(log.FatalLevel)
	return quiet
}

// openStore opens the score database. A failure is logged and play goes on
// without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
