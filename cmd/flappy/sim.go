package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nepaliayush/flappy-bird/internal/games/flappy"
	"github.com/nepaliayush/flappy-bird/internal/platform/headless"
	"github.com/nepaliayush/flappy-bird/internal/storage"
)

var (
	flagTicks    uint64
	flagRounds   int
	flagRealtime bool
	flagNoPilot  bool
	flagSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the game headless with the autopilot",
	Long: `Run rounds without a terminal UI. The autopilot flaps whenever the
bird is about to sink below the next gap; rounds restart automatically.

By default ticks run as fast as possible; --realtime paces them at the
configured tick interval. Ctrl+C stops the run and prints the summary.

Examples:
  flappy sim
  flappy sim --ticks 100000 --seed 7
  flappy sim --no-pilot --rounds 3
  flappy sim --realtime --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().Uint64Var(&flagTicks, "ticks", 3000, "Stop after this many ticks (0 = no limit)")
	simCmd.Flags().IntVar(&flagRounds, "rounds", 0, "Stop after this many finished rounds (0 = no limit)")
	simCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace ticks at the configured interval")
	simCmd.Flags().BoolVar(&flagNoPilot, "no-pilot", false, "Let the bird fall without input")
	simCmd.Flags().BoolVar(&flagSave, "save", false, "Store finished rounds in the scores database")
}

func runSim(cmd *cobra.Command, _ []string) error {
	if flagTicks == 0 && flagRounds == 0 && flagNoPilot {
		// Without a pilot every round ends; still needs a bound.
		flagRounds = 1
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var store *storage.Store
	if flagSave {
		store = openStore()
		if store != nil {
			defer store.Close()
		}
	}

	game := flappy.New(gameConfig, seed)
	opts := headless.Options{
		MaxTicks:    flagTicks,
		Rounds:      flagRounds,
		Realtime:    flagRealtime,
		AutoRestart: true,
		Logger:      logger,
		OnGameOver: func(rr headless.RoundResult) {
			if store == nil || rr.Score <= 0 {
				return
			}
			_, err := store.SaveScore(storage.ScoreEntry{
				GameID: flappy.ID,
				Player: "autopilot",
				Score:  rr.Score,
				Ticks:  rr.Ticks,
			})
			if err != nil {
				logger.Error("could not save score", "error", err)
			}
		},
	}
	if !flagNoPilot {
		opts.Pilot = flappy.NewAutopilot(gameConfig)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("simulation started",
		"seed", seed,
		"ticks", flagTicks,
		"rounds", flagRounds,
		"tick_rate", gameConfig.TickRate())
	start := time.Now()

	res, err := headless.NewRunner(game, opts).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "seed:      %d\n", seed)
	fmt.Fprintf(out, "ticks:     %d (%s)\n", res.Ticks, time.Since(start).Round(time.Millisecond))
	if rate := gameConfig.TickRate(); rate > 0 {
		fmt.Fprintf(out, "game time: %.1fs at %d ticks/s\n", float64(res.Ticks)/float64(rate), rate)
	}
	fmt.Fprintf(out, "stopped:   %s\n", res.Reason)
	fmt.Fprintf(out, "rounds:    %d finished\n", len(res.Rounds))
	for _, rr := range res.Rounds {
		fmt.Fprintf(out, "  round %d: score %d\n", rr.Round, rr.Score)
	}
	if game.Phase() == flappy.Running {
		fmt.Fprintf(out, "current:   score %d in round %d\n", game.Score(), game.Round())
	}
	fmt.Fprintf(out, "best:      %d\n", max(res.Best(), game.Score()))
	return nil
}
