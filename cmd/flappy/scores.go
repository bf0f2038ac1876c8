package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nepaliayush/flappy-bird/internal/games/flappy"
	"github.com/nepaliayush/flappy-bird/internal/storage"
)

var (
	flagLimit  int
	flagExport string
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores.

Examples:
  flappy scores
  flappy scores --limit 25
  flappy scores --export scores.csv
  flappy scores --export -          # CSV to stdout
  flappy scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagExport, "export", "", "Write every score as CSV to this file (- for stdout)")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		n, err := store.ClearScores(flappy.ID)
		if err != nil {
			return err
		}
		logger.Info("scores cleared", "count", n)
		return nil

	case flagExport != "":
		return exportScores(cmd.OutOrStdout(), store, flagExport)
	}

	return printScores(cmd.OutOrStdout(), store, flagLimit)
}

func exportScores(stdout io.Writer, store *storage.Store, path string) (err error) {
	w := stdout
	if path != "-" {
		f, cerr := os.Create(path)
		if cerr != nil {
			return fmt.Errorf("creating %s: %w", path, cerr)
		}
		defer func() {
			err = errors.Join(err, f.Close())
		}()
		w = f
	}

	n, err := store.ExportCSV(w, flappy.ID)
	if err != nil {
		return err
	}
	if path != "-" {
		logger.Info("scores exported", "path", path, "count", n)
	}
	return nil
}

func printScores(w io.Writer, store *storage.Store, limit int) error {
	scores, err := store.TopScores(flappy.ID, limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\n  High Scores - %s\n\n", flappy.Title)

	if len(scores) == 0 {
		fmt.Fprintln(w, "  No scores recorded yet.")
		fmt.Fprintln(w, "  Run 'flappy play' to set a high score!")
		fmt.Fprintln(w)
		return nil
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Rank", "Player", "Score", "Date").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for i, s := range scores {
		t.Row(
			fmt.Sprintf("#%d", i+1),
			s.Player,
			strconv.Itoa(s.Score),
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	fmt.Fprintln(w, t.Render())

	stats, err := store.Stats(flappy.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n  %d games played, average %.1f\n\n", stats.GamesCount, stats.AvgScore)
	return nil
}
