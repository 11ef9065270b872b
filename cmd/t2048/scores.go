package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top scores for a mode, or a summary of every mode when none
is given.

Examples:
  t2048 scores
  t2048 scores classic
  t2048 scores 2048_endless --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

func runScores(_ *cobra.Command, args []string) error {
	a, err := loadApp("t2048")
	if err != nil {
		return err
	}

	store, err := storage.Open(a.cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer closeStore(store)

	if len(args) == 0 {
		return printSummary(store)
	}

	gameID, err := game.ResolveID(args[0])
	if err != nil {
		return fmt.Errorf("%w (run 't2048 list' to see available modes)", err)
	}
	g, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", g.Title())
	if len(scores) == 0 {
		fmt.Printf("No scores recorded yet. Play 't2048 play %s' to set the first one.\n", gameID)
		return nil
	}

	rows := make([][]string, len(scores))
	for i, e := range scores {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(e.Score),
			strconv.Itoa(e.MaxTile),
			e.CreatedAt.Format("2006-01-02 15:04"),
		}
	}
	printTable([]string{"#", "Score", "Max Tile", "Played"}, rows)

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Games: %d  Best: %d  Best tile: %d  Average: %.0f\n",
			stats.GamesCount, stats.HighScore, stats.BestTile, stats.AvgScore)
	}
	return nil
}

// printSummary shows one row per mode, including modes never played.
func printSummary(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	var rows [][]string
	for _, info := range registry.List() {
		stats, ok := all[info.ID]
		if !ok {
			rows = append(rows, []string{info.Title, "0", "-", "-", "-"})
			continue
		}
		rows = append(rows, []string{
			info.Title,
			strconv.Itoa(stats.GamesCount),
			strconv.Itoa(stats.HighScore),
			strconv.Itoa(stats.BestTile),
			stats.LastPlayed.Format("2006-01-02 15:04"),
		})
	}
	fmt.Println("High Scores")
	printTable([]string{"Mode", "Games", "Best", "Best Tile", "Last Played"}, rows)
	return nil
}
