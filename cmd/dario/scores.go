package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dario/internal/registry"
	"github.com/vovakirdan/tui-dario/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores for a mode",
	Long: `Display the best games of a mode with the level reached and the seed,
so a game can be played again with --seed.

Examples:
  dario scores dario
  dario scores dario_marathon --limit 25
  dario scores dario --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the mode")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]
	game, err := registry.Create(gameID)
	if err != nil {
		exitf("unknown mode %q\nRun 'dario list' to see the game modes.", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening scores database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			exitf("%v", err)
		}
		fmt.Printf("Scores of %s cleared.\n", game.Title())
		return
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		exitf("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'dario play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-9s  %-5s  %-16s  %s\n", "Rank", "Score", "Level", "Date", "Seed")
	fmt.Printf("  %-4s  %-9s  %-5s  %-16s  %s\n", "----", "-----", "-----", "----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-9d  %-5d  %-16s  %s\n", i+1, e.Score, e.Level, e.CreatedAt.Format("2006-01-02 15:04"), e.Seed)
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Games: %d  Best: %d  Best level: %d  Average: %.0f\n",
			stats.GamesCount, stats.HighScore, stats.BestLevel, stats.AvgScore)
	}
}
