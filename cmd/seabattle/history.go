package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/seabattle/internal/storage"
)

var (
	flagHistoryPlayer string
	flagHistoryLimit  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded matches",
	Long: `Display the most recent finished battles, newest first.
With --player only that player's games are listed, followed by their stats.

Examples:
  seabattle history
  seabattle history --player alice --limit 5`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryPlayer, "player", "", "Only show this player's matches")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of matches to show")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening match history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var matches []storage.MatchRecord
	if flagHistoryPlayer != "" {
		matches, err = store.PlayerMatches(flagHistoryPlayer, flagHistoryLimit)
	} else {
		matches, err = store.RecentMatches(flagHistoryLimit)
	}
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving matches: %v\n", err)
		os.Exit(1)
	}

	if flagHistoryPlayer != "" {
		fmt.Printf("Match History - %s\n", flagHistoryPlayer)
	} else {
		fmt.Println("Match History")
	}
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No battles recorded yet.")
		fmt.Println()
		fmt.Println("Run 'seabattle play' to fight the first one!")
		return
	}

	fmt.Printf("  %-16s  %-12s  %-12s  %-12s  %-6s  %-5s  %s\n",
		"Date", "Player", "Opponent", "Winner", "Score", "Shots", "Time")
	fmt.Printf("  %-16s  %-12s  %-12s  %-12s  %-6s  %-5s  %s\n",
		"----", "------", "--------", "------", "-----", "-----", "----")
	for _, m := range matches {
		fmt.Printf("  %-16s  %-12s  %-12s  %-12s  %-6s  %-5d  %d:%02d\n",
			m.CreatedAt.Local().Format("2006-01-02 15:04"),
			m.PlayerName,
			m.OpponentName,
			m.WinnerName(),
			fmt.Sprintf("%d:%d", m.PlayerHits, m.OpponentHits),
			m.PlayerShots,
			m.Duration/60, m.Duration%60,
		)
	}

	if flagHistoryPlayer == "" {
		return
	}
	stats, err := store.PlayerStats(flagHistoryPlayer)
	if err == nil {
		fmt.Println()
		fmt.Printf("Games: %d  Won: %d  Lost: %d  Accuracy: %.0f%%\n",
			stats.Games, stats.Wins, stats.Losses, stats.Accuracy()*100)
	}
}
