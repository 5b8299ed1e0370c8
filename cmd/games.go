package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ultistats/go-ufa-metrics/internal/storage"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List all stored games",
	Args:  cobra.NoArgs,
	RunE:  runGames,
}

func runGames(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := db.ListGames()
	if err != nil {
		return fmt.Errorf("list games: %w", err)
	}
	if len(games) == 0 {
		fmt.Fprintln(os.Stdout, "No games stored yet. Run 'ufametrics import <game.json>' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-24s  %-12s  %-12s  %-6s  %s\n",
		"GAME", "TEAM", "OPPONENT", "SEASON", "DATE")
	fmt.Fprintf(os.Stdout, "%-24s  %-12s  %-12s  %-6s  %s\n",
		"────────────────────────", "────────────", "────────────", "──────", "──────────")
	for _, g := range games {
		fmt.Fprintf(os.Stdout, "%-24s  %-12s  %-12s  %-6s  %s\n",
			g.GameID, g.TeamID, g.OpponentID, g.Season, g.StartDate)
	}
	return nil
}
