package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ultistats/go-ufa-metrics/internal/aggregator"
	"github.com/ultistats/go-ufa-metrics/internal/report"
	"github.com/ultistats/go-ufa-metrics/internal/storage"
)

var (
	pointsTeam string
	pointsGame string
)

var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Show the per-point log for one game",
	Args:  cobra.NoArgs,
	RunE:  runPoints,
}

func init() {
	pointsCmd.Flags().StringVar(&pointsTeam, "team", "", "recording team id (required)")
	pointsCmd.Flags().StringVar(&pointsGame, "game", "", "game id (required)")
	pointsCmd.MarkFlagRequired("team")
	pointsCmd.MarkFlagRequired("game")
}

func runPoints(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	events, err := db.FetchGameEvents(pointsTeam, pointsGame)
	if err != nil {
		return fmt.Errorf("fetch events: %w", err)
	}
	if len(events) == 0 {
		fmt.Fprintf(os.Stdout, "No events stored for team %s in game %s.\n", pointsTeam, pointsGame)
		return nil
	}

	res := aggregator.ComputeGame(events)
	warnDiagnostics(pointsTeam, pointsGame, res)
	report.PrintPointLog(os.Stdout, res.Points)
	fmt.Fprintf(os.Stdout, "\n%d points, %d possessions (%d reached the red zone)\n",
		len(res.Points), len(res.Possessions), res.Report.RedzonePossessions)
	return nil
}
