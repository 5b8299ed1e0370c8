package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ultistats/go-ufa-metrics/internal/aggregator"
	"github.com/ultistats/go-ufa-metrics/internal/model"
	"github.com/ultistats/go-ufa-metrics/internal/report"
	"github.com/ultistats/go-ufa-metrics/internal/storage"
)

var (
	effTeam   string
	effGame   string
	effSeason string
)

var efficiencyCmd = &cobra.Command{
	Use:   "efficiency",
	Short: "Compute efficiency metrics for one team",
	Long: `Compute hold %, O/D conversion %, break %, and red-zone conversion %
for a team, across all its stored games or for a single game.`,
	Args: cobra.NoArgs,
	RunE: runEfficiency,
}

func init() {
	efficiencyCmd.Flags().StringVar(&effTeam, "team", "", "recording team id (required)")
	efficiencyCmd.Flags().StringVar(&effGame, "game", "", "restrict to one game id")
	efficiencyCmd.Flags().StringVar(&effSeason, "season", "", "restrict to one season")
	efficiencyCmd.MarkFlagRequired("team")
}

func runEfficiency(cmd *cobra.Command, args []string) error {
	if effSeason == "" {
		effSeason = cfg.Season
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if effGame != "" {
		events, err := db.FetchGameEvents(effTeam, effGame)
		if err != nil {
			return fmt.Errorf("fetch events: %w", err)
		}
		res := aggregator.ComputeGame(events)
		warnDiagnostics(effTeam, effGame, res)
		report.PrintEfficiencyTable(os.Stdout, []report.TeamRow{
			{TeamID: effTeam, Games: 1, Report: res.Report},
		})
		report.PrintReportCounters(os.Stdout, res.Report)
		return nil
	}

	// Sequential per-game path: one query, then fold game by game.
	grouped, err := db.FetchEvents(context.Background(), []string{effTeam}, effSeason)
	if err != nil {
		return fmt.Errorf("fetch events: %w", err)
	}

	var merged model.EfficiencyReport
	games := 0
	for key, events := range grouped {
		res := aggregator.ComputeGame(events)
		warnDiagnostics(key.TeamID, key.GameID, res)
		merged.Merge(res.Report)
		games++
	}

	report.PrintEfficiencyTable(os.Stdout, []report.TeamRow{
		{TeamID: effTeam, Games: games, Report: merged},
	})
	report.PrintReportCounters(os.Stdout, merged)
	return nil
}

func warnDiagnostics(teamID, gameID string, res aggregator.GameResult) {
	if d := res.Diagnostics; d.UnknownEvents > 0 || d.OrphanEvents > 0 {
		slog.Warn("event stream has gaps",
			slog.String("team", teamID),
			slog.String("game", gameID),
			slog.Int("unknown_events", d.UnknownEvents),
			slog.Int("orphan_events", d.OrphanEvents),
		)
	}
}

func sortedTeamRows(perTeam map[string]model.EfficiencyReport, gamesPerTeam map[string]int) []report.TeamRow {
	rows := make([]report.TeamRow, 0, len(perTeam))
	for team, rep := range perTeam {
		rows = append(rows, report.TeamRow{TeamID: team, Games: gamesPerTeam[team], Report: rep})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].TeamID < rows[j].TeamID })
	return rows
}
