package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ultistats/go-ufa-metrics/internal/aggregator"
	"github.com/ultistats/go-ufa-metrics/internal/importer"
	"github.com/ultistats/go-ufa-metrics/internal/report"
	"github.com/ultistats/go-ufa-metrics/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import <game.json>...",
	Short: "Import game-event export files and store them",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	for _, path := range args {
		gf, err := importer.ReadFile(path)
		if err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}

		if err := db.InsertGame(gf.Summary); err != nil {
			return fmt.Errorf("insert game: %w", err)
		}
		if err := db.InsertGameEvents(gf.Summary.GameID, gf.Summary.TeamID, gf.Events); err != nil {
			return fmt.Errorf("insert events: %w", err)
		}

		res := aggregator.ComputeGame(gf.Events)
		if d := res.Diagnostics; d.UnknownEvents > 0 || d.OrphanEvents > 0 {
			slog.Warn("imported stream has gaps",
				slog.String("game", gf.Summary.GameID),
				slog.Int("unknown_events", d.UnknownEvents),
				slog.Int("orphan_events", d.OrphanEvents),
			)
		}

		fmt.Fprintf(os.Stdout, "Imported %s: %s vs %s, %d events, %d points, %d possessions\n",
			gf.Summary.GameID, gf.Summary.TeamID, gf.Summary.OpponentID,
			len(gf.Events), len(res.Points), len(res.Possessions))
		report.PrintEfficiencyTable(os.Stdout, []report.TeamRow{
			{TeamID: gf.Summary.TeamID, Games: 1, Report: res.Report},
		})
	}
	return nil
}
