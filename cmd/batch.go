package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ultistats/go-ufa-metrics/internal/batch"
	"github.com/ultistats/go-ufa-metrics/internal/metrics"
	"github.com/ultistats/go-ufa-metrics/internal/report"
	"github.com/ultistats/go-ufa-metrics/internal/storage"
)

var (
	batchTeams       []string
	batchSeason      string
	batchWorkers     int
	batchMetricsAddr string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Compute efficiency metrics for many teams at once",
	Long: `Fetch all stored events for the given teams in one query, compute each
(team, game) pair on a worker pool, and print the merged per-team report.
The result is identical to running each game individually.`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringSliceVar(&batchTeams, "teams", nil, "comma-separated team ids (required)")
	batchCmd.Flags().StringVar(&batchSeason, "season", "", "restrict to one season")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "worker pool size (default: NumCPU)")
	batchCmd.Flags().StringVar(&batchMetricsAddr, "metrics-addr", "", "serve prometheus /metrics on this address while running")
	batchCmd.MarkFlagRequired("teams")
}

func runBatch(cmd *cobra.Command, args []string) error {
	if batchSeason == "" {
		batchSeason = cfg.Season
	}
	if batchWorkers == 0 {
		batchWorkers = cfg.Workers
	}
	if batchMetricsAddr == "" {
		batchMetricsAddr = cfg.MetricsAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if batchMetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		srv := &http.Server{Addr: batchMetricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server", slog.String("error", err.Error()))
			}
		}()
		defer srv.Close()
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	runner := batch.New(db, batchWorkers, slog.Default())
	res, err := runner.Run(ctx, batchTeams, batchSeason)
	if err != nil {
		return fmt.Errorf("batch run: %w", err)
	}

	if res.Games == 0 {
		fmt.Fprintln(os.Stdout, "No stored games matched the given teams/season.")
		return nil
	}

	report.PrintEfficiencyTable(os.Stdout, sortedTeamRows(res.PerTeam, res.GamesPerTeam))
	fmt.Fprintf(os.Stdout, "\n%d games across %d teams", res.Games, len(res.PerTeam))
	if d := res.Diagnostics; d.UnknownEvents > 0 || d.OrphanEvents > 0 {
		fmt.Fprintf(os.Stdout, " (%d unknown, %d orphan events skipped)", d.UnknownEvents, d.OrphanEvents)
	}
	fmt.Fprintln(os.Stdout)
	return nil
}
