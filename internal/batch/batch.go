// Package batch runs the possession engine across many (team, game) pairs,
// fetching all events in one query and fanning the pure per-game computation
// out across a bounded worker pool. Because each game's computation is
// side-effect-free and the report merge is associative, the parallel result
// is identical to the sequential per-game fold.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/ultistats/go-ufa-metrics/internal/aggregator"
	"github.com/ultistats/go-ufa-metrics/internal/metrics"
	"github.com/ultistats/go-ufa-metrics/internal/model"
	"github.com/ultistats/go-ufa-metrics/internal/possession"
)

// GameKey identifies one recording team's stream within one game.
type GameKey struct {
	TeamID string
	GameID string
}

// EventSource supplies event streams grouped by (team, game). The storage
// layer implements this with a single SQL query; tests use an in-memory map.
type EventSource interface {
	FetchEvents(ctx context.Context, teams []string, season string) (map[GameKey][]model.Event, error)
}

// Result is the merged outcome of a batch run.
type Result struct {
	// Combined merges every per-game report in the batch.
	Combined model.EfficiencyReport
	// PerTeam merges per-game reports under each recording team.
	PerTeam map[string]model.EfficiencyReport
	// GamesPerTeam counts the (team, game) units folded into each entry.
	GamesPerTeam map[string]int
	Games        int
	Diagnostics  possession.Diagnostics
}

// Runner fans per-game computations out over a worker pool.
type Runner struct {
	src     EventSource
	workers int
	logger  *slog.Logger
}

// New creates a Runner. workers <= 0 defaults to runtime.NumCPU; a nil logger
// defaults to slog.Default().
func New(src EventSource, workers int, logger *slog.Logger) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{src: src, workers: workers, logger: logger}
}

// Run fetches all events for the given teams (optionally filtered by season)
// and computes the merged efficiency report. Cancellation is honored between
// (team, game) units: in-flight games finish, queued games are abandoned.
func (r *Runner) Run(ctx context.Context, teams []string, season string) (*Result, error) {
	grouped, err := r.src.FetchEvents(ctx, teams, season)
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}

	type gameOutcome struct {
		key GameKey
		res aggregator.GameResult
	}

	jobs := make(chan GameKey)
	outcomes := make(chan gameOutcome)

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for key := range jobs {
				outcomes <- gameOutcome{key: key, res: aggregator.ComputeGame(grouped[key])}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for key := range grouped {
			select {
			case jobs <- key:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	out := &Result{
		PerTeam:      make(map[string]model.EfficiencyReport),
		GamesPerTeam: make(map[string]int),
	}
	for oc := range outcomes {
		out.Games++
		out.Combined.Merge(oc.res.Report)
		tr := out.PerTeam[oc.key.TeamID]
		tr.Merge(oc.res.Report)
		out.PerTeam[oc.key.TeamID] = tr
		out.GamesPerTeam[oc.key.TeamID]++
		out.Diagnostics.Merge(oc.res.Diagnostics)

		metrics.GamesProcessed.Inc()
		if d := oc.res.Diagnostics; d.UnknownEvents > 0 || d.OrphanEvents > 0 {
			metrics.UnknownEvents.Add(float64(d.UnknownEvents))
			metrics.OrphanEvents.Add(float64(d.OrphanEvents))
			r.logger.Warn("event stream has gaps",
				slog.String("team", oc.key.TeamID),
				slog.String("game", oc.key.GameID),
				slog.Int("unknown_events", d.UnknownEvents),
				slog.Int("orphan_events", d.OrphanEvents),
			)
		}
	}

	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}
