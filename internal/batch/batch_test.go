package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/ultistats/go-ufa-metrics/internal/aggregator"
	"github.com/ultistats/go-ufa-metrics/internal/model"
)

// fakeSource serves pre-grouped streams, filtering by the requested teams.
type fakeSource struct {
	streams map[GameKey][]model.Event
	err     error
}

func (f *fakeSource) FetchEvents(_ context.Context, teams []string, _ string) (map[GameKey][]model.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	want := make(map[string]bool, len(teams))
	for _, t := range teams {
		want[t] = true
	}
	out := make(map[GameKey][]model.Event)
	for key, evs := range f.streams {
		if want[key.TeamID] {
			out[key] = evs
		}
	}
	return out, nil
}

func kind(k model.EventKind) model.Event {
	return model.Event{Kind: k}
}

func pass(receiverY float64) model.Event {
	return model.Event{Kind: model.KindPass, ReceiverY: model.Float64(receiverY)}
}

func goal(throwerY float64) model.Event {
	return model.Event{Kind: model.KindGoal, ThrowerY: model.Float64(throwerY)}
}

// testStreams builds several distinct game streams across three teams.
func testStreams() map[GameKey][]model.Event {
	oHold := []model.Event{kind(model.KindStartOPoint), pass(50), goal(95)}
	dBreak := []model.Event{
		kind(model.KindStartDPoint), kind(model.KindBlock), pass(85), goal(90),
		kind(model.KindGameOver),
	}
	mixed := []model.Event{
		kind(model.KindStartOPoint), kind(model.KindThrowaway), kind(model.KindOpponentScore),
		kind(model.KindStartDPoint), kind(model.KindThrowawayCaused), pass(82), goal(99),
		kind(model.KindGameOver),
	}

	return map[GameKey][]model.Event{
		{TeamID: "shred", GameID: "g1"}:   oHold,
		{TeamID: "shred", GameID: "g2"}:   dBreak,
		{TeamID: "legion", GameID: "g1"}:  mixed,
		{TeamID: "legion", GameID: "g3"}:  oHold,
		{TeamID: "glory", GameID: "g4"}:   mixed,
		{TeamID: "ignored", GameID: "g5"}: dBreak, // not in the requested team set
	}
}

// TestBatchMatchesSequential: the worker-pool result must be identical to the
// naive per-game loop, regardless of scheduling order.
func TestBatchMatchesSequential(t *testing.T) {
	src := &fakeSource{streams: testStreams()}
	teams := []string{"shred", "legion", "glory"}

	// Sequential reference fold.
	grouped, _ := src.FetchEvents(context.Background(), teams, "")
	var wantCombined model.EfficiencyReport
	wantPerTeam := make(map[string]model.EfficiencyReport)
	for key, evs := range grouped {
		rep := aggregator.ComputeGame(evs).Report
		wantCombined.Merge(rep)
		tr := wantPerTeam[key.TeamID]
		tr.Merge(rep)
		wantPerTeam[key.TeamID] = tr
	}

	// Run the pool a few times to shake out ordering effects.
	for i := 0; i < 5; i++ {
		runner := New(src, 4, nil)
		res, err := runner.Run(context.Background(), teams, "")
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if res.Games != len(grouped) {
			t.Fatalf("Games: want %d, got %d", len(grouped), res.Games)
		}
		if res.Combined != wantCombined {
			t.Errorf("combined mismatch:\nwant %+v\ngot  %+v", wantCombined, res.Combined)
		}
		for team, want := range wantPerTeam {
			if got := res.PerTeam[team]; got != want {
				t.Errorf("team %s mismatch:\nwant %+v\ngot  %+v", team, want, got)
			}
		}
		if _, ok := res.PerTeam["ignored"]; ok {
			t.Error("team outside the requested set must not appear")
		}
	}
}

// TestBatchSingleWorker: a pool of one is just the sequential loop.
func TestBatchSingleWorker(t *testing.T) {
	src := &fakeSource{streams: testStreams()}

	parallel, err := New(src, 8, nil).Run(context.Background(), []string{"shred", "legion"}, "")
	if err != nil {
		t.Fatalf("Run (8 workers): %v", err)
	}
	serial, err := New(src, 1, nil).Run(context.Background(), []string{"shred", "legion"}, "")
	if err != nil {
		t.Fatalf("Run (1 worker): %v", err)
	}

	if parallel.Combined != serial.Combined {
		t.Errorf("worker count changed the result:\n8: %+v\n1: %+v", parallel.Combined, serial.Combined)
	}
}

func TestBatchEmptySource(t *testing.T) {
	src := &fakeSource{streams: map[GameKey][]model.Event{}}

	res, err := New(src, 2, nil).Run(context.Background(), []string{"shred"}, "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Games != 0 {
		t.Errorf("Games: want 0, got %d", res.Games)
	}
	if res.Combined != (model.EfficiencyReport{}) {
		t.Errorf("combined report should be zero, got %+v", res.Combined)
	}
}

func TestBatchFetchError(t *testing.T) {
	wantErr := errors.New("db gone")
	src := &fakeSource{err: wantErr}

	_, err := New(src, 2, nil).Run(context.Background(), []string{"shred"}, "")
	if !errors.Is(err, wantErr) {
		t.Errorf("expected fetch error to propagate, got %v", err)
	}
}

func TestBatchCancellation(t *testing.T) {
	src := &fakeSource{streams: testStreams()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(src, 2, nil).Run(ctx, []string{"shred", "legion", "glory"}, "")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

// TestBatchDiagnosticsMerged: stream gaps are merged into the batch result.
func TestBatchDiagnosticsMerged(t *testing.T) {
	src := &fakeSource{streams: map[GameKey][]model.Event{
		{TeamID: "shred", GameID: "g1"}: {
			kind(model.KindStartOPoint),
			{Kind: model.EventKind(99)},
			goal(90),
		},
	}}

	res, err := New(src, 2, nil).Run(context.Background(), []string{"shred"}, "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Diagnostics.UnknownEvents != 1 {
		t.Errorf("UnknownEvents: want 1, got %d", res.Diagnostics.UnknownEvents)
	}
}
