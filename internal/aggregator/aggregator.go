// Package aggregator folds points and possessions into efficiency counters.
package aggregator

import (
	"github.com/ultistats/go-ufa-metrics/internal/model"
	"github.com/ultistats/go-ufa-metrics/internal/possession"
)

// Aggregate is a pure fold over one game's points and possessions. The
// resulting counters merge commutatively and associatively across games via
// EfficiencyReport.Merge, so per-game partials can be combined in any order.
func Aggregate(points []model.Point, possessions []model.Possession) model.EfficiencyReport {
	var r model.EfficiencyReport

	for _, p := range points {
		if p.ReceivingTeam == model.SideTeam {
			r.OLinePoints++
			if p.ScoringTeam == model.SideTeam {
				r.OLineScores++
			}
			r.OLinePossessions += p.TeamPossessions
		}
		if p.PullingTeam == model.SideTeam {
			r.DLinePoints++
			if p.ScoringTeam == model.SideTeam {
				r.DLineScores++
			}
			r.DLinePossessions += p.TeamPossessions
		}
	}

	for _, ps := range possessions {
		if ps.ReachedRedzone {
			r.RedzonePossessions++
			if ps.Scored {
				r.RedzoneScores++
			}
		}
	}
	return r
}

// GameResult is everything the engine derives from one (team, game) stream.
// Points and Possessions are kept for callers that want per-point detail
// (e.g. a play-by-play narrator); the report is what batch consumers merge.
type GameResult struct {
	Report      model.EfficiencyReport
	Points      []model.Point
	Possessions []model.Possession
	Diagnostics possession.Diagnostics
}

// ComputeGame runs both builders over one game's event stream and aggregates
// the result. An empty stream yields empty lists and a zero report.
func ComputeGame(events []model.Event) GameResult {
	points, pd := possession.BuildPoints(events)
	possessions, sd := possession.BuildPossessions(events)

	// Both builders scan the same stream, so they see the same unknown codes;
	// counting them once keeps the counter meaningful. Orphans differ per
	// builder (different notions of "open context") and are summed.
	diags := possession.Diagnostics{
		UnknownEvents: pd.UnknownEvents,
		OrphanEvents:  pd.OrphanEvents + sd.OrphanEvents,
	}

	return GameResult{
		Report:      Aggregate(points, possessions),
		Points:      points,
		Possessions: possessions,
		Diagnostics: diags,
	}
}
