// Package possession converts an ordered play-by-play event stream for one
// recording team into structured points and possessions. The two builders are
// independent scans over the same stream and share no state; callers may run
// them in either order or concurrently.
package possession

import "github.com/ultistats/go-ufa-metrics/internal/model"

// Diagnostics counts events the builders could not act on. Neither case is
// fatal: real recorded streams have occasional gaps, and an under-counted
// report beats aborting a whole batch over one bad game.
type Diagnostics struct {
	// UnknownEvents counts codes outside the feed taxonomy (treated as no-ops).
	UnknownEvents int
	// OrphanEvents counts possession-changing or scoring events that arrived
	// with no open point/possession context (skipped).
	OrphanEvents int
}

// Merge adds another Diagnostics into d.
func (d *Diagnostics) Merge(o Diagnostics) {
	d.UnknownEvents += o.UnknownEvents
	d.OrphanEvents += o.OrphanEvents
}

// BuildPoints groups the event stream into points: one per inter-pull
// interval. A point opens on a pull-start event and is finalized when the
// next pull-start or a stream-terminal event arrives, so its end is only
// knowable retrospectively. An open point at stream exhaustion is finalized
// with no scoring team rather than dropped; the same holds for a point with
// no action at all (a pull immediately followed by a quarter boundary).
func BuildPoints(events []model.Event) ([]model.Point, Diagnostics) {
	var (
		points  []model.Point
		current *model.Point
		holder  model.Side
		diags   Diagnostics
	)

	for _, ev := range events {
		switch {
		case ev.Kind.IsPullStart():
			if current != nil {
				points = append(points, *current)
			}
			if ev.Kind == model.KindStartDPoint {
				// Recording team pulls; the opponent receives and opens on offense.
				current = &model.Point{
					PullingTeam:         model.SideTeam,
					ReceivingTeam:       model.SideOpponent,
					OpponentPossessions: 1,
				}
				holder = model.SideOpponent
			} else {
				current = &model.Point{
					PullingTeam:     model.SideOpponent,
					ReceivingTeam:   model.SideTeam,
					TeamPossessions: 1,
				}
				holder = model.SideTeam
			}

		case ev.Kind.IsTerminal():
			if current != nil {
				points = append(points, *current)
				current = nil
			}

		case ev.Kind == model.KindGoal:
			if current == nil {
				diags.OrphanEvents++
				continue
			}
			current.ScoringTeam = model.SideTeam

		case ev.Kind == model.KindOpponentScore:
			if current == nil {
				diags.OrphanEvents++
				continue
			}
			current.ScoringTeam = model.SideOpponent

		case ev.Kind.GainsDisc() || ev.Kind.LosesDisc():
			if current == nil {
				diags.OrphanEvents++
				continue
			}
			newHolder := model.SideOpponent
			if ev.Kind.GainsDisc() {
				newHolder = model.SideTeam
			}
			if newHolder != holder {
				if newHolder == model.SideTeam {
					current.TeamPossessions++
				} else {
					current.OpponentPossessions++
				}
				holder = newHolder
			}

		case ev.Kind == model.KindPass, ev.Kind == model.KindTimeout:
			// No possession effect at point granularity.

		default:
			diags.UnknownEvents++
		}
	}

	// Streams that end without a terminal marker still owe their last point.
	if current != nil {
		points = append(points, *current)
	}
	return points, diags
}
