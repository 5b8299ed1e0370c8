package possession

import "github.com/ultistats/go-ufa-metrics/internal/model"

// BuildPossessions segments the event stream into spans of continuous disc
// control by the recording team. A possession opens on an O-point start, a
// block, an opponent turnover, or retroactively on a pass observed while not
// already in possession (streams whose first "gained the disc" marker is
// itself a completion). It closes on a turnover, a goal by either side, a
// D-point start, or stream end.
func BuildPossessions(events []model.Event) ([]model.Possession, Diagnostics) {
	var (
		out          []model.Possession
		current      *model.Possession
		inPossession bool
		diags        Diagnostics
	)

	open := func() {
		if current != nil {
			out = append(out, *current)
		}
		current = &model.Possession{}
		inPossession = true
	}
	closeOut := func() {
		if current != nil {
			out = append(out, *current)
			current = nil
		}
		inPossession = false
	}

	for _, ev := range events {
		switch {
		case ev.Kind == model.KindStartOPoint || ev.Kind.GainsDisc():
			if !inPossession {
				open()
			}

		case ev.Kind == model.KindPass:
			if !inPossession {
				open()
			}
			if ev.ReceiverY != nil && model.InRedzone(*ev.ReceiverY) {
				current.ReachedRedzone = true
			}

		case ev.Kind == model.KindGoal:
			if !inPossession {
				// A goal with no open possession is a stream gap; there is no
				// span to attribute it to.
				diags.OrphanEvents++
				continue
			}
			// A score thrown from inside the band counts even when no
			// intermediate reception fell in range.
			if ev.ThrowerY != nil && model.InRedzone(*ev.ThrowerY) {
				current.ReachedRedzone = true
			}
			current.Scored = true
			closeOut()

		case ev.Kind == model.KindOpponentScore:
			// The recording team cannot hold the disc at the moment of an
			// opposing score; this only flushes a stale span left by a gap.
			closeOut()

		case ev.Kind.LosesDisc():
			if !inPossession {
				diags.OrphanEvents++
				continue
			}
			closeOut()

		case ev.Kind == model.KindStartDPoint:
			closeOut()

		case ev.Kind.IsTerminal():
			closeOut()

		case ev.Kind == model.KindTimeout:
			// No possession effect.

		default:
			if !ev.Kind.IsKnown() {
				diags.UnknownEvents++
			}
		}
	}

	closeOut()
	return out, diags
}
