package model

// Side identifies which side of a recorded game an attribute refers to.
// Every event stream belongs to exactly one recording team; the other side
// is always "opponent".
type Side int

const (
	SideNone     Side = 0
	SideTeam     Side = 1 // the recording team
	SideOpponent Side = 2
)

func (s Side) String() string {
	switch s {
	case SideTeam:
		return "team"
	case SideOpponent:
		return "opponent"
	default:
		return "-"
	}
}

// EventKind is the integer event-type code used by the upstream play-by-play
// feed. The set below is exhaustive for possession purposes; any other code
// is unknown and must be ignored (but counted) by the builders.
type EventKind int

const (
	KindStartDPoint       EventKind = 1  // recording team pulls
	KindStartOPoint       EventKind = 2  // recording team receives the pull
	KindBlock             EventKind = 5  // block by the recording team
	KindThrowawayCaused   EventKind = 7  // opponent throwaway
	KindStallCaused       EventKind = 8  // opponent stalled out
	KindBlockedByOpponent EventKind = 11 // recording team's throw was blocked
	KindTimeout           EventKind = 14
	KindOpponentScore     EventKind = 15
	KindPass              EventKind = 18
	KindGoal              EventKind = 19 // recording team scores
	KindDrop              EventKind = 20
	KindThrowaway         EventKind = 22
	KindStall             EventKind = 24
	KindEndOfQ1           EventKind = 28
	KindEndOfQ2           EventKind = 29 // halftime
	KindEndOfQ3           EventKind = 30
	KindGameOver          EventKind = 31
	KindEndOfOT           EventKind = 32
)

func (k EventKind) String() string {
	switch k {
	case KindStartDPoint:
		return "start-d-point"
	case KindStartOPoint:
		return "start-o-point"
	case KindBlock:
		return "block"
	case KindThrowawayCaused:
		return "throwaway-caused"
	case KindStallCaused:
		return "stall-caused"
	case KindBlockedByOpponent:
		return "blocked"
	case KindTimeout:
		return "timeout"
	case KindOpponentScore:
		return "opponent-score"
	case KindPass:
		return "pass"
	case KindGoal:
		return "goal"
	case KindDrop:
		return "drop"
	case KindThrowaway:
		return "throwaway"
	case KindStall:
		return "stall"
	case KindEndOfQ1:
		return "end-q1"
	case KindEndOfQ2:
		return "halftime"
	case KindEndOfQ3:
		return "end-q3"
	case KindGameOver:
		return "game-over"
	case KindEndOfOT:
		return "end-ot"
	default:
		return "unknown"
	}
}

// IsKnown reports whether the code belongs to the feed taxonomy.
func (k EventKind) IsKnown() bool {
	return k.String() != "unknown"
}

// IsPullStart reports whether the event opens a new point.
func (k EventKind) IsPullStart() bool {
	return k == KindStartDPoint || k == KindStartOPoint
}

// IsTerminal reports whether the event ends the stream segment
// (quarter, half, regulation, or overtime boundary).
func (k EventKind) IsTerminal() bool {
	switch k {
	case KindEndOfQ1, KindEndOfQ2, KindEndOfQ3, KindGameOver, KindEndOfOT:
		return true
	}
	return false
}

// GainsDisc reports whether the event hands the disc to the recording team.
func (k EventKind) GainsDisc() bool {
	switch k {
	case KindBlock, KindThrowawayCaused, KindStallCaused:
		return true
	}
	return false
}

// LosesDisc reports whether the event hands the disc to the opponent.
func (k EventKind) LosesDisc() bool {
	switch k {
	case KindDrop, KindThrowaway, KindStall, KindBlockedByOpponent:
		return true
	}
	return false
}

// Field geometry of the normalized coordinate frame. Each recording team's
// events are oriented so that it attacks toward increasing Y on a 0–120 axis;
// the red zone is the band just short of the attacking end zone.
const (
	FieldLengthY = 120.0
	RedzoneMinY  = 80.0
	RedzoneMaxY  = 100.0
)

// InRedzone reports whether a Y coordinate falls inside the red-zone band.
func InRedzone(y float64) bool {
	return y >= RedzoneMinY && y <= RedzoneMaxY
}

// Event is one observed action from the recording team's stream. Coordinate
// and participant fields are optional: a nil pointer / empty id means the feed
// carried no data, not a zero position. Events are never mutated by the engine.
type Event struct {
	SequenceIndex int
	Kind          EventKind

	ThrowerID  string
	ReceiverID string
	DefenderID string

	ThrowerX, ThrowerY   *float64
	ReceiverX, ReceiverY *float64
	TurnoverX, TurnoverY *float64

	// GameClockSeconds counts down within the quarter; nil if not recorded.
	GameClockSeconds *int
}

// Point is one inter-pull interval from the recording team's perspective.
// Exactly one of PullingTeam/ReceivingTeam is SideTeam. ScoringTeam stays
// SideNone when the point was truncated without a score (quarter boundary).
type Point struct {
	PullingTeam   Side
	ReceivingTeam Side
	ScoringTeam   Side

	// Possession counters: how many times the disc changed hands in favor of
	// each side during the point, starting at 1 for whichever side received.
	TeamPossessions     int
	OpponentPossessions int
}

// Possession is one continuous span of disc control by the recording team.
type Possession struct {
	ReachedRedzone bool
	Scored         bool
}

// GameSummary is a lightweight record for list/import commands.
type GameSummary struct {
	GameID     string
	TeamID     string
	OpponentID string
	Season     string
	StartDate  string
}

// EfficiencyReport holds the raw counters behind the derived efficiency
// percentages. Counters merge associatively across games, so partial reports
// computed per game can be folded in any order.
type EfficiencyReport struct {
	OLinePoints      int
	OLineScores      int
	OLinePossessions int

	DLinePoints      int
	DLineScores      int
	DLinePossessions int

	RedzonePossessions int
	RedzoneScores      int
}

// Merge adds another report's counters into r.
func (r *EfficiencyReport) Merge(o EfficiencyReport) {
	r.OLinePoints += o.OLinePoints
	r.OLineScores += o.OLineScores
	r.OLinePossessions += o.OLinePossessions
	r.DLinePoints += o.DLinePoints
	r.DLineScores += o.DLineScores
	r.DLinePossessions += o.DLinePossessions
	r.RedzonePossessions += o.RedzonePossessions
	r.RedzoneScores += o.RedzoneScores
}

// The derived percentages are never stored; they are recomputed on demand.
// ok == false means the percentage is undefined (zero denominator), which is
// distinct from 0%: a team with no O-line points has no hold percentage at all.

func (r EfficiencyReport) HoldPct() (float64, bool) {
	return pct(r.OLineScores, r.OLinePoints)
}

func (r EfficiencyReport) OConversionPct() (float64, bool) {
	return pct(r.OLineScores, r.OLinePossessions)
}

func (r EfficiencyReport) BreakPct() (float64, bool) {
	return pct(r.DLineScores, r.DLinePoints)
}

func (r EfficiencyReport) DConversionPct() (float64, bool) {
	return pct(r.DLineScores, r.DLinePossessions)
}

func (r EfficiencyReport) RedzoneConversionPct() (float64, bool) {
	return pct(r.RedzoneScores, r.RedzonePossessions)
}

func pct(num, den int) (float64, bool) {
	if den == 0 {
		return 0, false
	}
	return float64(num) / float64(den) * 100, true
}

// Float64 returns a pointer to v; convenience for optional coordinate fields.
func Float64(v float64) *float64 { return &v }
