package battle

// PhaseID identifies a step of the battle. Records are kept in ascending order.
type PhaseID int

const (
	PhaseInit PhaseID = iota
	PhaseArtillery1
	PhaseArtillery2
	PhaseMorale1
	PhaseSkirmish
	PhaseTroopLongRange
	PhaseMorale2
	PhaseHandToHand
	PhaseMorale3
	PhaseCavalry
	PhaseMoraleCavalry
	PhaseDisengageHandToHand
	PhaseDisengageLongRange
	PhaseWinner
	// PhasePursuit is also the slot of the fortress check when the battle is
	// fought against a fortress.
	PhasePursuit
	PhaseExperience
	PhaseCapture
	phaseCount
)

// PhaseFortress shares the pursuit slot.
const PhaseFortress = PhasePursuit

const fortressCheckName = "fortress_check"

var phaseNames = [phaseCount]string{
	"init",
	"artillery_long_range_1",
	"artillery_long_range_2",
	"morale_1",
	"skirmish_long_range",
	"troop_long_range",
	"morale_2",
	"hand_to_hand",
	"morale_3",
	"cavalry_hand_to_hand",
	"morale_cavalry",
	"disengage_hand_to_hand",
	"disengage_long_range",
	"winner",
	"pursuit",
	"experience_rise",
	"commander_capture",
}

func (p PhaseID) String() string {
	if p < 0 || p >= phaseCount {
		return "unknown"
	}
	return phaseNames[p]
}

// Forced phases are recorded even when nothing happened in them.
func (p PhaseID) Forced() bool {
	switch p {
	case PhaseInit, PhaseMorale1, PhaseMorale2, PhaseMorale3, PhaseMoraleCavalry,
		PhaseWinner, PhaseExperience, PhaseCapture:
		return true
	}
	return false
}

// casualtyPhases feed the casualty totals of the winner decision.
var casualtyPhases = []PhaseID{
	PhaseArtillery1,
	PhaseArtillery2,
	PhaseSkirmish,
	PhaseTroopLongRange,
	PhaseHandToHand,
	PhaseCavalry,
	PhaseDisengageHandToHand,
	PhaseDisengageLongRange,
}

// Metric slots. Their meaning depends on the phase family.
const (
	// combat phases
	MetricPoints     = 0
	MetricCasualties = 1
	MetricBroken     = 2
	MetricHit        = 3

	// morale phases
	MetricChecked         = 0
	MetricLosses          = 1
	MetricRouted          = 2
	MetricRoutedHeadcount = 3

	// winner declaration
	MetricHeadcount = 0
	MetricRoutedMen = 2
	MetricRatio     = 3

	// experience rise
	MetricRaised   = 0
	MetricCapped   = 1
	MetricSkill    = 2
	MetricPromoted = 3

	// commander capture
	MetricKilled   = 0
	MetricCaptured = 1
	MetricChance   = 2

	metricSlots = 4
)

// Tally counts battalions and the men in them.
type Tally struct {
	Battalions int `json:"battalions"`
	Headcount  int `json:"headcount"`
}

// Composition is a side's army split by arm and by fleeing state.
type Composition struct {
	Standing [armCount]Tally `json:"standing"`
	Fleeing  [armCount]Tally `json:"fleeing"`
}

func (c Composition) Headcount() int {
	total := 0
	for a := Arm(0); a < armCount; a++ {
		total += c.Standing[a].Headcount + c.Fleeing[a].Headcount
	}
	return total
}

func (c Composition) FleeingHeadcount() int {
	total := 0
	for a := Arm(0); a < armCount; a++ {
		total += c.Fleeing[a].Headcount
	}
	return total
}

func (c Composition) Battalions() int {
	total := 0
	for a := Arm(0); a < armCount; a++ {
		total += c.Standing[a].Battalions + c.Fleeing[a].Battalions
	}
	return total
}

// StatisticsRecord is the snapshot a phase leaves behind.
type StatisticsRecord struct {
	Phase   PhaseID                 `json:"phase"`
	Army    [2]Composition          `json:"army"`
	Metrics [2][metricSlots]float64 `json:"metrics"`
}

// Active reports whether any metric of either side is non-zero.
func (r StatisticsRecord) Active() bool {
	for side := 0; side < 2; side++ {
		for _, v := range r.Metrics[side] {
			if v != 0 {
				return true
			}
		}
	}
	return false
}

// Winner is the outcome code of a battle.
type Winner int

const (
	WinnerNone  Winner = -1
	WinnerSideA Winner = 0
	WinnerSideB Winner = 1
)

func (w Winner) String() string {
	switch w {
	case WinnerSideA:
		return "side_a"
	case WinnerSideB:
		return "side_b"
	default:
		return "none"
	}
}

func (w Winner) Decided() bool { return w == WinnerSideA || w == WinnerSideB }

// Loser returns the side index opposing a decided winner.
func (w Winner) Loser() int { return 1 - int(w) }

// Result is the artifact a processed battle produces.
type Result struct {
	Records []StatisticsRecord `json:"records"`
	Winner  Winner             `json:"winner"`
}

// Record returns the record for id if the phase was recorded.
func (r Result) Record(id PhaseID) (StatisticsRecord, bool) {
	for _, rec := range r.Records {
		if rec.Phase == id {
			return rec, true
		}
	}
	return StatisticsRecord{}, false
}

// Phases lists the recorded phase ids in order.
func (r Result) Phases() []PhaseID {
	out := make([]PhaseID, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.Phase
	}
	return out
}
