package battle

import "fieldbattle/internal/util"

// Field is the context every phase of one battle shares: where it is fought,
// the two sides, the random stream and what earlier phases recorded.
type Field struct {
	Game     Game
	Location Location
	Fortress int
	Sides    [2]*Side
	Rand     util.Source

	records map[PhaseID]StatisticsRecord
	winner  Winner
	nations Nations
}

// Record returns the record of an earlier phase.
func (f *Field) Record(id PhaseID) (StatisticsRecord, bool) {
	rec, ok := f.records[id]
	return rec, ok
}

// NewRecord starts a record for id with the current army composition of both
// sides and empty metrics.
func (f *Field) NewRecord(id PhaseID) StatisticsRecord {
	rec := StatisticsRecord{Phase: id}
	for i, s := range f.Sides {
		rec.Army[i] = s.Composition()
	}
	return rec
}

// PhaseName names id as fought on this field: against a fortress the pursuit
// slot holds the fortress check.
func (f *Field) PhaseName(id PhaseID) string {
	if id == PhaseFortress && f.Fortress > 0 {
		return fortressCheckName
	}
	return id.String()
}

// Winner is WinnerNone until the winner declaration has run.
func (f *Field) Winner() Winner { return f.winner }

// Sphere classifies the battlefield for the nation b fights for.
func (f *Field) Sphere(b *Battalion) Sphere {
	return SphereOf(f.Location, f.nations[b.Nation()])
}

// TerrainFactor applies the location's terrain to b.
func (f *Field) TerrainFactor(b *Battalion) float64 {
	return TerrainFactor(f.Location.Terrain, b)
}

// Casualties sums the casualty metric of side over every recorded phase that
// produces casualties.
func (f *Field) Casualties(side int) float64 {
	total := 0.0
	for _, id := range casualtyPhases {
		if rec, ok := f.records[id]; ok {
			total += rec.Metrics[side][MetricCasualties]
		}
	}
	return total
}

// Opponent returns the side facing side.
func (f *Field) Opponent(side int) *Side { return f.Sides[1-side] }
