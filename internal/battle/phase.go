package battle

// Phase is one step of the battle. Process may change battalion and commander
// state but must only describe its own phase in the returned record.
type Phase interface {
	Process() StatisticsRecord
}

// PhaseFunc adapts a function to Phase.
type PhaseFunc func() StatisticsRecord

func (fn PhaseFunc) Process() StatisticsRecord { return fn() }

// Calculators builds the phase processors of a battle. Returning nil means the
// phase has no processor; forced phases are then recorded empty.
type Calculators interface {
	Phase(id PhaseID, f *Field) Phase
}

// CalculatorsFunc adapts a function to Calculators.
type CalculatorsFunc func(id PhaseID, f *Field) Phase

func (fn CalculatorsFunc) Phase(id PhaseID, f *Field) Phase { return fn(id, f) }

type noCalculators struct{}

func (noCalculators) Phase(PhaseID, *Field) Phase { return nil }
