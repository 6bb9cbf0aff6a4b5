// Package battle resolves a field battle between two sides.
//
// A Battle runs its phases in a fixed order, every roll drawn from one random
// stream, so the same seed and inputs always give the same Result.
package battle

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"fieldbattle/internal/util"
)

var (
	ErrEmptySide         = errors.New("battle side has no battalions")
	ErrFortressLevel     = errors.New("fortress level out of range")
	ErrAlreadyProcessed  = errors.New("battle already processed")
	ErrPhaseMismatch     = errors.New("phase returned a record for another phase")
	ErrRecordOutOfOrder  = errors.New("phase record out of order")
	errMissingInitRecord = errors.New("init record missing")
)

const MaxFortressLevel = 4

// breachThreshold is the artillery combat points an attacker must exceed to
// force a full engagement, indexed by fortress level.
var breachThreshold = [MaxFortressLevel + 1]float64{0, 1000, 2000, 4000, 8000}

// BreachThreshold returns the breach threshold of a fortress level.
func BreachThreshold(level int) float64 {
	if level < 0 || level > MaxFortressLevel {
		return 0
	}
	return breachThreshold[level]
}

type Option func(*Battle)

func WithGame(g Game) Option { return func(b *Battle) { b.field.Game = g } }

// WithRand sets the stream every roll is drawn from.
func WithRand(src util.Source) Option { return func(b *Battle) { b.field.Rand = src } }

func WithSeed(seed int64) Option { return WithRand(util.New(seed)) }

func WithLedger(l Ledger) Option { return func(b *Battle) { b.ledger = l } }

func WithCalculators(c Calculators) Option { return func(b *Battle) { b.calc = c } }

func WithRanks(t RankTable) Option { return func(b *Battle) { b.ranks = t } }

func WithNations(n Nations) Option { return func(b *Battle) { b.nations = n } }

func WithScenarioRules(rules ...ScenarioRule) Option {
	return func(b *Battle) { b.rules = rules }
}

// WithEmitter receives trace events while the battle is processed.
func WithEmitter(emit func(Event)) Option { return func(b *Battle) { b.emit = emit } }

func WithLogger(l *slog.Logger) Option { return func(b *Battle) { b.log = l } }

// Battle owns both sides of one engagement and resolves it.
type Battle struct {
	field   *Field
	calc    Calculators
	ledger  Ledger
	ranks   RankTable
	nations Nations
	rules   []ScenarioRule
	emit    func(Event)
	log     *slog.Logger
	news    newsWriter

	order     []PhaseID
	processed bool
	pursued   bool
}

// New prepares a battle at loc. Side A defends and may sit in a fortress of
// the given level. Dead commanders are treated as absent.
func New(loc Location, fortress int, sideA, sideB []*Battalion, cmdA, cmdB *Commander, opts ...Option) (*Battle, error) {
	if fortress < 0 || fortress > MaxFortressLevel {
		return nil, fmt.Errorf("%w: %d", ErrFortressLevel, fortress)
	}
	if countPresent(sideA) == 0 {
		return nil, fmt.Errorf("side a: %w", ErrEmptySide)
	}
	if countPresent(sideB) == 0 {
		return nil, fmt.Errorf("side b: %w", ErrEmptySide)
	}

	b := &Battle{
		field: &Field{
			Game:     Game{ID: EphemeralGameID},
			Location: loc,
			Fortress: fortress,
			Sides:    [2]*Side{newSide(0, sideA, cmdA), newSide(1, sideB, cmdB)},
			records:  map[PhaseID]StatisticsRecord{},
			winner:   WinnerNone,
		},
		calc:    noCalculators{},
		ranks:   DefaultRanks(),
		nations: DefaultNations(),
		rules:   DefaultScenarioRules(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if b.field.Rand == nil {
		b.field.Rand = util.New(util.NewSeed())
	}
	if b.ledger == nil || b.field.Game.Ephemeral() {
		b.ledger = NopLedger{}
	}
	if b.calc == nil {
		b.calc = noCalculators{}
	}
	if b.log == nil {
		b.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	b.field.nations = b.nations
	b.news = newNewsWriter(b.nations, loc)
	return b, nil
}

func countPresent(bs []*Battalion) int {
	n := 0
	for _, b := range bs {
		if b != nil {
			n++
		}
	}
	return n
}

func (b *Battle) Field() *Field { return b.field }

func (b *Battle) Side(i int) *Side { return b.field.Sides[i] }

// Process resolves the battle. It may be called once.
func (b *Battle) Process() (Result, error) {
	if b.processed {
		return Result{}, ErrAlreadyProcessed
	}
	b.processed = true
	f := b.field

	b.store(f.NewRecord(PhaseInit))
	for _, id := range []PhaseID{PhaseArtillery1, PhaseArtillery2} {
		if err := b.run(id); err != nil {
			return Result{}, err
		}
	}

	siegeHeld := b.siegeHolds()
	if !siegeHeld {
		for id := PhaseMorale1; id <= PhaseDisengageLongRange; id++ {
			if id == PhaseCavalry && f.Fortress > 0 {
				continue
			}
			if err := b.run(id); err != nil {
				return Result{}, err
			}
		}
	}

	winner, err := b.declareWinner(siegeHeld)
	if err != nil {
		return Result{}, err
	}

	// Against a fortress this slot holds the fortress check, otherwise the
	// pursuit of the beaten side.
	if err := b.run(PhasePursuit); err != nil {
		return Result{}, err
	}
	if f.Fortress == 0 {
		_, b.pursued = f.records[PhasePursuit]
	}

	b.store(b.riseExperience(winner))
	// Commanders face their rolls after a draw too; only a decided battle
	// keeps the capture record.
	fate := b.resolveCommanders(winner, b.pursued)
	if winner.Decided() {
		b.store(fate)
	}

	res := Result{Winner: winner, Records: make([]StatisticsRecord, 0, len(b.order))}
	for _, id := range b.order {
		res.Records = append(res.Records, f.records[id])
	}
	b.log.Info("battle resolved",
		"game", f.Game.ID, "turn", f.Game.Turn,
		"x", f.Location.X, "y", f.Location.Y,
		"fortress", f.Fortress, "winner", winner.String(),
		"phases", len(res.Records))
	return res, nil
}

// run executes the processor of a combat phase and keeps its record when the
// phase is forced or something happened in it.
func (b *Battle) run(id PhaseID) error {
	f := b.field
	var rec StatisticsRecord
	phase := b.calc.Phase(id, f)
	switch {
	case phase != nil:
		rec = phase.Process()
		if rec.Phase != id {
			return fmt.Errorf("%w: want %s, got %s", ErrPhaseMismatch, id, rec.Phase)
		}
	case id.Forced():
		rec = f.NewRecord(id)
	default:
		return nil
	}
	if !id.Forced() && !rec.Active() {
		b.log.Debug("phase skipped", "phase", f.PhaseName(id))
		return nil
	}
	if n := len(b.order); n > 0 && b.order[n-1] >= id {
		return fmt.Errorf("%w: %s after %s", ErrRecordOutOfOrder, id, b.order[n-1])
	}
	b.store(rec)
	return nil
}

func (b *Battle) store(rec StatisticsRecord) {
	b.field.records[rec.Phase] = rec
	b.order = append(b.order, rec.Phase)
	b.log.Debug("phase recorded", "phase", b.field.PhaseName(rec.Phase),
		"metrics_a", rec.Metrics[0], "metrics_b", rec.Metrics[1])
	b.trace(rec.Phase, EventPhase, map[string]any{
		"name":      b.field.PhaseName(rec.Phase),
		"metrics_a": rec.Metrics[0],
		"metrics_b": rec.Metrics[1],
	})
}

func (b *Battle) trace(id PhaseID, typ string, payload map[string]any) {
	if b.emit == nil {
		return
	}
	b.emit(Event{Phase: id, Type: typ, Payload: payload})
}

// siegeHolds reports whether the attacker's artillery failed to breach the
// fortress, which ends the fighting in the defender's favour.
func (b *Battle) siegeHolds() bool {
	f := b.field
	if f.Fortress == 0 {
		return false
	}
	points := 0.0
	for _, id := range []PhaseID{PhaseArtillery1, PhaseArtillery2} {
		if rec, ok := f.records[id]; ok {
			points += rec.Metrics[1][MetricPoints]
		}
	}
	threshold := BreachThreshold(f.Fortress)
	if points > threshold {
		return false
	}
	b.log.Debug("siege holds", "points", points, "threshold", threshold)
	b.trace(PhaseArtillery2, EventSiegeHeld, map[string]any{
		"points": points, "threshold": threshold,
	})
	return true
}
