// Package service resolves configured battles, one at a time or many in
// parallel, and files their bookkeeping and reports.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"fieldbattle/internal/battle"
	"fieldbattle/internal/config"
	"fieldbattle/internal/report"
	"fieldbattle/internal/rounds"
	"fieldbattle/internal/storage/sqlite"
)

// seedStride spaces the derived seeds of batch runs.
const seedStride = 7919

var ErrNoData = errors.New("reference data is required")

// Outcome is the result of one resolved battle.
type Outcome struct {
	Name   string         `json:"name"`
	Seed   int64          `json:"seed"`
	Result battle.Result  `json:"result"`
	Report report.Report  `json:"report"`
	Events []battle.Event `json:"events,omitempty"`
	Stored bool           `json:"stored"`
}

type Runner struct {
	data       *config.Bundle
	calc       battle.Calculators
	store      *sqlite.Store
	workers    int
	seed       int64
	keepEvents bool
	log        *slog.Logger
	tracer     trace.Tracer
}

type Option func(*Runner)

// WithStore makes non-ephemeral battles write their bookkeeping and
// reports to s.
func WithStore(s *sqlite.Store) Option { return func(r *Runner) { r.store = s } }

func WithWorkers(n int) Option { return func(r *Runner) { r.workers = n } }

// WithSeed sets the base seed for battles that do not carry their own.
func WithSeed(seed int64) Option { return func(r *Runner) { r.seed = seed } }

func WithCalculators(c battle.Calculators) Option { return func(r *Runner) { r.calc = c } }

// WithEvents keeps the trace events of every battle in its Outcome.
func WithEvents(keep bool) Option { return func(r *Runner) { r.keepEvents = keep } }

func WithLogger(l *slog.Logger) Option { return func(r *Runner) { r.log = l } }

func WithTracer(t trace.Tracer) Option { return func(r *Runner) { r.tracer = t } }

func New(data *config.Bundle, opts ...Option) (*Runner, error) {
	if data == nil {
		return nil, ErrNoData
	}
	r := &Runner{data: data, workers: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.workers < 1 {
		r.workers = 1
	}
	if r.calc == nil {
		r.calc = rounds.New(data.Tuning)
	}
	if r.log == nil {
		r.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer("fieldbattle/service")
	}
	return r, nil
}

// SeedFor derives the seed of the index-th battle of a batch. A battle
// definition with its own seed keeps it.
func (r *Runner) SeedFor(def config.BattleDef, index int) int64 {
	if def.Seed != 0 {
		return def.Seed
	}
	return r.seed + int64(index)*seedStride
}

// Run resolves defs concurrently and returns their outcomes in input order.
// The first failure cancels the battles that have not started yet.
func (r *Runner) Run(ctx context.Context, defs []config.BattleDef) ([]Outcome, error) {
	out := make([]Outcome, len(defs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, def := range defs {
		i, def := i, def
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o, err := r.resolve(ctx, def, r.SeedFor(def, i), false)
			if err != nil {
				return fmt.Errorf("battle %d %q: %w", i, def.Name, err)
			}
			out[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// RunOne resolves a single battle.
func (r *Runner) RunOne(ctx context.Context, def config.BattleDef) (Outcome, error) {
	return r.resolve(ctx, def, r.SeedFor(def, 0), false)
}

func (r *Runner) resolve(ctx context.Context, def config.BattleDef, seed int64, ephemeral bool) (Outcome, error) {
	ctx, span := r.tracer.Start(ctx, "battle.resolve", trace.WithAttributes(
		attribute.String("battle.name", def.Name),
		attribute.Int64("battle.seed", seed),
	))
	defer span.End()

	o, err := r.process(ctx, def, seed, ephemeral)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Outcome{}, err
	}
	span.SetAttributes(
		attribute.Int("battle.game", o.Report.Game.ID),
		attribute.String("battle.winner", o.Result.Winner.String()),
		attribute.Int("battle.phases", len(o.Result.Records)),
		attribute.Bool("battle.stored", o.Stored),
	)
	return o, nil
}

func (r *Runner) process(ctx context.Context, def config.BattleDef, seed int64, ephemeral bool) (Outcome, error) {
	setup, err := def.Setup(r.data)
	if err != nil {
		return Outcome{}, err
	}
	game := setup.Game
	if ephemeral {
		game.ID = battle.EphemeralGameID
	}
	log := r.log.With("battle", setup.Name, "seed", seed)

	var events []battle.Event
	opts := []battle.Option{
		battle.WithGame(game),
		battle.WithSeed(seed),
		battle.WithCalculators(r.calc),
		battle.WithNations(r.data.Nations),
		battle.WithRanks(r.data.Ranks),
		battle.WithLogger(log),
	}
	if r.keepEvents {
		opts = append(opts, battle.WithEmitter(func(ev battle.Event) { events = append(events, ev) }))
	}
	persist := r.store != nil && !game.Ephemeral()
	if persist {
		opts = append(opts, battle.WithLedger(r.store.Ledger(ctx, game, log)))
	}

	b, err := battle.New(setup.Location, setup.Fortress,
		setup.Battalions[0], setup.Battalions[1],
		setup.Commanders[0], setup.Commanders[1], opts...)
	if err != nil {
		return Outcome{}, err
	}
	res, err := b.Process()
	if err != nil {
		return Outcome{}, err
	}

	o := Outcome{
		Name:   setup.Name,
		Seed:   seed,
		Result: res,
		Report: report.Build(b, res, r.data.Nations),
		Events: events,
	}
	if persist {
		if err := r.save(ctx, o.Report); err != nil {
			return Outcome{}, err
		}
		o.Stored = true
	}
	return o, nil
}

func (r *Runner) save(ctx context.Context, rep report.Report) error {
	data, err := report.Encode(rep)
	if err != nil {
		return err
	}
	return r.store.SaveReport(ctx, sqlite.Report{
		ID:        rep.ID,
		GameID:    rep.Game.ID,
		Turn:      rep.Game.Turn,
		X:         rep.Location.X,
		Y:         rep.Location.Y,
		Winner:    int(rep.Winner),
		Data:      data,
		CreatedAt: rep.CreatedAt,
	})
}
