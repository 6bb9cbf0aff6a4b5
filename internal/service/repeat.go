package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"fieldbattle/internal/battle"
	"fieldbattle/internal/config"
)

// Summary aggregates repeated runs of one battle.
type Summary struct {
	Name          string     `json:"name"`
	Runs          int        `json:"runs"`
	WinsA         int        `json:"wins_a"`
	WinsB         int        `json:"wins_b"`
	Draws         int        `json:"draws"`
	SiegeHeld     int        `json:"siege_held"`
	WinRateA      float64    `json:"win_rate_a"`
	WinRateB      float64    `json:"win_rate_b"`
	AvgCasualties [2]float64 `json:"avg_casualties"`
	AvgPhases     float64    `json:"avg_phases"`
}

// Repeat resolves def n times with derived seeds and summarises the
// outcomes. The runs never touch the store.
func (r *Runner) Repeat(ctx context.Context, def config.BattleDef, n int) (Summary, error) {
	sum := Summary{Name: def.Name, Runs: n}
	if n <= 0 {
		return sum, nil
	}
	base := r.SeedFor(def, 0)

	outs := make([]Outcome, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o, err := r.resolve(ctx, def, base+int64(i), true)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			outs[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	// Sum in run order; float totals depend on it.
	phases := 0
	for _, o := range outs {
		switch o.Result.Winner {
		case battle.WinnerSideA:
			sum.WinsA++
		case battle.WinnerSideB:
			sum.WinsB++
		default:
			sum.Draws++
		}
		if _, ok := o.Result.Record(battle.PhaseMorale1); !ok && o.Report.Fortress > 0 {
			sum.SiegeHeld++
		}
		for side := 0; side < 2; side++ {
			sum.AvgCasualties[side] += o.Report.Sides[side].Casualties
		}
		phases += len(o.Result.Records)
	}

	runs := float64(n)
	sum.WinRateA = float64(sum.WinsA) / runs
	sum.WinRateB = float64(sum.WinsB) / runs
	for side := range sum.AvgCasualties {
		sum.AvgCasualties[side] /= runs
	}
	sum.AvgPhases = float64(phases) / runs
	return sum, nil
}
