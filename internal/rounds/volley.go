package rounds

import (
	"math"

	"fieldbattle/internal/battle"
	"fieldbattle/internal/config"
)

// volley is a phase in which both sides deal damage at the same time: long
// range fire or a melee.
type volley struct {
	field   *battle.Field
	id      battle.PhaseID
	fire    config.FireTuning
	cfg     *config.TuningConfig
	shooter func(*battle.Battalion) bool
}

func (v *volley) Process() battle.StatisticsRecord {
	f := v.field
	rec := f.NewRecord(v.id)

	var points [2]float64
	for side, s := range f.Sides {
		for _, b := range s.Battalions {
			if b.Fleeing || b.Headcount <= 0 || !v.shooter(b) {
				continue
			}
			points[side] += pointsOf(b, v.fire.Rates, f, v.cfg)
		}
		points[side] *= cover(f, side, v.cfg)
	}

	// Both sides fire from the state before the phase.
	var dealt [2]int
	for side := range f.Sides {
		roll := spread(f, v.cfg.Variance)
		enemy := 1 - side
		dealt[enemy] = int(math.Round(points[side] * v.fire.Lethality * roll / cover(f, enemy, v.cfg)))
	}
	for side, s := range f.Sides {
		hit := inflict(standing(s.Battalions), dealt[side])
		rec.Metrics[side][battle.MetricPoints] = math.Round(points[side])
		rec.Metrics[side][battle.MetricCasualties] = float64(hit.casualties)
		rec.Metrics[side][battle.MetricBroken] = float64(hit.wiped)
		rec.Metrics[side][battle.MetricHit] = float64(hit.battalions)
	}
	return rec
}

// pointsOf is the combat points a battalion brings with the given rates.
func pointsOf(b *battle.Battalion, rates map[string]float64, f *battle.Field, cfg *config.TuningConfig) float64 {
	rate := rates[b.Arm().String()]
	if rate == 0 {
		return 0
	}
	exp := 1 + cfg.ExperienceBonus*float64(b.Experience-battle.MinExperience)
	return float64(b.Headcount) * rate * exp * f.TerrainFactor(b)
}

// cover is the advantage a defender draws from its fortress.
func cover(f *battle.Field, side int, cfg *config.TuningConfig) float64 {
	if side != 0 || f.Fortress == 0 {
		return 1
	}
	return 1 + cfg.FortressCover*float64(f.Fortress)
}

// spread draws a multiplier in [1-variance, 1+variance). It always draws.
func spread(f *battle.Field, variance float64) float64 {
	r := f.Rand.Float64()
	return 1 - variance + 2*variance*r
}

func standing(bs []*battle.Battalion) []*battle.Battalion {
	var out []*battle.Battalion
	for _, b := range bs {
		if !b.Fleeing && b.Headcount > 0 {
			out = append(out, b)
		}
	}
	return out
}

func fleeing(bs []*battle.Battalion) []*battle.Battalion {
	var out []*battle.Battalion
	for _, b := range bs {
		if b.Fleeing && b.Headcount > 0 {
			out = append(out, b)
		}
	}
	return out
}

type damage struct {
	casualties int
	wiped      int
	battalions int
}

// inflict spreads casualties over targets by headcount. No battalion loses
// more men than it has.
func inflict(targets []*battle.Battalion, casualties int) damage {
	var d damage
	total := 0
	for _, b := range targets {
		total += b.Headcount
	}
	if total == 0 || casualties <= 0 {
		return d
	}
	casualties = min(casualties, total)

	loss := make([]int, len(targets))
	assigned := 0
	for i, b := range targets {
		loss[i] = casualties * b.Headcount / total
		assigned += loss[i]
	}
	for i, b := range targets {
		if assigned >= casualties {
			break
		}
		extra := min(casualties-assigned, b.Headcount-loss[i])
		loss[i] += extra
		assigned += extra
	}

	for i, b := range targets {
		if loss[i] == 0 {
			continue
		}
		b.Headcount -= loss[i]
		d.casualties += loss[i]
		d.battalions++
		if b.Headcount == 0 {
			d.wiped++
		}
	}
	return d
}
