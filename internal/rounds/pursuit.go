package rounds

import (
	"math"

	"fieldbattle/internal/battle"
	"fieldbattle/internal/config"
)

// lightCavalryPursuit multiplies the pursuit points of light cavalry.
const lightCavalryPursuit = 2

// pursuit lets the winner's steady cavalry ride down the beaten side. Fleeing
// battalions take the blow; when nobody flees the whole army takes half of it.
type pursuit struct {
	field *battle.Field
	cfg   *config.TuningConfig
}

func (p *pursuit) Process() battle.StatisticsRecord {
	f := p.field
	rec := f.NewRecord(battle.PhasePursuit)
	w := f.Winner()
	if !w.Decided() {
		return rec
	}
	won, lost := int(w), w.Loser()

	points := 0.0
	for _, b := range f.Sides[won].Battalions {
		if b.Fleeing || b.Headcount <= 0 || b.Arm() != battle.ArmCavalry {
			continue
		}
		pts := pointsOf(b, p.cfg.Pursuit.Rates, f, p.cfg)
		if b.IsLightCavalry() {
			pts *= lightCavalryPursuit
		}
		points += pts
	}
	if points == 0 {
		return rec
	}

	casualties := points * p.cfg.Pursuit.Lethality * spread(f, p.cfg.Variance)
	targets := fleeing(f.Sides[lost].Battalions)
	if len(targets) == 0 {
		targets = standing(f.Sides[lost].Battalions)
		casualties /= 2
	}
	hit := inflict(targets, int(math.Round(casualties)))
	rec.Metrics[won][battle.MetricPoints] = math.Round(points)
	rec.Metrics[lost][battle.MetricCasualties] = float64(hit.casualties)
	return rec
}

// fortressCheck wears the fortification down by the attacker's artillery
// fire. Every ConditionPerLevel lost condition costs the works one level.
type fortressCheck struct {
	field *battle.Field
	cfg   config.FortressTuning
}

// Metric slots of the fortress check.
const (
	MetricArtillery     = 0
	MetricConditionLost = 1
	MetricLevelsLost    = 2
)

func (c *fortressCheck) Process() battle.StatisticsRecord {
	f := c.field
	rec := f.NewRecord(battle.PhaseFortress)
	fort := f.Location.Fort
	if fort == nil || fort.Level <= 0 || c.cfg.PointsPerCondition <= 0 {
		return rec
	}

	points := 0.0
	for _, id := range []battle.PhaseID{battle.PhaseArtillery1, battle.PhaseArtillery2} {
		if r, ok := f.Record(id); ok {
			points += r.Metrics[1][battle.MetricPoints]
		}
	}
	rec.Metrics[1][MetricArtillery] = points

	lost := int(points / c.cfg.PointsPerCondition)
	if lost <= 0 {
		return rec
	}
	fort.Condition -= lost
	levels := 0
	for fort.Condition <= 0 && fort.Level > 0 {
		fort.Level--
		levels++
		fort.Condition += c.cfg.ConditionPerLevel
	}
	if fort.Level == 0 {
		fort.Condition = 0
	}
	rec.Metrics[0][MetricConditionLost] = float64(lost)
	rec.Metrics[0][MetricLevelsLost] = float64(levels)
	return rec
}
