package rounds

import (
	"fieldbattle/internal/battle"
	"fieldbattle/internal/config"
)

// morale tests every steady battalion that has lost more than its share of
// men. The cavalry check only looks at cavalry.
type morale struct {
	field     *battle.Field
	id        battle.PhaseID
	cfg       config.MoraleTuning
	threshold float64
}

func (m *morale) Process() battle.StatisticsRecord {
	f := m.field
	rec := f.NewRecord(m.id)

	for side, s := range f.Sides {
		rec.Metrics[side][battle.MetricLosses] = f.Casualties(side)
		for _, b := range s.Battalions {
			if b.Fleeing || b.Headcount <= 0 || b.Initial <= 0 {
				continue
			}
			if m.id == battle.PhaseMoraleCavalry && b.Arm() != battle.ArmCavalry {
				continue
			}
			rec.Metrics[side][battle.MetricChecked]++

			loss := float64(b.Casualties()) / float64(b.Initial)
			limit := m.threshold + m.cfg.ExperienceStep*float64(b.Experience-battle.MinExperience) - m.strain(f.Sphere(b))
			if loss <= limit {
				continue
			}
			if f.Rand.Float64() >= m.cfg.BaseRout+m.cfg.RoutScale*(loss-limit) {
				continue
			}
			b.Fleeing = true
			rec.Metrics[side][battle.MetricRouted]++
			rec.Metrics[side][battle.MetricRoutedHeadcount] += float64(b.Headcount)
		}
	}
	return rec
}

func (m *morale) strain(s battle.Sphere) float64 {
	switch s {
	case battle.SphereInfluenced:
		return m.cfg.InfluencedStrain
	case battle.SphereForeign:
		return m.cfg.ForeignStrain
	}
	return 0
}
