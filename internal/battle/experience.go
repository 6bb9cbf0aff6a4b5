package battle

import "fieldbattle/internal/util"

// Experience rise chances, in percent.
const (
	RiseMilitaristicWinner = 7
	RiseWinner             = 5
	RiseDraw               = 2
	RiseLoser              = 1
)

// RiseChance is the chance a battalion of nation gains experience.
func RiseChance(militaristic bool, side int, winner Winner) int {
	switch {
	case winner.Decided() && int(winner) == side && militaristic:
		return RiseMilitaristicWinner
	case winner.Decided() && int(winner) == side:
		return RiseWinner
	case !winner.Decided():
		return RiseDraw
	default:
		return RiseLoser
	}
}

// riseExperience rolls experience for every surviving battalion, then lets
// the winning commander learn from the victory.
func (b *Battle) riseExperience(winner Winner) StatisticsRecord {
	f := b.field
	rec := f.NewRecord(PhaseExperience)

	for side, s := range f.Sides {
		for _, bt := range s.Battalions {
			if bt.Headcount <= 0 {
				continue
			}
			chance := RiseChance(b.nations.Militaristic(bt.Nation()), side, winner)
			if !util.Percent(f.Rand, chance) {
				bt.Participated = false
				continue
			}
			limit := bt.ExperienceCap()
			if bt.Experience >= limit {
				bt.Participated = false
				rec.Metrics[side][MetricCapped]++
				continue
			}
			bt.Experience = clamp(bt.Experience+1, MinExperience, limit)
			bt.Participated = true
			rec.Metrics[side][MetricRaised]++
		}
	}

	if winner.Decided() {
		if c := f.Sides[winner].Commander; c != nil {
			gain := 1 + f.Rand.Intn(2)
			rec.Metrics[winner][MetricSkill] = float64(gain)
			if b.improveCommander(c, gain) {
				rec.Metrics[winner][MetricPromoted] = 1
			}
		}
	}
	return rec
}

// improveCommander applies a skill gain and reports whether it led to a
// promotion.
func (b *Battle) improveCommander(c *Commander, gain int) bool {
	rank := c.Rank
	switch {
	case rank != nil && b.ranks.IsTop(rank) && c.Capability+gain >= rank.MaxCapability:
		c.Capability = rank.MaxCapability
		b.ledger.ChangeVictoryPoints(c.Nation, VPCommanderMaxSkill, "commander reached maximum skill")
		b.ledger.News(c.Nation, NewsCommander, b.news.maxSkill(c))
		b.trace(PhaseExperience, EventSkill, map[string]any{"commander": c.ID, "capability": c.Capability, "max": true})
		return false
	case rank != nil && !b.ranks.IsTop(rank) && c.Capability >= rank.MaxCapability:
		next := b.ranks.Next(rank)
		if next == nil {
			break
		}
		c.Rank = next
		c.Strength = next.Strength
		c.Capability += gain
		b.ledger.News(c.Nation, NewsCommander, b.news.promoted(c))
		b.log.Debug("commander promoted", "commander", c.ID, "rank", next.Name)
		b.trace(PhaseExperience, EventPromoted, map[string]any{"commander": c.ID, "rank": next.ID})
		return true
	}
	c.Capability += gain
	b.ledger.News(c.Nation, NewsCommander, b.news.improved(c, gain))
	b.trace(PhaseExperience, EventSkill, map[string]any{"commander": c.ID, "capability": c.Capability})
	return false
}
