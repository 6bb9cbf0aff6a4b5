package battle

import "fieldbattle/internal/util"

// Commander fate chances, in percent.
const (
	DrawDeathChance       = 2
	LoserDeathChance      = 8
	WinnerDeathChance     = 2
	BaseCaptureChance     = 3
	LightCavalryHeadcount = 400
	AnnihilatedCaptureCap = 50
	PursuitCaptureCap     = 33
)

// CaptureChance is the base chance the winning side captures the beaten
// commander: 3% plus one point per steady light cavalry battalion of 400+ men.
func CaptureChance(winning *Side) int {
	chance := BaseCaptureChance
	for _, b := range winning.Battalions {
		if b.IsLightCavalry() && !b.Fleeing && b.Headcount >= LightCavalryHeadcount {
			chance++
		}
	}
	return chance
}

// resolveCommanders settles what happens to both commanders after the
// battle. Rolls are drawn loser death, loser capture, winner death.
func (b *Battle) resolveCommanders(winner Winner, pursued bool) StatisticsRecord {
	f := b.field
	rec := f.NewRecord(PhaseCapture)

	if !winner.Decided() {
		for side := 0; side < 2; side++ {
			c := f.Sides[side].Commander
			if c == nil {
				continue
			}
			if util.Percent(f.Rand, DrawDeathChance) {
				b.killCommander(side, 1-side)
				rec.Metrics[side][MetricKilled]++
			}
		}
		return rec
	}

	won, lost := int(winner), winner.Loser()
	chance := CaptureChance(f.Sides[won])

	if c := f.Sides[lost].Commander; c != nil {
		if util.Percent(f.Rand, LoserDeathChance) {
			b.killCommander(lost, won)
			rec.Metrics[lost][MetricKilled]++
		} else {
			target := chance
			switch {
			case f.Sides[lost].Headcount() == 0:
				target = min(target, AnnihilatedCaptureCap)
			case pursued:
				target = min(target/2, PursuitCaptureCap)
			}
			rec.Metrics[won][MetricChance] = float64(target)
			if util.Percent(f.Rand, target) {
				if b.captureCommander(lost, won) {
					rec.Metrics[lost][MetricCaptured]++
				}
			}
		}
	}

	if c := f.Sides[won].Commander; c != nil {
		if util.Percent(f.Rand, WinnerDeathChance) {
			b.killCommander(won, lost)
			rec.Metrics[won][MetricKilled]++
		}
	}
	return rec
}

// killCommander marks the commander of side dead and credits side by.
func (b *Battle) killCommander(side, by int) {
	f := b.field
	c := f.Sides[side].Commander
	if c == nil || c.Dead {
		return
	}
	b.ledger.ChangeVictoryPoints(c.Nation, -VPCommanderKilled, "commander killed")
	for _, n := range f.Sides[by].Nations {
		b.ledger.ChangeVictoryPoints(n, VPCommanderKilled, "enemy commander killed")
		b.ledger.PairNews(c.Nation, n, NewsCommander,
			b.news.commanderKilled(c), b.news.enemyCommanderKilled(c))
		b.ledger.ChangeProfile(n, ProfileKilledCommanders, 1)
		b.ledger.CheckAchievements(n, ProfileKilledCommanders)
	}
	c.relieve()
	c.Dead = true
	b.log.Debug("commander killed", "commander", c.ID, "side", side)
	b.trace(PhaseCapture, EventKilled, map[string]any{"commander": c.ID, "side": side})
}

// captureCommander hands the commander of side to a random nation of side by.
func (b *Battle) captureCommander(side, by int) bool {
	f := b.field
	c := f.Sides[side].Commander
	nations := f.Sides[by].Nations
	if c == nil || len(nations) == 0 {
		return false
	}
	captor := nations[f.Rand.Intn(len(nations))]
	c.relieve()
	c.CapturedBy = captor
	b.ledger.PairNews(c.Nation, captor, NewsCommander,
		b.news.commanderCaptured(c, captor), b.news.enemyCommanderCaptured(c))
	b.log.Debug("commander captured", "commander", c.ID, "by", captor)
	b.trace(PhaseCapture, EventCaptured, map[string]any{"commander": c.ID, "by": captor})
	return true
}
