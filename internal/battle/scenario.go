package battle

import "fieldbattle/internal/util"

// ScenarioRule is an extra consequence bound to a particular scenario. Rules
// run after the winner is decided, in registration order, and draw from the
// battle's stream.
type ScenarioRule interface {
	Apply(o *Outcome)
}

// Outcome is what a scenario rule gets to see of a decided battle.
type Outcome struct {
	Game   Game
	Winner Winner
	Sides  [2]*Side
	Rand   util.Source
	Ledger Ledger

	trace func(map[string]any)
	news  newsWriter
}

// NationCasualties sums the men a nation lost across both sides.
func (o *Outcome) NationCasualties(nation int) int {
	total := 0
	for _, s := range o.Sides {
		for _, b := range s.Battalions {
			if b.Nation() == nation {
				total += b.Casualties()
			}
		}
	}
	return total
}

// Scenario1808 is the Peninsular campaign, where beaten Spanish soldiers tend
// to drift back to their villages.
const Scenario1808 = "1808"

// PopulationRefund returns part of a losing nation's casualties to its
// population pool.
type PopulationRefund struct {
	Scenario   string
	Nation     int
	MinPercent int
	MaxPercent int
}

func DefaultScenarioRules() []ScenarioRule {
	return []ScenarioRule{
		PopulationRefund{Scenario: Scenario1808, Nation: NationSpain, MinPercent: 6, MaxPercent: 30},
	}
}

func (r PopulationRefund) Apply(o *Outcome) {
	if o.Game.Scenario != r.Scenario || !o.Winner.Decided() {
		return
	}
	if !o.Sides[o.Winner.Loser()].HasNation(r.Nation) {
		return
	}
	casualties := o.NationCasualties(r.Nation)
	pct := util.Between(o.Rand, r.MinPercent, r.MaxPercent)
	amount := casualties * pct / 100
	if amount <= 0 {
		return
	}
	o.Ledger.ReturnPopulation(r.Nation, amount)
	o.Ledger.News(r.Nation, NewsPopulation, o.news.populationReturned(amount))
	if o.trace != nil {
		o.trace(map[string]any{"nation": r.Nation, "percent": pct, "amount": amount})
	}
}
