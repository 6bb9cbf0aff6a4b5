package battle

// WinningFactor is how much larger one side's ratio must be to win.
const WinningFactor = 1.6

// CasualtyReport is what a side brought to the battle against what it lost.
type CasualtyReport struct {
	Headcount  float64 `json:"headcount"`
	Casualties float64 `json:"casualties"`
	Routed     float64 `json:"routed"`
	Ratio      float64 `json:"ratio"`
}

// NewCasualtyReport computes the ratio headcount / (casualties + routed/2).
// Both the divisor and the ratio are floored at 1.
func NewCasualtyReport(headcount, casualties, routed float64) CasualtyReport {
	r := CasualtyReport{Headcount: headcount, Casualties: casualties, Routed: routed}
	div := casualties + routed/2
	if div < 1 {
		div = 1
	}
	r.Ratio = headcount / div
	if r.Ratio < 1 {
		r.Ratio = 1
	}
	return r
}

// DecideWinner compares the two reports. A side wins when its ratio is at
// least WinningFactor times the other's.
func DecideWinner(a, b CasualtyReport) Winner {
	switch {
	case a.Ratio >= b.Ratio*WinningFactor:
		return WinnerSideA
	case b.Ratio >= a.Ratio*WinningFactor:
		return WinnerSideB
	default:
		return WinnerNone
	}
}

// declareWinner decides the battle, records it and applies the consequences.
// A held siege always goes to side A.
func (b *Battle) declareWinner(siegeHeld bool) (Winner, error) {
	f := b.field
	start, ok := f.records[PhaseInit]
	if !ok {
		return WinnerNone, errMissingInitRecord
	}

	var reports [2]CasualtyReport
	for side := 0; side < 2; side++ {
		// Routed men are counted from the battalions as they stand now.
		reports[side] = NewCasualtyReport(
			float64(start.Army[side].Headcount()),
			f.Casualties(side),
			float64(f.Sides[side].FleeingHeadcount()),
		)
	}
	winner := DecideWinner(reports[0], reports[1])
	if siegeHeld {
		winner = WinnerSideA
	}
	f.winner = winner

	rec := f.NewRecord(PhaseWinner)
	for side, r := range reports {
		rec.Metrics[side][MetricHeadcount] = r.Headcount
		rec.Metrics[side][MetricCasualties] = r.Casualties
		rec.Metrics[side][MetricRoutedMen] = r.Routed
		rec.Metrics[side][MetricRatio] = r.Ratio
	}
	b.store(rec)
	b.trace(PhaseWinner, EventWinner, map[string]any{
		"winner":     winner.String(),
		"siege_held": siegeHeld,
		"ratio_a":    reports[0].Ratio,
		"ratio_b":    reports[1].Ratio,
	})
	b.log.Debug("winner declared", "winner", winner.String(), "siege_held", siegeHeld,
		"ratio_a", reports[0].Ratio, "ratio_b", reports[1].Ratio)

	b.applyDecision(winner, reports)
	return winner, nil
}

// applyDecision hands out victory points, counters and news for the outcome.
func (b *Battle) applyDecision(winner Winner, reports [2]CasualtyReport) {
	f := b.field
	sides := f.Sides

	if winner.Decided() {
		won, lost := sides[winner], sides[winner.Loser()]
		corps := len(won.Corps) + len(lost.Corps)
		if corps < 1 {
			corps = 1
		}
		gain := VPBattlePerCorps * corps
		if gain > VPBattleCap {
			gain = VPBattleCap
		}
		penalty := gain / 2
		if penalty < 1 {
			penalty = 1
		}

		for _, bt := range lost.Battalions {
			bt.HasLost = true
		}
		for _, n := range won.Nations {
			b.ledger.ChangeVictoryPoints(n, gain, "battle won")
			b.ledger.ChangeProfile(n, ProfileBattlesWon, 1)
			b.ledger.CheckAchievements(n, ProfileBattlesWon)
		}
		for _, n := range lost.Nations {
			b.ledger.ChangeVictoryPoints(n, -penalty, "battle lost")
			b.ledger.ChangeProfile(n, ProfileBattlesLost, 1)
			b.ledger.CheckAchievements(n, ProfileBattlesLost)
		}
		lostLosses := int(reports[winner.Loser()].Casualties)
		for _, w := range won.Nations {
			for _, l := range lost.Nations {
				b.ledger.PairNews(w, l, NewsBattle,
					b.news.victory(l, lostLosses), b.news.defeat(w, lostLosses))
			}
		}
	} else {
		for side, s := range sides {
			for _, n := range s.Nations {
				b.ledger.ChangeProfile(n, ProfileBattlesDraw, 1)
				b.ledger.CheckAchievements(n, ProfileBattlesDraw)
				b.ledger.News(n, NewsBattle, b.news.draw(int(reports[side].Casualties)))
			}
		}
	}

	if f.Fortress >= 3 && (winner == WinnerNone || winner == WinnerSideA) {
		bonus := vpFortressDefended[f.Fortress]
		for _, n := range sides[0].Nations {
			b.ledger.ChangeVictoryPoints(n, bonus, "fortress defended")
			b.ledger.ChangeProfile(n, ProfileFortressDefended, 1)
			b.ledger.CheckAchievements(n, ProfileFortressDefended)
			b.ledger.News(n, NewsFortress, b.news.fortressHeld(f.Fortress))
			if f.Fortress == MaxFortressLevel {
				b.ledger.GlobalNews(NewsFortress, b.news.fortressHeldGlobal(n))
			}
		}
	}

	out := &Outcome{
		Game:   f.Game,
		Winner: winner,
		Sides:  sides,
		Rand:   f.Rand,
		Ledger: b.ledger,
		trace: func(payload map[string]any) {
			b.trace(PhaseWinner, EventRefund, payload)
		},
		news: b.news,
	}
	for _, rule := range b.rules {
		if rule != nil {
			rule.Apply(out)
		}
	}
}
