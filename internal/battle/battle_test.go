package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualForcesDraw(t *testing.T) {
	b := newBattle(t, 0,
		[]*Battalion{infantry(1, NationBritain, 500)},
		[]*Battalion{infantry(2, NationFrance, 500)},
		nil, nil, WithSeed(3))

	res, err := b.Process()
	require.NoError(t, err)
	assert.Equal(t, WinnerNone, res.Winner)
	assert.Equal(t, []PhaseID{
		PhaseInit, PhaseMorale1, PhaseMorale2, PhaseMorale3, PhaseMoraleCavalry,
		PhaseWinner, PhaseExperience,
	}, res.Phases())

	rec, ok := res.Record(PhaseWinner)
	require.True(t, ok)
	assert.Equal(t, 500.0, rec.Metrics[0][MetricRatio])
	assert.Equal(t, 500.0, rec.Metrics[1][MetricRatio])
}

func TestHeavierLossesLose(t *testing.T) {
	a := infantry(1, NationBritain, 1000)
	a.CorpsID = 4
	bb := infantry(2, NationFrance, 1000)
	bb.CorpsID = 9
	ledger := newRecordingLedger()
	b := newBattle(t, 0, []*Battalion{a}, []*Battalion{bb}, nil, nil,
		WithGame(liveGame),
		WithLedger(ledger),
		WithRand(&script{}),
		WithCalculators(staged{PhaseHandToHand: losses(100, 700)}))

	res, err := b.Process()
	require.NoError(t, err)
	assert.Equal(t, WinnerSideA, res.Winner)

	rec, _ := res.Record(PhaseWinner)
	assert.InDelta(t, 10.0, rec.Metrics[0][MetricRatio], 1e-9)
	assert.InDelta(t, 1000.0/700.0, rec.Metrics[1][MetricRatio], 1e-9)

	assert.Equal(t, 4, ledger.vp[NationBritain])
	assert.Equal(t, -2, ledger.vp[NationFrance])
	assert.Equal(t, 1, ledger.profile[NationBritain][ProfileBattlesWon])
	assert.Equal(t, 1, ledger.profile[NationFrance][ProfileBattlesLost])
	assert.Contains(t, ledger.achievements, "2:battles_won")
	assert.Contains(t, ledger.achievements, "4:battles_lost")
	assert.Len(t, ledger.newsFor(NationBritain, NewsBattle), 1)
	assert.Len(t, ledger.newsFor(NationFrance, NewsBattle), 1)
	assert.True(t, bb.HasLost)
	assert.False(t, a.HasLost)
}

func TestSiegeHoldsEndsFighting(t *testing.T) {
	var events []Event
	calls := map[PhaseID]int{}
	calc := CalculatorsFunc(func(id PhaseID, f *Field) Phase {
		calls[id]++
		if id == PhaseArtillery1 {
			return staged{id: points(0, 500)}.Phase(id, f)
		}
		return staged{id: points(1, 1)}.Phase(id, f)
	})
	b := newBattle(t, 1,
		[]*Battalion{infantry(1, NationAustria, 300)},
		[]*Battalion{infantry(2, NationFrance, 900)},
		nil, nil,
		WithSeed(11),
		WithCalculators(calc),
		WithEmitter(func(e Event) { events = append(events, e) }))

	res, err := b.Process()
	require.NoError(t, err)
	assert.Equal(t, WinnerSideA, res.Winner)
	for id := PhaseMorale1; id <= PhaseDisengageLongRange; id++ {
		_, ok := res.Record(id)
		assert.False(t, ok, id.String())
		assert.Zero(t, calls[id], id.String())
	}
	assert.Equal(t, []PhaseID{
		PhaseInit, PhaseArtillery1, PhaseArtillery2, PhaseWinner, PhaseFortress,
		PhaseExperience, PhaseCapture,
	}, res.Phases())
	assert.False(t, b.pursued)

	var held bool
	for _, e := range events {
		if e.Type == EventSiegeHeld {
			held = true
			assert.Equal(t, 501.0, e.Payload["points"])
			assert.Equal(t, 1000.0, e.Payload["threshold"])
		}
	}
	assert.True(t, held)
}

func TestSiegeBreachedSkipsCavalry(t *testing.T) {
	calc := staged{
		PhaseArtillery1: points(0, 600),
		PhaseArtillery2: points(0, 600),
		PhaseHandToHand: losses(50, 50),
		PhaseCavalry:    points(10, 10),
	}
	b := newBattle(t, 1,
		[]*Battalion{infantry(1, NationAustria, 800)},
		[]*Battalion{infantry(2, NationFrance, 800)},
		nil, nil, WithSeed(5), WithCalculators(calc))

	res, err := b.Process()
	require.NoError(t, err)
	_, ok := res.Record(PhaseHandToHand)
	assert.True(t, ok)
	_, ok = res.Record(PhaseCavalry)
	assert.False(t, ok)
	_, ok = res.Record(PhaseMorale3)
	assert.True(t, ok)
}

func TestBreachThreshold(t *testing.T) {
	assert.Equal(t, 0.0, BreachThreshold(0))
	assert.Equal(t, 1000.0, BreachThreshold(1))
	assert.Equal(t, 2000.0, BreachThreshold(2))
	assert.Equal(t, 4000.0, BreachThreshold(3))
	assert.Equal(t, 8000.0, BreachThreshold(4))
	assert.Equal(t, 0.0, BreachThreshold(5))
}

func TestEveryPhaseRecordedInOrder(t *testing.T) {
	calc := staged{}
	for _, id := range []PhaseID{
		PhaseArtillery1, PhaseArtillery2, PhaseSkirmish, PhaseTroopLongRange,
		PhaseCavalry, PhaseDisengageHandToHand, PhaseDisengageLongRange, PhasePursuit,
	} {
		calc[id] = points(1, 1)
	}
	calc[PhaseHandToHand] = losses(50, 600)
	b := newBattle(t, 0,
		[]*Battalion{infantry(1, NationBritain, 1000)},
		[]*Battalion{infantry(2, NationFrance, 1000)},
		nil, nil, WithSeed(9), WithCalculators(calc))

	res, err := b.Process()
	require.NoError(t, err)
	require.Len(t, res.Records, int(phaseCount))
	for i, rec := range res.Records {
		assert.Equal(t, PhaseID(i), rec.Phase)
	}
	assert.True(t, b.pursued)
}

func TestNewNormalizesRoster(t *testing.T) {
	big := infantry(1, NationBritain, 1500)
	big.Fleeing = true
	big.Experience = 20
	neg := infantry(2, NationBritain, -5)
	neg.Experience = 0
	untyped := &Battalion{ID: 3, Headcount: 200, Experience: 9, CorpsID: 8}
	dead := commander(1, NationFrance, 1, 5)
	dead.Dead = true

	b := newBattle(t, 0, []*Battalion{big, nil, neg, untyped}, []*Battalion{infantry(4, NationFrance, 100)}, nil, dead)

	assert.Len(t, b.Side(0).Battalions, 3)
	assert.Equal(t, MaxHeadcount, big.Headcount)
	assert.Equal(t, MaxHeadcount, big.Initial)
	assert.False(t, big.Fleeing)
	assert.Equal(t, 7, big.Experience)
	assert.Equal(t, 0, neg.Headcount)
	assert.Equal(t, MinExperience, neg.Experience)
	assert.Equal(t, 7, untyped.Experience)
	assert.Equal(t, ArmInfantry, untyped.Arm())
	assert.Equal(t, []int{NationBritain}, b.Side(0).Nations)
	assert.Equal(t, []int{8}, b.Side(0).Corps)
	assert.Nil(t, b.Side(1).Commander)
	assert.Equal(t, []int{NationFrance}, b.Side(1).Nations)
}

func TestNewRejectsBadInput(t *testing.T) {
	a := []*Battalion{infantry(1, NationBritain, 100)}
	loc := Location{Terrain: TerrainArable}

	_, err := New(loc, 0, nil, a, nil, nil)
	assert.ErrorIs(t, err, ErrEmptySide)
	_, err = New(loc, 0, a, []*Battalion{nil}, nil, nil)
	assert.ErrorIs(t, err, ErrEmptySide)
	_, err = New(loc, 5, a, a, nil, nil)
	assert.ErrorIs(t, err, ErrFortressLevel)
	_, err = New(loc, -1, a, a, nil, nil)
	assert.ErrorIs(t, err, ErrFortressLevel)
}

func TestProcessOnlyOnce(t *testing.T) {
	b := newBattle(t, 0,
		[]*Battalion{infantry(1, NationBritain, 100)},
		[]*Battalion{infantry(2, NationFrance, 100)},
		nil, nil, WithSeed(1))
	_, err := b.Process()
	require.NoError(t, err)
	_, err = b.Process()
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestPhaseMismatch(t *testing.T) {
	calc := CalculatorsFunc(func(id PhaseID, f *Field) Phase {
		if id != PhaseSkirmish {
			return nil
		}
		return PhaseFunc(func() StatisticsRecord { return f.NewRecord(PhaseTroopLongRange) })
	})
	b := newBattle(t, 0,
		[]*Battalion{infantry(1, NationBritain, 100)},
		[]*Battalion{infantry(2, NationFrance, 100)},
		nil, nil, WithSeed(1), WithCalculators(calc))
	_, err := b.Process()
	assert.ErrorIs(t, err, ErrPhaseMismatch)
}

func TestMirroredSidesMirrorWinner(t *testing.T) {
	// Casualties follow the battalion, whichever side it stands on.
	loss := map[int]int{1: 80, 2: 600}
	calc := staged{PhaseHandToHand: func(f *Field, rec *StatisticsRecord) {
		for side, s := range f.Sides {
			bt := s.Battalions[0]
			bt.Headcount -= loss[bt.ID]
			rec.Metrics[side][MetricCasualties] = float64(loss[bt.ID])
		}
	}}

	run := func(a, b *Battalion) Winner {
		bt := newBattle(t, 0, []*Battalion{a}, []*Battalion{b}, nil, nil,
			WithSeed(2), WithCalculators(calc))
		res, err := bt.Process()
		require.NoError(t, err)
		return res.Winner
	}
	assert.Equal(t, WinnerSideA, run(infantry(1, NationBritain, 900), infantry(2, NationFrance, 900)))
	assert.Equal(t, WinnerSideB, run(infantry(2, NationFrance, 900), infantry(1, NationBritain, 900)))
}

func TestSameSeedSameBattle(t *testing.T) {
	calc := staged{
		PhaseTroopLongRange: func(f *Field, rec *StatisticsRecord) {
			for side, s := range f.Sides {
				n := f.Rand.Intn(400)
				s.Battalions[0].Headcount -= n
				rec.Metrics[side][MetricCasualties] = float64(n)
			}
		},
	}
	run := func() (Result, []*Battalion, *Commander) {
		a := []*Battalion{infantry(1, NationFrance, 800), infantry(2, NationFrance, 600)}
		bs := []*Battalion{infantry(3, NationRussia, 900)}
		cmd := commander(1, NationFrance, 2, 34)
		b := newBattle(t, 0, a, bs, cmd, commander(2, NationRussia, 1, 10),
			WithSeed(42), WithCalculators(calc))
		res, err := b.Process()
		require.NoError(t, err)
		return res, append(a, bs...), cmd
	}

	res1, bats1, cmd1 := run()
	res2, bats2, cmd2 := run()
	assert.Equal(t, res1, res2)
	assert.Equal(t, bats1, bats2)
	assert.Equal(t, cmd1, cmd2)
}

func TestEphemeralBattleLeavesNoTrace(t *testing.T) {
	ledger := newRecordingLedger()
	b := newBattle(t, 0,
		[]*Battalion{infantry(1, NationBritain, 1000)},
		[]*Battalion{infantry(2, NationFrance, 1000)},
		commander(1, NationBritain, 5, 89), commander(2, NationFrance, 1, 1),
		WithLedger(ledger),
		WithRand(&script{ints: []int{99, 99, 0, 99, 0}}),
		WithCalculators(staged{PhaseHandToHand: losses(100, 700)}))

	res, err := b.Process()
	require.NoError(t, err)
	assert.Equal(t, WinnerSideA, res.Winner)
	assert.Zero(t, ledger.calls)
}

func TestFortressDefendedBonus(t *testing.T) {
	for _, tc := range []struct {
		level  int
		bonus  int
		global int
	}{
		{level: 2, bonus: 0},
		{level: 3, bonus: 6},
		{level: 4, bonus: 10, global: 1},
	} {
		ledger := newRecordingLedger()
		b := newBattle(t, tc.level,
			[]*Battalion{infantry(1, NationAustria, 300)},
			[]*Battalion{infantry(2, NationFrance, 900)},
			nil, nil, WithGame(liveGame), WithLedger(ledger), WithRand(&script{}))

		res, err := b.Process()
		require.NoError(t, err)
		assert.Equal(t, WinnerSideA, res.Winner)
		assert.Equal(t, VPBattlePerCorps+tc.bonus, ledger.vp[NationAustria], "level %d", tc.level)
		assert.Len(t, ledger.global, tc.global)
		if tc.bonus > 0 {
			assert.Equal(t, 1, ledger.profile[NationAustria][ProfileFortressDefended])
			assert.Len(t, ledger.newsFor(NationAustria, NewsFortress), 1)
		}
	}
}

func TestDrawCountsForBothSides(t *testing.T) {
	ledger := newRecordingLedger()
	b := newBattle(t, 0,
		[]*Battalion{infantry(1, NationBritain, 500), infantry(2, NationPortugal, 500)},
		[]*Battalion{infantry(3, NationFrance, 1000)},
		nil, nil, WithGame(liveGame), WithLedger(ledger), WithRand(&script{}))

	res, err := b.Process()
	require.NoError(t, err)
	assert.Equal(t, WinnerNone, res.Winner)
	for _, n := range []int{NationBritain, NationPortugal, NationFrance} {
		assert.Equal(t, 1, ledger.profile[n][ProfileBattlesDraw])
		assert.Len(t, ledger.newsFor(n, NewsBattle), 1)
	}
	assert.Empty(t, ledger.vp)
}

func TestResultMarshalsPretty(t *testing.T) {
	b := newBattle(t, 0,
		[]*Battalion{infantry(1, NationBritain, 100)},
		[]*Battalion{infantry(2, NationFrance, 100)},
		nil, nil, WithSeed(1))
	res, err := b.Process()
	require.NoError(t, err)
	out := string(MarshalPretty(res))
	assert.Contains(t, out, `"winner": -1`)
	assert.Contains(t, out, `"records"`)
}

func TestFortressCheckNamedInTrace(t *testing.T) {
	var events []Event
	calc := staged{
		PhaseArtillery1: points(0, 1500),
		PhaseHandToHand: losses(50, 50),
		PhaseFortress:   points(0, 1500),
	}
	b := newBattle(t, 1,
		[]*Battalion{infantry(1, NationAustria, 800)},
		[]*Battalion{infantry(2, NationFrance, 800)},
		nil, nil, WithSeed(5), WithCalculators(calc),
		WithEmitter(func(e Event) { events = append(events, e) }))

	res, err := b.Process()
	require.NoError(t, err)
	_, ok := res.Record(PhaseFortress)
	require.True(t, ok)

	var names []any
	for _, e := range events {
		if e.Type == EventPhase && e.Phase == PhaseFortress {
			names = append(names, e.Payload["name"])
		}
	}
	assert.Equal(t, []any{"fortress_check"}, names)
	assert.Equal(t, "fortress_check", b.Field().PhaseName(PhaseFortress))
	assert.Equal(t, "hand_to_hand", b.Field().PhaseName(PhaseHandToHand))

	open := newBattle(t, 0,
		[]*Battalion{infantry(3, NationAustria, 800)},
		[]*Battalion{infantry(4, NationFrance, 800)},
		nil, nil)
	assert.Equal(t, "pursuit", open.Field().PhaseName(PhasePursuit))
}
