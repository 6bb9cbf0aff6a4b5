package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureBattle(t *testing.T, src *script, winners []*Battalion, ledger Ledger) (*Battle, *Commander, *Commander) {
	t.Helper()
	won := commander(1, NationBritain, 2, 20)
	lost := commander(2, NationFrance, 2, 20)
	b := newBattle(t, 0, winners, []*Battalion{infantry(9, NationFrance, 600)}, won, lost,
		WithGame(liveGame), WithLedger(ledger), WithRand(src))
	return b, won, lost
}

func TestCaptureChanceCountsSteadyLightCavalry(t *testing.T) {
	small := lightCavalry(3, NationBritain, 399)
	fleeing := lightCavalry(4, NationBritain, 800)
	s := newSide(0, []*Battalion{
		infantry(1, NationBritain, 900),
		lightCavalry(2, NationBritain, 400),
		small,
		fleeing,
	}, nil)
	fleeing.Fleeing = true
	assert.Equal(t, BaseCaptureChance+1, CaptureChance(s))
}

func TestLoserCommanderKilled(t *testing.T) {
	ledger := newRecordingLedger()
	b, won, lost := captureBattle(t, &script{ints: []int{7}},
		[]*Battalion{infantry(1, NationBritain, 900), infantry(2, NationPortugal, 500)}, ledger)

	rec := b.resolveCommanders(WinnerSideA, false)
	assert.Equal(t, 1.0, rec.Metrics[1][MetricKilled])
	assert.True(t, lost.Dead)
	assert.Zero(t, lost.ArmyID)
	assert.Zero(t, lost.CorpsID)
	assert.Zero(t, lost.Carrier)
	assert.False(t, won.Dead)

	assert.Equal(t, -VPCommanderKilled, ledger.vp[NationFrance])
	assert.Equal(t, VPCommanderKilled, ledger.vp[NationBritain])
	assert.Equal(t, VPCommanderKilled, ledger.vp[NationPortugal])
	assert.Equal(t, 1, ledger.profile[NationPortugal][ProfileKilledCommanders])
	assert.Len(t, ledger.newsFor(NationFrance, NewsCommander), 2)
}

func TestLoserCommanderCapturedWhenArmyDestroyed(t *testing.T) {
	ledger := newRecordingLedger()
	winners := []*Battalion{
		infantry(1, NationBritain, 900),
		lightCavalry(2, NationBritain, 500),
		lightCavalry(3, NationPortugal, 450),
	}
	// death roll misses, capture roll 4 < 5, captor index 1
	b, won, lost := captureBattle(t, &script{ints: []int{8, 4, 1}}, winners, ledger)
	b.Side(1).Battalions[0].Headcount = 0

	rec := b.resolveCommanders(WinnerSideA, true)
	assert.Equal(t, 5.0, rec.Metrics[0][MetricChance])
	assert.Equal(t, 1.0, rec.Metrics[1][MetricCaptured])
	assert.False(t, lost.Dead)
	assert.Equal(t, NationPortugal, lost.CapturedBy)
	assert.Zero(t, lost.ArmyID)
	assert.False(t, won.Dead)
	assert.Len(t, ledger.newsFor(NationPortugal, NewsCommander), 1)
	assert.Empty(t, ledger.vp)
}

func TestPursuitHalvesCaptureChance(t *testing.T) {
	winners := []*Battalion{
		infantry(1, NationBritain, 900),
		lightCavalry(2, NationBritain, 500),
		lightCavalry(3, NationBritain, 450),
	}
	b, _, lost := captureBattle(t, &script{ints: []int{8, 2}}, winners, newRecordingLedger())

	rec := b.resolveCommanders(WinnerSideA, true)
	assert.Equal(t, 2.0, rec.Metrics[0][MetricChance])
	assert.Zero(t, rec.Metrics[1][MetricCaptured])
	assert.Zero(t, lost.CapturedBy)
}

func TestCaptureChanceWithoutPursuit(t *testing.T) {
	b, _, lost := captureBattle(t, &script{ints: []int{8, 2, 0}},
		[]*Battalion{infantry(1, NationBritain, 900)}, newRecordingLedger())

	rec := b.resolveCommanders(WinnerSideA, false)
	assert.Equal(t, float64(BaseCaptureChance), rec.Metrics[0][MetricChance])
	assert.Equal(t, NationBritain, lost.CapturedBy)
}

func TestWinnerCommanderMayFall(t *testing.T) {
	ledger := newRecordingLedger()
	b, won, lost := captureBattle(t, &script{ints: []int{99, 99, 1}},
		[]*Battalion{infantry(1, NationBritain, 900)}, ledger)

	rec := b.resolveCommanders(WinnerSideA, false)
	assert.Equal(t, 1.0, rec.Metrics[0][MetricKilled])
	assert.True(t, won.Dead)
	assert.False(t, lost.Dead)
	assert.Zero(t, lost.CapturedBy)
	assert.Equal(t, VPCommanderKilled, ledger.vp[NationFrance])
	assert.Equal(t, -VPCommanderKilled, ledger.vp[NationBritain])
}

func TestUndecidedBattleRollsBothCommanders(t *testing.T) {
	ledger := newRecordingLedger()
	b, a, bb := captureBattle(t, &script{ints: []int{1, 50}},
		[]*Battalion{infantry(1, NationBritain, 600)}, ledger)

	rec := b.resolveCommanders(WinnerNone, false)
	assert.Equal(t, 1.0, rec.Metrics[0][MetricKilled])
	assert.Zero(t, rec.Metrics[1][MetricKilled])
	assert.True(t, a.Dead)
	assert.False(t, bb.Dead)
	assert.Zero(t, bb.CapturedBy)
}

func TestCommanderFateInProcess(t *testing.T) {
	ledger := newRecordingLedger()
	won := commander(1, NationBritain, 1, 5)
	lost := commander(2, NationFrance, 1, 5)
	// experience rolls, skill gain, loser death roll
	src := &script{ints: []int{99, 99, 0, 0}}
	b := newBattle(t, 0,
		[]*Battalion{infantry(1, NationBritain, 1000)},
		[]*Battalion{infantry(2, NationFrance, 1000)},
		won, lost,
		WithGame(liveGame), WithLedger(ledger), WithRand(src),
		WithCalculators(staged{PhaseHandToHand: losses(100, 700)}))

	res, err := b.Process()
	require.NoError(t, err)
	rec, ok := res.Record(PhaseCapture)
	require.True(t, ok)
	assert.Equal(t, 1.0, rec.Metrics[1][MetricKilled])
	assert.True(t, lost.Dead)
	assert.Equal(t, 6, won.Capability)
}

func TestDrawStillRollsCommanderDeath(t *testing.T) {
	ledger := newRecordingLedger()
	a := commander(1, NationBritain, 1, 5)
	bb := commander(2, NationFrance, 1, 5)
	// two experience rolls, then death rolls for A and B
	src := &script{ints: []int{99, 99, 0, 50}}
	b := newBattle(t, 0,
		[]*Battalion{infantry(1, NationBritain, 500)},
		[]*Battalion{infantry(2, NationFrance, 500)},
		a, bb,
		WithGame(liveGame), WithLedger(ledger), WithRand(src))

	res, err := b.Process()
	require.NoError(t, err)
	assert.Equal(t, WinnerNone, res.Winner)
	_, ok := res.Record(PhaseCapture)
	assert.False(t, ok)
	assert.NotContains(t, res.Phases(), PhaseCapture)

	assert.True(t, a.Dead)
	assert.Zero(t, a.ArmyID)
	assert.False(t, bb.Dead)
	assert.Equal(t, -VPCommanderKilled, ledger.vp[NationBritain])
	assert.Equal(t, VPCommanderKilled, ledger.vp[NationFrance])
	assert.Equal(t, 1, ledger.profile[NationFrance][ProfileKilledCommanders])
}
