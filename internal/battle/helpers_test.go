package battle

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// script replays fixed rolls. Once exhausted every Intn returns n-1 and
// every Float64 returns 0.99, so percent rolls fail.
type script struct {
	ints   []int
	floats []float64
}

func (s *script) Intn(n int) int {
	if len(s.ints) == 0 {
		return n - 1
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *script) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.99
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

type newsEntry struct {
	Nation int
	Kind   NewsKind
	Text   string
}

type recordingLedger struct {
	vp           map[int]int
	profile      map[int]map[ProfileKey]int
	news         []newsEntry
	global       []string
	achievements []string
	population   map[int]int
	calls        int
}

func newRecordingLedger() *recordingLedger {
	return &recordingLedger{
		vp:         map[int]int{},
		profile:    map[int]map[ProfileKey]int{},
		population: map[int]int{},
	}
}

func (l *recordingLedger) ChangeVictoryPoints(nation, delta int, _ string) {
	l.calls++
	l.vp[nation] += delta
}

func (l *recordingLedger) ChangeProfile(nation int, key ProfileKey, delta int) {
	l.calls++
	if l.profile[nation] == nil {
		l.profile[nation] = map[ProfileKey]int{}
	}
	l.profile[nation][key] += delta
}

func (l *recordingLedger) News(nation int, kind NewsKind, text string) {
	l.calls++
	l.news = append(l.news, newsEntry{nation, kind, text})
}

func (l *recordingLedger) PairNews(nation, other int, kind NewsKind, text, otherText string) {
	l.calls++
	l.news = append(l.news, newsEntry{nation, kind, text}, newsEntry{other, kind, otherText})
}

func (l *recordingLedger) GlobalNews(_ NewsKind, text string) {
	l.calls++
	l.global = append(l.global, text)
}

func (l *recordingLedger) CheckAchievements(nation int, key ProfileKey) {
	l.calls++
	l.achievements = append(l.achievements, fmt.Sprintf("%d:%s", nation, key))
}

func (l *recordingLedger) ReturnPopulation(nation, amount int) {
	l.calls++
	l.population[nation] += amount
}

func (l *recordingLedger) newsFor(nation int, kind NewsKind) []string {
	var out []string
	for _, n := range l.news {
		if n.Nation == nation && n.Kind == kind {
			out = append(out, n.Text)
		}
	}
	return out
}

// staged runs the given hooks for their phases and has no processor for the
// rest.
type staged map[PhaseID]func(f *Field, rec *StatisticsRecord)

func (s staged) Phase(id PhaseID, f *Field) Phase {
	fn, ok := s[id]
	if !ok {
		return nil
	}
	return PhaseFunc(func() StatisticsRecord {
		rec := f.NewRecord(id)
		fn(f, &rec)
		return rec
	})
}

// losses records casualties for both sides and takes them off the first
// battalion of each.
func losses(a, b int) func(*Field, *StatisticsRecord) {
	return func(f *Field, rec *StatisticsRecord) {
		for side, n := range [2]int{a, b} {
			bt := f.Sides[side].Battalions[0]
			n = min(n, bt.Headcount)
			bt.Headcount -= n
			rec.Metrics[side][MetricCasualties] = float64(n)
		}
	}
}

func points(a, b float64) func(*Field, *StatisticsRecord) {
	return func(_ *Field, rec *StatisticsRecord) {
		rec.Metrics[0][MetricPoints] = a
		rec.Metrics[1][MetricPoints] = b
	}
}

func infantry(id, nation, headcount int) *Battalion {
	return &Battalion{
		ID:         id,
		Type:       &TroopType{ID: 1, Name: "Line Infantry", Arm: ArmInfantry, MaxExperience: 5, Nation: nation},
		Headcount:  headcount,
		Experience: 1,
	}
}

func lightCavalry(id, nation, headcount int) *Battalion {
	return &Battalion{
		ID:         id,
		Type:       &TroopType{ID: 2, Name: "Hussars", Arm: ArmCavalry, LightCavalry: true, MaxExperience: 5, Nation: nation},
		Headcount:  headcount,
		Experience: 1,
	}
}

func commander(id, nation, rank, capability int) *Commander {
	return &Commander{
		ID:         id,
		Name:       fmt.Sprintf("General %d", id),
		Nation:     nation,
		Rank:       DefaultRanks().ByID(rank),
		Capability: capability,
		ArmyID:     10 + id,
		CorpsID:    20 + id,
		Carrier:    30 + id,
	}
}

var liveGame = Game{ID: 7, Turn: 12, Scenario: "1805"}

func newBattle(t *testing.T, fortress int, a, b []*Battalion, cmdA, cmdB *Commander, opts ...Option) *Battle {
	t.Helper()
	bt, err := New(Location{X: 3, Y: 4, Region: RegionEurope, Terrain: TerrainArable}, fortress, a, b, cmdA, cmdB, opts...)
	require.NoError(t, err)
	return bt
}
