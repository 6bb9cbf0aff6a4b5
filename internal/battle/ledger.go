package battle

// ProfileKey names a per-nation counter kept by the bookkeeping.
type ProfileKey string

const (
	ProfileBattlesWon       ProfileKey = "battles_won"
	ProfileBattlesLost      ProfileKey = "battles_lost"
	ProfileBattlesDraw      ProfileKey = "battles_draw"
	ProfileKilledCommanders ProfileKey = "killed_enemy_commanders"
	ProfileFortressDefended ProfileKey = "fortress_defended"
)

type NewsKind string

const (
	NewsBattle     NewsKind = "battle"
	NewsCommander  NewsKind = "commander"
	NewsFortress   NewsKind = "fortress"
	NewsPopulation NewsKind = "population"
)

// Victory point awards.
const (
	VPBattlePerCorps    = 2
	VPBattleCap         = 12
	VPCommanderKilled   = 3
	VPCommanderMaxSkill = 2
)

// vpFortressDefended is indexed by fortress level.
var vpFortressDefended = [5]int{0, 0, 0, 6, 10}

// Ledger receives the bookkeeping side effects of a battle. Calls are
// fire-and-forget: implementations deal with their own failures.
type Ledger interface {
	ChangeVictoryPoints(nation, delta int, reason string)
	ChangeProfile(nation int, key ProfileKey, delta int)
	News(nation int, kind NewsKind, text string)
	PairNews(nation, other int, kind NewsKind, text, otherText string)
	GlobalNews(kind NewsKind, text string)
	CheckAchievements(nation int, key ProfileKey)
	ReturnPopulation(nation, amount int)
}

// NopLedger discards everything. Ephemeral battles always use it.
type NopLedger struct{}

func (NopLedger) ChangeVictoryPoints(int, int, string)        {}
func (NopLedger) ChangeProfile(int, ProfileKey, int)          {}
func (NopLedger) News(int, NewsKind, string)                  {}
func (NopLedger) PairNews(int, int, NewsKind, string, string) {}
func (NopLedger) GlobalNews(NewsKind, string)                 {}
func (NopLedger) CheckAchievements(int, ProfileKey)           {}
func (NopLedger) ReturnPopulation(int, int)                   {}

