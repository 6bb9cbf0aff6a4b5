package battle

// Nation ids of the default catalogue.
const (
	NationAustria = iota + 1
	NationBritain
	NationSpain
	NationFrance
	NationPrussia
	NationRussia
	NationPortugal
	NationSweden
	NationOttoman
	NationNaples
	NationHolland
	NationDenmark
)

// DefaultNations is the catalogue used when none is configured.
func DefaultNations() Nations {
	return Nations{
		NationAustria:  {ID: NationAustria, Name: "Austria", Code: "A", Sphere: "NW"},
		NationBritain:  {ID: NationBritain, Name: "Great Britain", Code: "G", Sphere: "LH"},
		NationSpain:    {ID: NationSpain, Name: "Spain", Code: "E", Sphere: "L"},
		NationFrance:   {ID: NationFrance, Name: "France", Code: "F", Sphere: "HNW", Militaristic: true},
		NationPrussia:  {ID: NationPrussia, Name: "Prussia", Code: "P", Sphere: "DW", Militaristic: true},
		NationRussia:   {ID: NationRussia, Name: "Russia", Code: "R", Sphere: "WT", Militaristic: true},
		NationPortugal: {ID: NationPortugal, Name: "Portugal", Code: "L", Sphere: ""},
		NationSweden:   {ID: NationSweden, Name: "Sweden", Code: "S", Sphere: "D"},
		NationOttoman:  {ID: NationOttoman, Name: "Ottoman Empire", Code: "T", Sphere: "R"},
		NationNaples:   {ID: NationNaples, Name: "Naples", Code: "N", Sphere: ""},
		NationHolland:  {ID: NationHolland, Name: "Holland", Code: "H", Sphere: ""},
		NationDenmark:  {ID: NationDenmark, Name: "Denmark", Code: "D", Sphere: "S"},
	}
}

// DefaultRanks is the rank ladder used when none is configured.
func DefaultRanks() RankTable {
	return RankTable{
		{ID: 1, Name: "Brigadier General", Strength: 1, MaxCapability: 20},
		{ID: 2, Name: "Major General", Strength: 2, MaxCapability: 35},
		{ID: 3, Name: "Lieutenant General", Strength: 3, MaxCapability: 50},
		{ID: 4, Name: "General", Strength: 4, MaxCapability: 70},
		{ID: 5, Name: "Field Marshal", Strength: 5, MaxCapability: 90},
	}
}
