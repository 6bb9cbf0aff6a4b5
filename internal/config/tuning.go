package config

// TuningConfig holds the numbers the default phase calculators work with.
type TuningConfig struct {
	// Fire is keyed by phase name, for example "hand_to_hand".
	Fire     map[string]FireTuning `yaml:"fire"`
	Pursuit  FireTuning            `yaml:"pursuit"`
	Morale   MoraleTuning          `yaml:"morale"`
	Fortress FortressTuning        `yaml:"fortress"`

	ExperienceBonus float64 `yaml:"experience_bonus"`
	FortressCover   float64 `yaml:"fortress_cover"`
	Variance        float64 `yaml:"variance"`
}

// FireTuning gives combat points per man by arm name, and casualties caused
// per combat point.
type FireTuning struct {
	Rates     map[string]float64 `yaml:"rates"`
	Lethality float64            `yaml:"lethality"`
}

type MoraleTuning struct {
	// Thresholds is the share of its men a battalion may lose before it
	// risks routing, keyed by phase name.
	Thresholds     map[string]float64 `yaml:"thresholds"`
	ExperienceStep float64            `yaml:"experience_step"`
	BaseRout       float64            `yaml:"base_rout"`
	RoutScale      float64            `yaml:"rout_scale"`

	// Strains lower the threshold of battalions fighting away from home.
	InfluencedStrain float64 `yaml:"influenced_strain"`
	ForeignStrain    float64 `yaml:"foreign_strain"`
}

type FortressTuning struct {
	PointsPerCondition float64 `yaml:"points_per_condition"`
	ConditionPerLevel  int     `yaml:"condition_per_level"`
}

func DefaultTuning() *TuningConfig {
	return &TuningConfig{
		Fire: map[string]FireTuning{
			"artillery_long_range_1": {Rates: map[string]float64{"artillery": 2.0, "mounted_artillery": 1.6}, Lethality: 0.05},
			"artillery_long_range_2": {Rates: map[string]float64{"artillery": 2.0, "mounted_artillery": 1.6}, Lethality: 0.05},
			"skirmish_long_range":    {Rates: map[string]float64{"infantry": 0.8}, Lethality: 0.06},
			"troop_long_range":       {Rates: map[string]float64{"infantry": 1.0}, Lethality: 0.06},
			"hand_to_hand":           {Rates: map[string]float64{"infantry": 1.2, "cavalry": 1.5, "artillery": 0.3, "mounted_artillery": 0.3}, Lethality: 0.1},
			"cavalry_hand_to_hand":   {Rates: map[string]float64{"cavalry": 1.5}, Lethality: 0.12},
			"disengage_hand_to_hand": {Rates: map[string]float64{"infantry": 0.4, "cavalry": 0.6}, Lethality: 0.08},
			"disengage_long_range":   {Rates: map[string]float64{"infantry": 0.5, "artillery": 1.0, "mounted_artillery": 0.8}, Lethality: 0.05},
		},
		Pursuit: FireTuning{Rates: map[string]float64{"cavalry": 1.0}, Lethality: 0.1},
		Morale: MoraleTuning{
			Thresholds: map[string]float64{
				"morale_1":       0.1,
				"morale_2":       0.15,
				"morale_3":       0.2,
				"morale_cavalry": 0.25,
			},
			ExperienceStep:   0.03,
			BaseRout:         0.2,
			RoutScale:        2.0,
			InfluencedStrain: 0.02,
			ForeignStrain:    0.05,
		},
		Fortress: FortressTuning{PointsPerCondition: 100, ConditionPerLevel: 100},

		ExperienceBonus: 0.1,
		FortressCover:   0.25,
		Variance:        0.1,
	}
}
