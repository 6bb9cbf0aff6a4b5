package config

import (
	"errors"
	"fmt"
	"strings"

	"fieldbattle/internal/battle"
)

var ErrUnknownArm = errors.New("unknown arm")

type TroopsConfig struct {
	Troops []TroopDef `yaml:"troops"`
}

type TroopDef struct {
	ID            int    `yaml:"id"`
	Name          string `yaml:"name"`
	Arm           string `yaml:"arm"`
	Skirmisher    bool   `yaml:"skirmisher"`
	LightCavalry  bool   `yaml:"light_cavalry"`
	MaxExperience int    `yaml:"max_experience"`
	Nation        int    `yaml:"nation"`
}

// ParseArm maps an arm name as written in the data files.
func ParseArm(s string) (battle.Arm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "infantry", "":
		return battle.ArmInfantry, nil
	case "cavalry":
		return battle.ArmCavalry, nil
	case "artillery":
		return battle.ArmArtillery, nil
	case "mounted_artillery", "horse_artillery":
		return battle.ArmMountedArtillery, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownArm, s)
}

func (c TroopsConfig) Types() (map[int]*battle.TroopType, error) {
	out := make(map[int]*battle.TroopType, len(c.Troops))
	for i, t := range c.Troops {
		if t.ID <= 0 {
			return nil, fmt.Errorf("troop #%d: %w", i, ErrMissingID)
		}
		if _, dup := out[t.ID]; dup {
			return nil, fmt.Errorf("troop %d: %w", t.ID, ErrDuplicateID)
		}
		arm, err := ParseArm(t.Arm)
		if err != nil {
			return nil, fmt.Errorf("troop %d: %w", t.ID, err)
		}
		maxExp := t.MaxExperience
		if maxExp <= 0 {
			maxExp = battle.DefaultMaxExperience
		}
		out[t.ID] = &battle.TroopType{
			ID:            t.ID,
			Name:          t.Name,
			Arm:           arm,
			Skirmisher:    t.Skirmisher,
			LightCavalry:  t.LightCavalry,
			MaxExperience: maxExp,
			Nation:        t.Nation,
		}
	}
	return out, nil
}

// DefaultTroops is a small generic catalogue: one line, light infantry,
// hussar, dragoon, foot battery and horse battery type per default nation.
// Type ids are nation*10 + kind.
func DefaultTroops() map[int]*battle.TroopType {
	kinds := []TroopDef{
		{ID: 1, Name: "Line Infantry", Arm: "infantry"},
		{ID: 2, Name: "Light Infantry", Arm: "infantry", Skirmisher: true},
		{ID: 3, Name: "Hussars", Arm: "cavalry", LightCavalry: true},
		{ID: 4, Name: "Dragoons", Arm: "cavalry"},
		{ID: 5, Name: "Foot Artillery", Arm: "artillery"},
		{ID: 6, Name: "Horse Artillery", Arm: "mounted_artillery"},
	}
	var cfg TroopsConfig
	for nation := range battle.DefaultNations() {
		for _, k := range kinds {
			k.ID = nation*10 + k.ID
			k.Nation = nation
			cfg.Troops = append(cfg.Troops, k)
		}
	}
	out, err := cfg.Types()
	if err != nil {
		panic(err)
	}
	return out
}
