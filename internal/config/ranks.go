package config

import (
	"fmt"

	"fieldbattle/internal/battle"
)

type RanksConfig struct {
	Ranks []RankDef `yaml:"ranks"`
}

type RankDef struct {
	ID            int    `yaml:"id"`
	Name          string `yaml:"name"`
	Strength      int    `yaml:"strength"`
	MaxCapability int    `yaml:"max_capability"`
}

// Table returns the ladder in file order, lowest rank first.
func (c RanksConfig) Table() (battle.RankTable, error) {
	seen := map[int]bool{}
	out := make(battle.RankTable, 0, len(c.Ranks))
	for i, r := range c.Ranks {
		if r.ID <= 0 {
			return nil, fmt.Errorf("rank #%d: %w", i, ErrMissingID)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("rank %d: %w", r.ID, ErrDuplicateID)
		}
		seen[r.ID] = true
		out = append(out, battle.Rank{ID: r.ID, Name: r.Name, Strength: r.Strength, MaxCapability: r.MaxCapability})
	}
	return out, nil
}
