package config

import (
	"errors"
	"fmt"

	"fieldbattle/internal/battle"
)

var (
	ErrDuplicateID = errors.New("duplicate id")
	ErrMissingID   = errors.New("missing id")
)

type NationsConfig struct {
	Nations []NationDef `yaml:"nations"`
}

type NationDef struct {
	ID           int    `yaml:"id"`
	Name         string `yaml:"name"`
	Code         string `yaml:"code"`
	Sphere       string `yaml:"sphere"`
	Militaristic bool   `yaml:"militaristic"`
}

func (c NationsConfig) Catalogue() (battle.Nations, error) {
	out := battle.Nations{}
	for i, n := range c.Nations {
		if n.ID <= 0 {
			return nil, fmt.Errorf("nation #%d: %w", i, ErrMissingID)
		}
		if _, dup := out[n.ID]; dup {
			return nil, fmt.Errorf("nation %d: %w", n.ID, ErrDuplicateID)
		}
		out[n.ID] = battle.Nation{
			ID:           n.ID,
			Name:         n.Name,
			Code:         n.Code,
			Sphere:       n.Sphere,
			Militaristic: n.Militaristic,
		}
	}
	return out, nil
}
