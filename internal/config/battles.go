package config

import (
	"errors"
	"fmt"
	"strings"

	"fieldbattle/internal/battle"
)

var (
	ErrUnknownRegion    = errors.New("unknown region")
	ErrUnknownTroopType = errors.New("unknown troop type")
	ErrUnknownRank      = errors.New("unknown rank")
)

type BattlesConfig struct {
	Battles []BattleDef `yaml:"battles"`
}

// BattleDef describes one battle to resolve. A game id of 0 resolves it as
// an ephemeral battle.
type BattleDef struct {
	Name     string      `yaml:"name"`
	Seed     int64       `yaml:"seed"`
	Game     GameDef     `yaml:"game"`
	Location LocationDef `yaml:"location"`
	Fortress int         `yaml:"fortress"`
	SideA    SideDef     `yaml:"side_a"`
	SideB    SideDef     `yaml:"side_b"`
}

type GameDef struct {
	ID       int    `yaml:"id"`
	Turn     int    `yaml:"turn"`
	Scenario string `yaml:"scenario"`
}

type LocationDef struct {
	X       int      `yaml:"x"`
	Y       int      `yaml:"y"`
	Region  string   `yaml:"region"`
	Terrain string   `yaml:"terrain"`
	Sphere  string   `yaml:"sphere"`
	Fort    *FortDef `yaml:"fort"`
}

type FortDef struct {
	Level     int `yaml:"level"`
	Condition int `yaml:"condition"`
}

type SideDef struct {
	Commander  *CommanderDef  `yaml:"commander"`
	Battalions []BattalionDef `yaml:"battalions"`
}

type CommanderDef struct {
	ID         int    `yaml:"id"`
	Name       string `yaml:"name"`
	Nation     int    `yaml:"nation"`
	Rank       int    `yaml:"rank"`
	Capability int    `yaml:"capability"`
	Army       int    `yaml:"army"`
	Corps      int    `yaml:"corps"`
	Carrier    int    `yaml:"carrier"`
	Dead       bool   `yaml:"dead"`
}

// BattalionDef is one battalion, or Count identical ones with consecutive
// ids starting at ID.
type BattalionDef struct {
	ID         int `yaml:"id"`
	Type       int `yaml:"type"`
	Corps      int `yaml:"corps"`
	Headcount  int `yaml:"headcount"`
	Experience int `yaml:"experience"`
	Count      int `yaml:"count"`
}

// Setup is a battle definition resolved against the reference data, ready to
// be handed to battle.New. Every call to BattleDef.Setup returns fresh
// battalions and commanders.
type Setup struct {
	Name       string
	Seed       int64
	Game       battle.Game
	Location   battle.Location
	Fortress   int
	Battalions [2][]*battle.Battalion
	Commanders [2]*battle.Commander
}

func ParseRegion(s string) (battle.Region, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "europe":
		return battle.RegionEurope, nil
	case "caribbean":
		return battle.RegionCaribbean, nil
	case "indies":
		return battle.RegionIndies, nil
	case "africa":
		return battle.RegionAfrica, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRegion, s)
}

func (d BattleDef) Setup(data *Bundle) (*Setup, error) {
	region, err := ParseRegion(d.Location.Region)
	if err != nil {
		return nil, fmt.Errorf("battle %q: %w", d.Name, err)
	}
	s := &Setup{
		Name:     d.Name,
		Seed:     d.Seed,
		Game:     battle.Game{ID: d.Game.ID, Turn: d.Game.Turn, Scenario: d.Game.Scenario},
		Fortress: d.Fortress,
		Location: battle.Location{
			X:          d.Location.X,
			Y:          d.Location.Y,
			Region:     region,
			Terrain:    battle.Terrain(strings.ToUpper(d.Location.Terrain)),
			SphereCode: d.Location.Sphere,
		},
	}
	if d.Game.ID == 0 {
		s.Game.ID = battle.EphemeralGameID
	}
	if f := d.Location.Fort; f != nil {
		s.Location.Fort = &battle.Fortification{Level: f.Level, Condition: f.Condition}
	}

	for i, side := range [2]SideDef{d.SideA, d.SideB} {
		for _, bd := range side.Battalions {
			tt, ok := data.Troops[bd.Type]
			if !ok {
				return nil, fmt.Errorf("battle %q battalion %d: %w: %d", d.Name, bd.ID, ErrUnknownTroopType, bd.Type)
			}
			for n := 0; n < max(1, bd.Count); n++ {
				s.Battalions[i] = append(s.Battalions[i], &battle.Battalion{
					ID:         bd.ID + n,
					Type:       tt,
					CorpsID:    bd.Corps,
					Headcount:  bd.Headcount,
					Experience: bd.Experience,
				})
			}
		}
		if cd := side.Commander; cd != nil {
			c := &battle.Commander{
				ID:         cd.ID,
				Name:       cd.Name,
				Nation:     cd.Nation,
				Capability: cd.Capability,
				ArmyID:     cd.Army,
				CorpsID:    cd.Corps,
				Carrier:    cd.Carrier,
				Dead:       cd.Dead,
			}
			if cd.Rank > 0 {
				c.Rank = data.Ranks.ByID(cd.Rank)
				if c.Rank == nil {
					return nil, fmt.Errorf("battle %q commander %d: %w: %d", d.Name, cd.ID, ErrUnknownRank, cd.Rank)
				}
				c.Strength = c.Rank.Strength
			}
			s.Commanders[i] = c
		}
	}
	return s, nil
}
