package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fieldbattle/internal/battle"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// loadOptional reads path into out and reports whether the file existed.
func loadOptional(path string, out any) (bool, error) {
	err := loadYAML(path, out)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return true, nil
}

// Bundle is everything read from a data directory.
type Bundle struct {
	Nations battle.Nations
	Ranks   battle.RankTable
	Troops  map[int]*battle.TroopType
	Tuning  *TuningConfig
	Battles []BattleDef
}

// LoadAll reads nations.yaml, ranks.yaml, troops.yaml, tuning.yaml and
// battles.yaml from dir. Missing reference files fall back to the built-in
// catalogue; missing battles.yaml leaves Battles empty.
func LoadAll(dir string) (*Bundle, error) {
	var nc NationsConfig
	var rc RanksConfig
	var tc TroopsConfig
	var bc BattlesConfig
	tuning := DefaultTuning()

	out := &Bundle{
		Nations: battle.DefaultNations(),
		Ranks:   battle.DefaultRanks(),
		Troops:  DefaultTroops(),
		Tuning:  tuning,
	}

	ok, err := loadOptional(filepath.Join(dir, "nations.yaml"), &nc)
	if err != nil {
		return nil, err
	}
	if ok {
		if out.Nations, err = nc.Catalogue(); err != nil {
			return nil, err
		}
	}

	if ok, err = loadOptional(filepath.Join(dir, "ranks.yaml"), &rc); err != nil {
		return nil, err
	}
	if ok {
		if out.Ranks, err = rc.Table(); err != nil {
			return nil, err
		}
	}

	if ok, err = loadOptional(filepath.Join(dir, "troops.yaml"), &tc); err != nil {
		return nil, err
	}
	if ok {
		if out.Troops, err = tc.Types(); err != nil {
			return nil, err
		}
	}

	if _, err = loadOptional(filepath.Join(dir, "tuning.yaml"), tuning); err != nil {
		return nil, err
	}

	if _, err = loadOptional(filepath.Join(dir, "battles.yaml"), &bc); err != nil {
		return nil, err
	}
	out.Battles = bc.Battles
	return out, nil
}
