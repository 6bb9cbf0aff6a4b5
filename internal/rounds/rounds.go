// Package rounds provides the default combat calculators of a battle: how many
// combat points each side brings to a phase, what they cost the enemy and who
// breaks under the strain.
package rounds

import (
	"fieldbattle/internal/battle"
	"fieldbattle/internal/config"
)

// Calculators builds the processors of the combat phases from a tuning.
type Calculators struct {
	cfg *config.TuningConfig
}

// New returns calculators for cfg. A nil cfg uses the default tuning.
func New(cfg *config.TuningConfig) *Calculators {
	if cfg == nil {
		cfg = config.DefaultTuning()
	}
	return &Calculators{cfg: cfg}
}

// shooters selects the battalions that take part in a fire phase.
var shooters = map[battle.PhaseID]func(*battle.Battalion) bool{
	battle.PhaseArtillery1:          isGun,
	battle.PhaseArtillery2:          isGun,
	battle.PhaseSkirmish:            (*battle.Battalion).IsSkirmisher,
	battle.PhaseTroopLongRange:      isInfantry,
	battle.PhaseHandToHand:          anyArm,
	battle.PhaseCavalry:             isCavalry,
	battle.PhaseDisengageHandToHand: anyArm,
	battle.PhaseDisengageLongRange:  anyArm,
}

func (c *Calculators) Phase(id battle.PhaseID, f *battle.Field) battle.Phase {
	switch id {
	case battle.PhaseMorale1, battle.PhaseMorale2, battle.PhaseMorale3, battle.PhaseMoraleCavalry:
		return &morale{field: f, id: id, cfg: c.cfg.Morale, threshold: c.cfg.Morale.Thresholds[id.String()]}
	case battle.PhasePursuit:
		if f.Fortress > 0 {
			return &fortressCheck{field: f, cfg: c.cfg.Fortress}
		}
		return &pursuit{field: f, cfg: c.cfg}
	}
	sel, ok := shooters[id]
	if !ok {
		return nil
	}
	return &volley{
		field:   f,
		id:      id,
		fire:    c.cfg.Fire[id.String()],
		cfg:     c.cfg,
		shooter: sel,
	}
}

func isGun(b *battle.Battalion) bool {
	return b.Arm() == battle.ArmArtillery || b.Arm() == battle.ArmMountedArtillery
}

func isInfantry(b *battle.Battalion) bool { return b.Arm() == battle.ArmInfantry }

func isCavalry(b *battle.Battalion) bool { return b.Arm() == battle.ArmCavalry }

func anyArm(*battle.Battalion) bool { return true }
