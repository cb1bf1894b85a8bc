package systems

import (
	"github.com/automoto/godhand/components"
	cfg "github.com/automoto/godhand/config"
	"github.com/automoto/godhand/shared/gamemath"
	"github.com/automoto/godhand/shared/netconfig"
	"github.com/yohamta/donburi"
)

// updateResourceVerbs runs siphon and dump while the hand holds nothing
// physically. Both move cargo at a fixed rate per second.
func (p *handPass) updateResourceVerbs(t *handTick) {
	h := t.hand
	if h.HeldEntity != donburi.Null || !t.input.PrimaryHeld {
		return
	}
	aff := t.affordance
	t.wantSiphon = aff.Flags.Has(components.AffordSiphon) && h.HeldAmount < h.Capacity
	t.wantDump = aff.Flags.Has(components.AffordDumpAny) && h.HeldAmount > 0

	if t.wantSiphon {
		p.siphon(t)
	}
	if t.wantDump {
		p.dump(t)
	}
}

func (p *handPass) siphon(t *handTick) {
	h := t.hand
	resourceType := t.affordance.ResourceType
	if resourceType == cfg.ResourceNone {
		resourceType = h.ResourceType
	}
	if resourceType == cfg.ResourceNone {
		resourceType = cfg.ResourceGeneric
	}

	// Cargo types never mix; a mismatched source keeps the drag going
	// without transferring anything.
	if h.ResourceType == cfg.ResourceNone || h.ResourceType == resourceType {
		h.HeldAmount = min(h.Capacity, h.HeldAmount+t.cfg.SiphonRate*p.dt)
		h.ResourceType = resourceType
	}

	p.emit(t, components.HandCommand{
		Verb:         netconfig.VerbSiphon,
		Target:       t.affordance.Target,
		Position:     t.aim.Position,
		Direction:    h.Aim,
		ResourceType: resourceType,
		Amount:       h.HeldAmount,
	})
}

func (p *handPass) dump(t *handTick) {
	h := t.hand
	resourceType := h.ResourceType
	h.HeldAmount = max(0, h.HeldAmount-t.cfg.DumpRate*p.dt)
	if h.HeldAmount <= 0 {
		h.HeldAmount = 0
		h.ResourceType = cfg.ResourceNone
	}

	p.emit(t, components.HandCommand{
		Verb:         netconfig.VerbDump,
		Target:       t.affordance.Target,
		Position:     t.aim.Position,
		Direction:    h.Aim,
		ResourceType: resourceType,
		Amount:       h.HeldAmount,
	})
}

// castFromSlot raises the selected slot's miracle when the trigger is
// released over a castable target with nothing held.
func (p *handPass) castFromSlot(t *handTick) {
	e := t.entry
	if !e.HasComponent(components.MiracleCaster) || !e.HasComponent(components.MiracleSlots) {
		return
	}
	caster := components.MiracleCaster.Get(e)
	slot, ok := components.MiracleSlots.Get(e).Resolve(caster.SelectedSlot)
	if !ok || slot.Type == cfg.MiracleNone {
		return
	}
	source := slot.Config
	if source == nil {
		source = cfg.Miracles[slot.Type]
	}

	impulse := gamemath.ThrowImpulse(
		t.cfg.ThrowImpulse,
		gamemath.ThrowCharge(t.charge, t.cfg.MinChargeSeconds, t.cfg.MaxChargeSeconds),
		t.cfg.ChargeMultiplier,
	)
	t.miracles.Events = append(t.miracles.Events, components.MiracleRelease{
		Type:           slot.Type,
		TargetPosition: t.aim.Position,
		TargetNormal:   t.aim.Normal,
		TargetEntity:   t.aim.Entity,
		Direction:      t.hand.Aim,
		Impulse:        impulse,
		Source:         source,
	})
	t.miracleCast = true
	p.emit(t, components.HandCommand{
		Verb:      netconfig.VerbCastMiracle,
		Target:    t.aim.Entity,
		Position:  t.aim.Position,
		Direction: t.hand.Aim,
		Speed:     impulse,
	})
}

// LegacyVerbFor picks the single high-level verb for older UI bindings.
// Dumps win over siphon; among dumps the storehouse wins, then construction,
// then the ground.
func LegacyVerbFor(wantSiphon, wantDump bool, flags components.AffordanceFlags) components.LegacyVerb {
	if wantDump {
		switch {
		case flags.Has(components.AffordDumpStorehouse):
			return components.LegacyDumpToStorehouse
		case flags.Has(components.AffordDumpConstruction):
			return components.LegacyDumpToConstruction
		case flags.Has(components.AffordDumpGround):
			return components.LegacyGroundDrip
		}
	}
	if wantSiphon {
		return components.LegacySiphon
	}
	return components.LegacyNone
}

// NextLegacyCommand restarts the since-issued clock whenever the verb or
// its target changes.
func NextLegacyCommand(prev components.LegacyCommandData, verb components.LegacyVerb, target donburi.Entity, dt float64) components.LegacyCommandData {
	if verb == components.LegacyNone {
		target = donburi.Null
	}
	if verb != prev.Verb || target != prev.Target {
		return components.LegacyCommandData{Verb: verb, Target: target}
	}
	prev.SinceIssued += dt
	return prev
}

func (p *handPass) updateLegacyCommand(t *handTick) {
	lc := components.LegacyCommand.Get(t.entry)
	verb := LegacyVerbFor(t.wantSiphon, t.wantDump, t.affordance.Flags)
	*lc = NextLegacyCommand(*lc, verb, t.affordance.Target, p.dt)
}
