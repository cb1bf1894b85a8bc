package systems

import (
	"github.com/automoto/godhand/components"
	cfg "github.com/automoto/godhand/config"
	"github.com/yohamta/donburi"
)

// nextHandState resolves the display state for the tick. Earlier cases win.
func nextHandState(t *handTick) cfg.HandStateID {
	h := t.hand
	switch {
	case t.wantDump:
		return cfg.HandDumping
	case t.wantSiphon:
		return cfg.HandDragging
	case t.miracleCast:
		return cfg.HandCasting
	case h.HasCargo() && h.ChargeSeconds > 0 && h.ChargeSeconds >= t.cfg.MinChargeSeconds &&
		!t.intent.ConfirmPlace && !t.intent.CancelAction:
		return cfg.HandSlingshotAim
	case h.HasCargo():
		return cfg.HandHolding
	}
	return cfg.HandEmpty
}

// resolveState stores the new state and emits lifecycle events against the
// previous tick's snapshot. StateChanged compares the legacy display states,
// so casting with the holding visuals does not fire it.
func (p *handPass) resolveState(t *handTick) {
	h := t.hand
	next := nextHandState(t)

	from := cfg.LegacyDisplay(h.State)
	to := cfg.LegacyDisplay(next)
	h.PreviousState = h.State
	h.State = next

	if h.HasCargo() {
		h.Flags |= components.FlagCarryingCargo
	} else {
		h.Flags &^= components.FlagCarryingCargo
	}

	ev := components.HandEvent{
		From:         from,
		To:           to,
		ResourceType: h.ResourceType,
		Amount:       h.HeldAmount,
		Capacity:     h.Capacity,
	}
	if from != to {
		ev.Kind = components.EventStateChanged
		t.events.Events = append(t.events.Events, ev)
	}
	if h.ResourceType != h.LastResourceType {
		ev.Kind = components.EventTypeChanged
		t.events.Events = append(t.events.Events, ev)
	}
	if h.HeldAmount != h.LastAmount {
		ev.Kind = components.EventAmountChanged
		t.events.Events = append(t.events.Events, ev)
	}
	h.LastResourceType = h.ResourceType
	h.LastAmount = h.HeldAmount
}

// ProjectMirror builds the read-only interaction mirror for a hand.
func ProjectMirror(hand donburi.Entity, h *components.HandData, verb components.ActiveVerb, siphoning, dumping bool, tick uint64) components.InteractionMirrorData {
	m := components.InteractionMirrorData{
		Hand:           hand,
		PreviousState:  cfg.LegacyDisplay(h.PreviousState),
		State:          cfg.LegacyDisplay(h.State),
		Verb:           verb,
		ResourceType:   h.ResourceType,
		Amount:         h.HeldAmount,
		Capacity:       h.Capacity,
		Cooldown:       h.CooldownSeconds,
		LastUpdateTick: tick,
	}
	if siphoning {
		m.Flags |= components.MirrorSiphoning
	}
	if dumping {
		m.Flags |= components.MirrorDumping
	}
	return m
}
