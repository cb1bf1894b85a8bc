package systems

import (
	"log"

	"github.com/automoto/godhand/components"
	cfg "github.com/automoto/godhand/config"
	"github.com/automoto/godhand/shared/gamemath"
	"github.com/automoto/godhand/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

type releaseReason int

const (
	releaseDefensive releaseReason = iota // held entity vanished
	releaseCancel
	releaseConfirm
	releaseTrigger
)

// release lets go of the held object. With the modifier held the object is
// queued; a miracle token casts its miracle; anything else is thrown along
// the aim direction, or dropped in place on cancel.
func (p *handPass) release(t *handTick, reason releaseReason) {
	h := t.hand
	held := h.HeldEntity
	t.released = true

	if reason == releaseDefensive || !p.world.Valid(held) {
		log.Printf("[hand] %d: held entity %v is gone, clearing hold", h.HandIndex, held)
		p.buffer.DetachHeld(held)
		resetCargo(h)
		return
	}

	e := p.world.Entry(held)
	window := gamemath.ChargeWindow(t.cfg.MinChargeSeconds, t.cfg.MaxChargeSeconds)
	charge := gamemath.NormalizedCharge(t.charge, window)
	impulse := gamemath.ThrowImpulse(
		t.cfg.ThrowImpulse,
		gamemath.ThrowCharge(t.charge, t.cfg.MinChargeSeconds, t.cfg.MaxChargeSeconds),
		t.cfg.ChargeMultiplier,
	)

	isToken := e.HasComponent(components.MiracleToken)
	switch {
	case t.input.ModifierHeld && !isToken && p.queueHeld(t, e, charge, impulse):
	case isToken:
		p.releaseToken(t, e, impulse)
	default:
		p.throwHeld(t, e, reason, charge, impulse)
	}
	resetCargo(h)
}

// queueHeld freezes the object and appends it to the hand's throw queue.
// It fails when the queue is full.
func (p *handPass) queueHeld(t *handTick, e *donburi.Entry, charge, impulse float64) bool {
	entry := components.QueuedThrow{
		Target:       e.Entity(),
		Direction:    t.hand.Aim,
		Impulse:      impulse,
		Charge:       charge,
		SavedGravity: t.hand.HeldGravity,
	}
	if e.HasComponent(components.Body) {
		entry.SavedVelocity = components.Body.Get(e).Velocity
	} else if e.HasComponent(components.Weather) {
		entry.SavedVelocity = components.Weather.Get(e).Velocity
	}
	if !t.queue.Push(entry, t.cfg.QueueCapacity) {
		return false
	}

	if e.HasComponent(components.Body) {
		body := components.Body.Get(e)
		body.Velocity = mgl64.Vec3{}
		body.Gravity = 0
	}
	if e.HasComponent(components.Weather) {
		components.Weather.Get(e).Velocity = mgl64.Vec3{}
	}
	p.buffer.DetachHeld(e.Entity())
	p.buffer.AttachQueued(e.Entity(), t.entry.Entity())

	p.emit(t, components.HandCommand{
		Verb:         netconfig.VerbQueueThrow,
		Target:       e.Entity(),
		Position:     positionOf(e),
		Direction:    t.hand.Aim,
		Speed:        impulse,
		Charge:       charge,
		ResourceType: t.hand.ResourceType,
		Amount:       t.hand.HeldAmount,
	})
	return true
}

// releaseToken consumes a miracle token and raises its miracle at the aim
// point.
func (p *handPass) releaseToken(t *handTick, e *donburi.Entry, impulse float64) {
	token := components.MiracleToken.Get(e)
	source := token.Config
	if source == nil {
		source = cfg.Miracles[token.Type]
	}
	p.buffer.Destroy(e.Entity())

	t.miracles.Events = append(t.miracles.Events, components.MiracleRelease{
		Type:           token.Type,
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

// throwHeld hands the object back to physics. Cancel drops it with no
// velocity and starts no cooldown.
func (p *handPass) throwHeld(t *handTick, e *donburi.Entry, reason releaseReason, charge, impulse float64) {
	p.buffer.DetachHeld(e.Entity())

	var velocity mgl64.Vec3
	speed := 0.0
	thrown := reason != releaseCancel
	if thrown {
		speed = gamemath.ThrowSpeed(impulse, t.cfg.MaxThrowSpeed)
		velocity = t.hand.Aim.Mul(speed)
	}

	if e.HasComponent(components.Body) {
		body := components.Body.Get(e)
		body.Velocity = velocity
		if body.Gravity <= 0 {
			body.Gravity = restoredGravity(t.hand.HeldGravity)
		}
	}
	if e.HasComponent(components.Weather) {
		components.Weather.Get(e).Velocity = velocity
	}
	if !thrown {
		return
	}

	t.hand.CooldownSeconds = max(t.hand.CooldownSeconds, t.cfg.CooldownAfterThrow)
	p.emit(t, components.HandCommand{
		Verb:         netconfig.VerbThrow,
		Target:       e.Entity(),
		Position:     positionOf(e),
		Direction:    t.hand.Aim,
		Speed:        speed,
		Charge:       charge,
		ResourceType: t.hand.ResourceType,
		Amount:       t.hand.HeldAmount,
	})
}

// releaseQueued throws queued objects oldest first. ReleaseAll wins over
// ReleaseOne.
func (p *handPass) releaseQueued(t *handTick) {
	n := 1
	if t.input.ReleaseAll {
		n = t.queue.Len()
	}
	entries := t.queue.PopFront(n)
	if len(entries) == 0 {
		return
	}

	for _, q := range entries {
		if !p.world.Valid(q.Target) {
			continue
		}
		e := p.world.Entry(q.Target)
		speed := gamemath.QueuedThrowSpeed(t.cfg.MinThrowSpeed, t.cfg.MaxThrowSpeed, q.Charge)
		velocity := q.Direction.Mul(speed)

		if e.HasComponent(components.Body) {
			body := components.Body.Get(e)
			body.Gravity = q.SavedGravity
			if body.Gravity <= 0 {
				body.Gravity = cfg.Sim.DefaultGravity
			}
			body.Velocity = velocity
		}
		if e.HasComponent(components.Weather) {
			components.Weather.Get(e).Velocity = velocity
		}
		p.buffer.DetachQueued(q.Target)
		p.buffer.DetachHeld(q.Target)

		p.emit(t, components.HandCommand{
			Verb:      netconfig.VerbThrow,
			Target:    q.Target,
			Position:  positionOf(e),
			Direction: q.Direction,
			Speed:     speed,
			Charge:    q.Charge,
		})
	}
	t.hand.CooldownSeconds = t.cfg.CooldownAfterThrow
}

func restoredGravity(saved float64) float64 {
	if saved > 0 {
		return saved
	}
	return cfg.Sim.DefaultGravity
}

// resetCargo clears everything the hand carries.
func resetCargo(h *components.HandData) {
	h.HeldEntity = donburi.Null
	h.HeldAmount = 0
	h.ResourceType = cfg.ResourceNone
	h.ChargeSeconds = 0
	h.CarryOffset = mgl64.Vec3{}
	h.HeldGravity = 0
	h.Flags &^= components.FlagCarryingCargo
}
