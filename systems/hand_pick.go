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

// tryPick claims the best candidate for the hand. Picks are refused during
// cooldown, at capacity, and when the candidate's resource type differs from
// the cargo the hand already carries.
func (p *handPass) tryPick(t *handTick) bool {
	h := t.hand
	if h.CooldownSeconds > 0 {
		return false
	}
	if h.Capacity > 0 && h.HeldAmount >= h.Capacity {
		return false
	}

	target, ok := p.pickCandidate(t)
	if !ok {
		return false
	}
	e := p.world.Entry(target)
	resourceType, ok := p.resolvePickType(h, components.Pickable.Get(e))
	if !ok {
		return false
	}

	p.claimed[target] = t.entry.Entity()
	p.buffer.AttachHeld(target, t.entry.Entity())

	h.HeldGravity = 0
	if e.HasComponent(components.Body) {
		body := components.Body.Get(e)
		h.HeldGravity = body.Gravity
		body.Gravity = 0
		body.Velocity = mgl64.Vec3{}
	}
	if e.HasComponent(components.Weather) {
		components.Weather.Get(e).Velocity = mgl64.Vec3{}
	}

	h.HeldEntity = target
	h.HeldAmount = 1
	h.ResourceType = resourceType
	h.CarryOffset = mgl64.Vec3{}
	t.picked = true

	p.emit(t, components.HandCommand{
		Verb:         netconfig.VerbPick,
		Target:       target,
		Position:     positionOf(e),
		Direction:    h.Aim,
		ResourceType: resourceType,
		Amount:       h.HeldAmount,
	})
	return true
}

// resolvePickType returns the cargo type the hand would carry after picking.
// Objects without a known catalog entry count as generic unless the hand is
// already typed, in which case they take on the hand's type.
func (p *handPass) resolvePickType(h *components.HandData, pick *components.PickableData) (int, bool) {
	if pick.ResourceTypeID != "" && p.catalog != nil {
		if idx, ok := p.catalog.Index(pick.ResourceTypeID); ok {
			if h.ResourceType != cfg.ResourceNone && h.ResourceType != idx {
				return 0, false
			}
			return idx, true
		}
		log.Printf("[hand] unknown resource type %q, treating as generic", pick.ResourceTypeID)
	}
	if h.ResourceType != cfg.ResourceNone {
		return h.ResourceType, true
	}
	return cfg.ResourceGeneric, true
}

// carry moves the held object toward the hold point above the cursor.
// It runs before the release so a throw leaves from the current hold point.
func (p *handPass) carry(t *handTick) {
	e := p.world.Entry(t.hand.HeldEntity)
	if !e.HasComponent(components.Transform) {
		return
	}
	lerp := t.cfg.HoldFollowLerp
	if e.HasComponent(components.Pickable) {
		if l := components.Pickable.Get(e).CarryLerp; l > 0 {
			lerp = l
		}
	}

	c := t.hand.Cursor
	target := mgl64.Vec3{c.X(), max(c.Y(), t.cfg.HoldHeight), c.Z()}.Add(t.hand.CarryOffset)
	tf := components.Transform.Get(e)
	tf.Position = tf.Position.Add(target.Sub(tf.Position).Mul(gamemath.Saturate(lerp)))
	tf.Rotation = mgl64.QuatIdent()

	if e.HasComponent(components.Weather) {
		components.Weather.Get(e).Velocity = mgl64.Vec3{}
	}
	syncObject(p.space, e, tf.Position)
}

// emitHold reports the carried object once the tick's release has been
// decided. Nothing is emitted on the pick tick or after a release.
func (p *handPass) emitHold(t *handTick) {
	if t.picked || t.hand.HeldEntity == donburi.Null || !p.world.Valid(t.hand.HeldEntity) {
		return
	}
	p.emit(t, components.HandCommand{
		Verb:         netconfig.VerbHold,
		Target:       t.hand.HeldEntity,
		Position:     positionOf(p.world.Entry(t.hand.HeldEntity)),
		Direction:    t.hand.Aim,
		ResourceType: t.hand.ResourceType,
		Amount:       t.hand.HeldAmount,
	})
}

// heldBy reports which hand holds e, if any.
func heldBy(e *donburi.Entry) (donburi.Entity, bool) {
	if !e.HasComponent(components.Held) {
		return donburi.Null, false
	}
	return components.Held.Get(e).Hand, true
}
