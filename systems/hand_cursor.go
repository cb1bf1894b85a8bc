package systems

import (
	"github.com/automoto/godhand/shared/gamemath"
	"github.com/yohamta/donburi"
)

func (p *handPass) updateCursor(t *handTick) {
	t.hand.Cursor = gamemath.CursorOnGround(t.input.RayOrigin, t.input.RayDirection)
	t.hand.Aim = gamemath.AimDirection(t.input.RayDirection)
	t.aim = resolveAimPoint(t)
}

// resolveAimPoint prefers the hover hit when it is within the aim range
// (0 = unlimited).
func resolveAimPoint(t *handTick) aimPoint {
	h := t.hover
	if h.Valid && (t.cfg.AimRange <= 0 || h.Distance <= t.cfg.AimRange) {
		return aimPoint{Entity: h.Entity, Position: h.Position, Normal: h.Normal}
	}
	return aimPoint{Entity: donburi.Null, Position: t.hand.Cursor, Normal: gamemath.Up}
}

// updateCharge advances the charge timer while the trigger is held. Any tick
// without the trigger held leaves the timer at zero; the value it had is kept
// on the tick for this tick's release.
func (p *handPass) updateCharge(t *handTick) {
	window := gamemath.ChargeWindow(t.cfg.MinChargeSeconds, t.cfg.MaxChargeSeconds)
	if t.input.SecondaryHeld {
		t.hand.ChargeSeconds = gamemath.AccumulateCharge(t.hand.ChargeSeconds, p.dt, window)
		t.charge = t.hand.ChargeSeconds
		return
	}
	t.charge = t.hand.ChargeSeconds
	t.hand.ChargeSeconds = 0
}
