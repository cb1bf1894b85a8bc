package systems

import (
	"github.com/automoto/godhand/components"
	cfg "github.com/automoto/godhand/config"
	"github.com/automoto/godhand/shared/gamemath"
	"github.com/automoto/godhand/shared/netcomponents"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateNetHands copies hand and object state into the network-synced
// components. Runs after the hand pass so clients see the committed tick.
func UpdateNetHands(e *ecs.ECS) {
	netcomponents.NetHand.Each(e.World, func(entry *donburi.Entry) {
		if !entry.HasComponent(components.Hand) {
			return
		}
		hand := components.Hand.Get(entry)
		hc := components.HandConfig.Get(entry)
		queued := 0
		if entry.HasComponent(components.ThrowQueue) {
			queued = components.ThrowQueue.Get(entry).Len()
		}
		window := gamemath.ChargeWindow(hc.MinChargeSeconds, hc.MaxChargeSeconds)

		netcomponents.NetHand.SetValue(entry, netcomponents.NetHandData{
			X:            hand.Cursor.X(),
			Y:            hand.Cursor.Y(),
			Z:            hand.Cursor.Z(),
			AimX:         hand.Aim.X(),
			AimY:         hand.Aim.Y(),
			AimZ:         hand.Aim.Z(),
			State:        cfg.SharedState(hand.State),
			ResourceType: hand.ResourceType,
			Amount:       hand.HeldAmount,
			Capacity:     hand.Capacity,
			Charge:       gamemath.NormalizedCharge(hand.ChargeSeconds, window),
			Queued:       queued,
		})
	})

	netcomponents.NetObject.Each(e.World, func(entry *donburi.Entry) {
		pos := positionOf(entry)
		var vel mgl64.Vec3
		if entry.HasComponent(components.Body) {
			vel = components.Body.Get(entry).Velocity
		} else if entry.HasComponent(components.Weather) {
			vel = components.Weather.Get(entry).Velocity
		}
		_, held := heldBy(entry)
		netcomponents.NetObject.SetValue(entry, netcomponents.NetObjectData{
			X:      pos.X(),
			Y:      pos.Y(),
			Z:      pos.Z(),
			VelX:   vel.X(),
			VelY:   vel.Y(),
			VelZ:   vel.Z(),
			Held:   held,
			Queued: entry.HasComponent(components.Queued),
		})
	})
}
