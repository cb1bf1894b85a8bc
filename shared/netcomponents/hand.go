package netcomponents

import (
	"github.com/automoto/godhand/shared/netconfig"
	"github.com/yohamta/donburi"
)

// NetHandData is the slice of hand state clients need to draw and animate a
// remote hand.
type NetHandData struct {
	X, Y, Z      float64 // cursor position
	AimX, AimY   float64
	AimZ         float64
	State        netconfig.HandStateID
	ResourceType int
	Amount       float64
	Capacity     float64
	Charge       float64 // 0.0-1.0, for slingshot VFX scaling
	Queued       int     // objects waiting in the throw queue
}

var NetHand = donburi.NewComponentType[NetHandData]()

// LerpNetHand interpolates the cursor between two snapshots; discrete fields
// take the newer value.
func LerpNetHand(from, to NetHandData, t float64) *NetHandData {
	return &NetHandData{
		X:            from.X + (to.X-from.X)*t,
		Y:            from.Y + (to.Y-from.Y)*t,
		Z:            from.Z + (to.Z-from.Z)*t,
		AimX:         to.AimX,
		AimY:         to.AimY,
		AimZ:         to.AimZ,
		State:        to.State,
		ResourceType: to.ResourceType,
		Amount:       from.Amount + (to.Amount-from.Amount)*t,
		Capacity:     to.Capacity,
		Charge:       to.Charge,
		Queued:       to.Queued,
	}
}
