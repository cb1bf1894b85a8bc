package netcomponents

import "github.com/yohamta/donburi"

// NetObjectData is a pickable object's synced placement.
type NetObjectData struct {
	X, Y, Z    float64
	VelX, VelY float64 // Client extrapolation between snapshots
	VelZ       float64
	Held       bool
	Queued     bool
}

var NetObject = donburi.NewComponentType[NetObjectData]()

// LerpNetObject interpolates between two object states
func LerpNetObject(from, to NetObjectData, t float64) *NetObjectData {
	return &NetObjectData{
		X:      from.X + (to.X-from.X)*t,
		Y:      from.Y + (to.Y-from.Y)*t,
		Z:      from.Z + (to.Z-from.Z)*t,
		VelX:   to.VelX,
		VelY:   to.VelY,
		VelZ:   to.VelZ,
		Held:   to.Held,
		Queued: to.Queued,
	}
}
