package components

import (
	"github.com/automoto/godhand/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// HandFlags is the hand's status bitfield.
type HandFlags uint32

const (
	FlagCarryingCargo HandFlags = 1 << 0
)

// HandData is the persistent per-hand state. Only the hand pass writes it.
type HandData struct {
	HandIndex int // claim order within a tick, lower goes first

	HeldEntity   donburi.Entity // donburi.Null when nothing is physically held
	ResourceType int            // config.ResourceNone when no cargo
	HeldAmount   float64
	Capacity     float64

	ChargeSeconds   float64
	CooldownSeconds float64

	Cursor mgl64.Vec3 // ground-plane cursor position
	Aim    mgl64.Vec3 // normalized aim direction

	State         config.HandStateID
	PreviousState config.HandStateID
	Flags         HandFlags

	CarryOffset mgl64.Vec3 // local offset of the held object, zeroed on pick
	HeldGravity float64    // gravity factor of the held body before it was picked

	// Last tick's snapshot, compared against to emit lifecycle events
	LastResourceType int
	LastAmount       float64
}

// HasCargo reports whether the hand carries anything, physically or as an
// abstract resource amount.
func (h *HandData) HasCargo() bool {
	return h.HeldEntity != donburi.Null || h.HeldAmount > 0
}

var Hand = donburi.NewComponentType[HandData]()

// HandConfig holds the hand's read-only tunables.
var HandConfig = donburi.NewComponentType[config.HandConfig]()
