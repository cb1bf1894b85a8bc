package components

import (
	"github.com/automoto/godhand/config"
	"github.com/yohamta/donburi"
)

type PickableData struct {
	ResourceTypeID string  // catalog identifier, empty for untyped objects
	CarryLerp      float64 // follow factor override, 0 uses the hand's
}

var Pickable = donburi.NewComponentType[PickableData]()

// HeldData marks an object carried by a hand.
type HeldData struct {
	Hand donburi.Entity
}

var Held = donburi.NewComponentType[HeldData]()

// QueuedData marks an object waiting in a hand's throw queue.
type QueuedData struct {
	Hand donburi.Entity
}

var Queued = donburi.NewComponentType[QueuedData]()

// MiracleTokenData is a carryable object that casts a miracle when released.
type MiracleTokenData struct {
	Type   config.MiracleType
	Config *config.MiracleConfig
}

var MiracleToken = donburi.NewComponentType[MiracleTokenData]()

// MiracleCasterData records the hand's selected spell slot.
type MiracleCasterData struct {
	SelectedSlot int
}

var MiracleCaster = donburi.NewComponentType[MiracleCasterData]()

type MiracleSlot struct {
	Index  int
	Type   config.MiracleType
	Config *config.MiracleConfig
}

// MiracleSlotsData is the hand's buffer of castable slots.
type MiracleSlotsData struct {
	Slots []MiracleSlot
}

// Resolve returns the slot whose Index matches, falling back to the first.
func (s *MiracleSlotsData) Resolve(index int) (MiracleSlot, bool) {
	if len(s.Slots) == 0 {
		return MiracleSlot{}, false
	}
	for _, slot := range s.Slots {
		if slot.Index == index {
			return slot, true
		}
	}
	return s.Slots[0], true
}

var MiracleSlots = donburi.NewComponentType[MiracleSlotsData]()
