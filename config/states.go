package config

import "github.com/automoto/godhand/shared/netconfig"

// HandStateID is the authoritative hand state. The shared and legacy enums
// below are read-only projections of it.
type HandStateID int

const (
	HandEmpty HandStateID = iota
	HandHolding
	HandDragging // siphoning
	HandSlingshotAim
	HandDumping
	HandCasting // miracle cast this tick, shown with the holding visuals
)

var handStateNames = map[HandStateID]string{
	HandEmpty:        "empty",
	HandHolding:      "holding",
	HandDragging:     "dragging",
	HandSlingshotAim: "slingshot_aim",
	HandDumping:      "dumping",
	HandCasting:      "casting",
}

func (s HandStateID) String() string {
	if name, ok := handStateNames[s]; ok {
		return name
	}
	return "unknown"
}

// LegacyDisplayState is the display enum older UI bindings, audio and the
// telemetry aggregator key on.
type LegacyDisplayState int

const (
	LegacyEmpty LegacyDisplayState = iota
	LegacyHolding
	LegacyDragging
	LegacySlingshotAim
	LegacyDumping

	LegacyStateCount // Must be last - used for array sizing
)

var legacyNames = [LegacyStateCount]string{
	LegacyEmpty:        "Empty",
	LegacyHolding:      "Holding",
	LegacyDragging:     "Dragging",
	LegacySlingshotAim: "SlingshotAim",
	LegacyDumping:      "Dumping",
}

func (s LegacyDisplayState) String() string {
	if s >= 0 && s < LegacyStateCount {
		return legacyNames[s]
	}
	return "Unknown"
}

// LegacyDisplay projects a hand state onto the legacy display enum.
func LegacyDisplay(s HandStateID) LegacyDisplayState {
	switch s {
	case HandHolding, HandCasting:
		return LegacyHolding
	case HandDragging:
		return LegacyDragging
	case HandSlingshotAim:
		return LegacySlingshotAim
	case HandDumping:
		return LegacyDumping
	}
	return LegacyEmpty
}

// SharedState projects a hand state onto the cross-game network enum.
func SharedState(s HandStateID) netconfig.HandStateID {
	switch s {
	case HandEmpty:
		return netconfig.HandIdle
	case HandHolding:
		return netconfig.HandCarry
	case HandDragging, HandDumping:
		return netconfig.HandInteract
	case HandSlingshotAim:
		return netconfig.HandAim
	case HandCasting:
		return netconfig.HandCast
	}
	return netconfig.HandStateNone
}
