package components

import (
	"github.com/automoto/godhand/config"
	"github.com/yohamta/donburi"
)

// ActiveVerb is the verb the hand performed most recently this tick.
type ActiveVerb int

const (
	ActiveNone ActiveVerb = iota
	ActivePick
	ActiveHold
	ActiveThrow
	ActiveQueue
	ActiveSiphon
	ActiveDump
	ActiveCast
)

// MirrorFlags are the siphon/dump bits of the interaction mirror.
type MirrorFlags uint8

const (
	MirrorSiphoning MirrorFlags = 1 << iota
	MirrorDumping
)

// InteractionMirrorData is a read-only projection of the hand for UI,
// telemetry and audio. It is overwritten every recorded tick.
type InteractionMirrorData struct {
	Hand           donburi.Entity
	PreviousState  config.LegacyDisplayState
	State          config.LegacyDisplayState
	Verb           ActiveVerb
	ResourceType   int
	Amount         float64
	Capacity       float64
	Cooldown       float64
	LastUpdateTick uint64
	Flags          MirrorFlags
}

var InteractionMirror = donburi.NewComponentType[InteractionMirrorData]()

// LegacyVerb is the single high-level verb older UI bindings understand.
type LegacyVerb int

const (
	LegacyNone LegacyVerb = iota
	LegacySiphon
	LegacyDumpToStorehouse
	LegacyDumpToConstruction
	LegacyGroundDrip
)

func (v LegacyVerb) String() string {
	switch v {
	case LegacySiphon:
		return "Siphon"
	case LegacyDumpToStorehouse:
		return "DumpToStorehouse"
	case LegacyDumpToConstruction:
		return "DumpToConstruction"
	case LegacyGroundDrip:
		return "GroundDrip"
	}
	return "None"
}

// LegacyCommandData is the high-level command mirror.
type LegacyCommandData struct {
	Verb        LegacyVerb
	Target      donburi.Entity
	SinceIssued float64 // seconds since Verb/Target last changed
}

var LegacyCommand = donburi.NewComponentType[LegacyCommandData]()
