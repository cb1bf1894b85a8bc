package components

import (
	"github.com/automoto/godhand/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// HandEventKind identifies a lifecycle event.
type HandEventKind int

const (
	EventStateChanged HandEventKind = iota
	EventTypeChanged
	EventAmountChanged
)

func (k HandEventKind) String() string {
	switch k {
	case EventStateChanged:
		return "StateChanged"
	case EventTypeChanged:
		return "TypeChanged"
	case EventAmountChanged:
		return "AmountChanged"
	}
	return "Unknown"
}

// HandEvent carries the hand's cargo snapshot at the time it fired.
type HandEvent struct {
	Kind         HandEventKind
	From         config.LegacyDisplayState
	To           config.LegacyDisplayState
	ResourceType int
	Amount       float64
	Capacity     float64
}

// HandEventsData is cleared at the start of every recorded tick.
type HandEventsData struct {
	Events []HandEvent
}

// Has reports whether an event of the given kind fired this tick.
func (e *HandEventsData) Has(kind HandEventKind) bool {
	for i := range e.Events {
		if e.Events[i].Kind == kind {
			return true
		}
	}
	return false
}

var HandEvents = donburi.NewComponentType[HandEventsData]()

// MiracleRelease asks the miracle-resolution subsystem to resolve a miracle.
type MiracleRelease struct {
	Type           config.MiracleType
	TargetPosition mgl64.Vec3
	TargetNormal   mgl64.Vec3
	TargetEntity   donburi.Entity
	Direction      mgl64.Vec3
	Impulse        float64
	Source         *config.MiracleConfig
}

type MiracleEventsData struct {
	Events []MiracleRelease
}

var MiracleEvents = donburi.NewComponentType[MiracleEventsData]()
