package components

import (
	"github.com/automoto/godhand/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// HandCommand is one low-level instruction emitted by the hand pass. Movement,
// audio and physics feedback consume these; replay feeds them back verbatim.
type HandCommand struct {
	Tick         uint64
	Verb         netconfig.CommandVerb
	Target       donburi.Entity
	Position     mgl64.Vec3
	Direction    mgl64.Vec3
	Speed        float64
	Charge       float64 // normalized 0..1
	ResourceType int
	Amount       float64
}

// HandCommandsData is rebuilt from scratch every recorded tick.
type HandCommandsData struct {
	Commands []HandCommand
}

// Count returns how many commands with the given verb were emitted.
func (c *HandCommandsData) Count(verb netconfig.CommandVerb) int {
	n := 0
	for i := range c.Commands {
		if c.Commands[i].Verb == verb {
			n++
		}
	}
	return n
}

var HandCommands = donburi.NewComponentType[HandCommandsData]()
