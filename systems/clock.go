package systems

import (
	"github.com/automoto/godhand/components"
	"github.com/yohamta/donburi/ecs"
)

// AdvanceClock moves the world clock to the next tick. Runs last.
func AdvanceClock(e *ecs.ECS) {
	if entry, ok := components.Clock.First(e.World); ok {
		components.Clock.Get(entry).Tick++
	}
}
