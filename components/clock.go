package components

import (
	"github.com/automoto/godhand/config"
	"github.com/yohamta/donburi"
)

// ClockData is the global deterministic clock. One per world.
type ClockData struct {
	Tick      uint64
	DeltaTime float64 // seconds per tick
	Mode      config.ClockMode
}

// Recording reports whether live simulation passes should run.
func (c *ClockData) Recording() bool {
	return c.Mode == config.ClockRecording
}

var Clock = donburi.NewComponentType[ClockData]()
