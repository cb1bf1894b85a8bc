package components

import (
	"github.com/automoto/godhand/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// BotPhase is where an AI hand is in its fetch-and-throw cycle.
type BotPhase int

const (
	BotSeek BotPhase = iota
	BotMoveToPick
	BotGrab
	BotMoveToDrop
	BotCharge
	BotRelease
)

// HandBotData drives an AI hand's input snapshot.
type HandBotData struct {
	Difficulty config.BotDifficulty
	Drops      []mgl64.Vec3 // throw waypoints, visited in order
	DropIndex  int

	Phase  BotPhase
	From   mgl64.Vec3
	To     mgl64.Vec3
	Tween  *gween.Tween // 0..1 progress along From->To
	Cursor mgl64.Vec3
	Timer  float64 // dwell or charge time in the current phase
	Target donburi.Entity
}

var HandBot = donburi.NewComponentType[HandBotData]()
