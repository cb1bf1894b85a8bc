package tags

import "github.com/yohamta/donburi"

var (
	Hand         = donburi.NewTag().SetName("Hand")
	Bot          = donburi.NewTag().SetName("Bot")
	WorldObject  = donburi.NewTag().SetName("WorldObject")
	MiracleToken = donburi.NewTag().SetName("MiracleToken")
)

// Resolv tags for the pick candidate index
const (
	ResolvPickable = "pickable"
	ResolvProbe    = "probe"
)
