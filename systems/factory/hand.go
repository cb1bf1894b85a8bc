package factory

import (
	"github.com/automoto/godhand/archetypes"
	"github.com/automoto/godhand/components"
	cfg "github.com/automoto/godhand/config"
	"github.com/automoto/godhand/shared/gamemath"
	"github.com/automoto/godhand/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateHand spawns an idle hand with its own copy of the tunables.
func CreateHand(ecs *ecs.ECS, index int, hc cfg.HandConfig) *donburi.Entry {
	hand := archetypes.Hand.Spawn(ecs)

	components.Hand.SetValue(hand, components.HandData{
		HandIndex:        index,
		HeldEntity:       donburi.Null,
		ResourceType:     cfg.ResourceNone,
		Capacity:         hc.Capacity,
		Aim:              gamemath.Down,
		State:            cfg.HandEmpty,
		PreviousState:    cfg.HandEmpty,
		LastResourceType: cfg.ResourceNone,
	})
	components.HandConfig.SetValue(hand, hc)
	components.HandInput.SetValue(hand, components.HandInputData{
		RayOrigin:    mgl64.Vec3{0, 20, 0},
		RayDirection: gamemath.Down,
	})
	components.HandAffordance.SetValue(hand, components.HandAffordanceData{
		ResourceType: cfg.ResourceNone,
	})
	components.InteractionMirror.SetValue(hand, components.InteractionMirrorData{
		Hand: hand.Entity(),
	})

	return hand
}

// AddMiracleCaster gives a hand spell slots to cast from without a token.
func AddMiracleCaster(hand *donburi.Entry, selected int, slots ...components.MiracleSlot) {
	for i := range slots {
		if slots[i].Config == nil {
			slots[i].Config = cfg.Miracles[slots[i].Type]
		}
	}
	donburi.Add(hand, components.MiracleCaster, &components.MiracleCasterData{SelectedSlot: selected})
	donburi.Add(hand, components.MiracleSlots, &components.MiracleSlotsData{Slots: slots})
}

// CreateBotHand spawns an AI-driven hand that fetches objects and throws them
// toward the drop waypoints in turn.
func CreateBotHand(ecs *ecs.ECS, index int, difficulty cfg.BotDifficulty, drops ...mgl64.Vec3) *donburi.Entry {
	hand := CreateHand(ecs, index, cfg.Hand)
	hand.AddComponent(tags.Bot)
	donburi.Add(hand, components.HandBot, &components.HandBotData{
		Difficulty: difficulty,
		Drops:      drops,
		Target:     donburi.Null,
	})
	return hand
}
