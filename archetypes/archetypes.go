package archetypes

import (
	"github.com/automoto/godhand/components"
	cfg "github.com/automoto/godhand/config"
	"github.com/automoto/godhand/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Hand = newArchetype(
		tags.Hand,
		components.Hand,
		components.HandConfig,
		components.HandInput,
		components.HandHover,
		components.HandAffordance,
		components.HandIntent,
		components.HandCommands,
		components.HandEvents,
		components.MiracleEvents,
		components.ThrowQueue,
		components.InteractionMirror,
		components.LegacyCommand,
	)
	Pickable = newArchetype(
		tags.WorldObject,
		components.Pickable,
		components.Transform,
		components.Body,
	)
	WeatherObject = newArchetype(
		tags.WorldObject,
		components.Pickable,
		components.Transform,
		components.Weather,
	)
	MiracleToken = newArchetype(
		tags.WorldObject,
		tags.MiracleToken,
		components.Pickable,
		components.MiracleToken,
		components.Transform,
		components.Body,
	)
	Clock = newArchetype(
		components.Clock,
	)
	Space = newArchetype(
		components.Space,
	)
	Catalog = newArchetype(
		components.ResourceCatalog,
	)
	Telemetry = newArchetype(
		components.HandTelemetry,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
