package factory

import (
	"github.com/automoto/godhand/archetypes"
	"github.com/automoto/godhand/components"
	cfg "github.com/automoto/godhand/config"
	"github.com/automoto/godhand/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateSpace builds the pick candidate index from cfg.Spatial.
func CreateSpace(ecs *ecs.ECS) *donburi.Entry {
	space := archetypes.Space.Spawn(ecs)
	s := resolv.NewSpace(cfg.Spatial.Width, cfg.Spatial.Height, cfg.Spatial.CellWidth, cfg.Spatial.CellHeight)

	// The probe is resized over the cursor for every radius query.
	probe := resolv.NewObject(0, 0, 1, 1, tags.ResolvProbe)
	s.Add(probe)

	components.Space.SetValue(space, components.SpaceData{
		Space:      s,
		Probe:      probe,
		OriginX:    cfg.Spatial.OriginX,
		OriginZ:    cfg.Spatial.OriginZ,
		Width:      float64(cfg.Spatial.Width),
		Height:     float64(cfg.Spatial.Height),
		ObjectSize: cfg.Spatial.ObjectSize,
	})
	return space
}

// CreateClock creates the world clock in recording mode.
func CreateClock(ecs *ecs.ECS, deltaTime float64) *donburi.Entry {
	clock := archetypes.Clock.Spawn(ecs)
	components.Clock.SetValue(clock, components.ClockData{
		DeltaTime: deltaTime,
		Mode:      cfg.ClockRecording,
	})
	return clock
}

// CreateCatalog registers resource identifiers in the given order.
func CreateCatalog(ecs *ecs.ECS, ids ...string) *donburi.Entry {
	catalog := archetypes.Catalog.Spawn(ecs)
	components.ResourceCatalog.Set(catalog, components.NewResourceCatalog(ids...))
	return catalog
}

func CreateTelemetry(ecs *ecs.ECS) *donburi.Entry {
	return archetypes.Telemetry.Spawn(ecs)
}
