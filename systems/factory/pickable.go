package factory

import (
	"github.com/automoto/godhand/archetypes"
	"github.com/automoto/godhand/components"
	cfg "github.com/automoto/godhand/config"
	"github.com/automoto/godhand/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreatePickable spawns a physics object a hand can carry. resourceID may be
// empty for untyped objects.
func CreatePickable(ecs *ecs.ECS, pos mgl64.Vec3, resourceID string, carryLerp float64) *donburi.Entry {
	obj := archetypes.Pickable.Spawn(ecs)
	components.Pickable.SetValue(obj, components.PickableData{
		ResourceTypeID: resourceID,
		CarryLerp:      carryLerp,
	})
	components.Transform.SetValue(obj, components.TransformData{
		Position: pos,
		Rotation: mgl64.QuatIdent(),
	})
	components.Body.SetValue(obj, components.BodyData{
		Gravity: cfg.Sim.DefaultGravity,
	})
	indexObject(ecs, obj, pos)
	return obj
}

// CreateWeatherObject spawns a carryable weather object that moves by
// velocity alone.
func CreateWeatherObject(ecs *ecs.ECS, pos mgl64.Vec3, resourceID string) *donburi.Entry {
	obj := archetypes.WeatherObject.Spawn(ecs)
	components.Pickable.SetValue(obj, components.PickableData{
		ResourceTypeID: resourceID,
	})
	components.Transform.SetValue(obj, components.TransformData{
		Position: pos,
		Rotation: mgl64.QuatIdent(),
	})
	indexObject(ecs, obj, pos)
	return obj
}

// CreateMiracleToken spawns a token that casts its miracle when released.
func CreateMiracleToken(ecs *ecs.ECS, pos mgl64.Vec3, miracle cfg.MiracleType) *donburi.Entry {
	token := archetypes.MiracleToken.Spawn(ecs)
	components.MiracleToken.SetValue(token, components.MiracleTokenData{
		Type:   miracle,
		Config: cfg.Miracles[miracle],
	})
	components.Transform.SetValue(token, components.TransformData{
		Position: pos,
		Rotation: mgl64.QuatIdent(),
	})
	components.Body.SetValue(token, components.BodyData{
		Gravity: cfg.Sim.DefaultGravity,
	})
	indexObject(ecs, token, pos)
	return token
}

// indexObject adds the entity's footprint to the space, when there is one.
func indexObject(ecs *ecs.ECS, e *donburi.Entry, pos mgl64.Vec3) {
	spaceEntry, ok := components.Space.First(ecs.World)
	if !ok {
		return
	}
	space := components.Space.Get(spaceEntry)
	size := space.ObjectSize
	x, y := space.ToSpace(pos.X(), pos.Z())

	obj := resolv.NewObject(x-size/2, y-size/2, size, size, tags.ResolvPickable)
	obj.SetShape(resolv.NewRectangle(0, 0, size, size))
	obj.Data = e
	space.Space.Add(obj)

	donburi.Add(e, components.Object, &components.ObjectData{Object: obj})
}
