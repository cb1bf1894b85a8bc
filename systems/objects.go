package systems

import (
	"github.com/automoto/godhand/components"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateObjects moves every indexed object's footprint to its transform.
func UpdateObjects(ecs *ecs.ECS) {
	space, ok := spaceFor(ecs.World)
	if !ok {
		return
	}
	for e := range components.Object.Iter(ecs.World) {
		if !e.HasComponent(components.Transform) {
			continue
		}
		syncObject(space, e, components.Transform.Get(e).Position)
	}
}

func spaceFor(w donburi.World) (*components.SpaceData, bool) {
	e, ok := components.Space.First(w)
	if !ok {
		return nil, false
	}
	return components.Space.Get(e), true
}

// syncObject centers the entity's footprint on pos in space coordinates.
func syncObject(space *components.SpaceData, e *donburi.Entry, pos mgl64.Vec3) {
	if space == nil || !e.HasComponent(components.Object) {
		return
	}
	obj := components.Object.Get(e)
	if obj.Object == nil {
		return
	}
	x, y := space.ToSpace(pos.X(), pos.Z())
	obj.X = x - obj.W/2
	obj.Y = y - obj.H/2
	obj.Update()
}

func removeFromSpace(w donburi.World, e *donburi.Entry) {
	if !e.HasComponent(components.Object) {
		return
	}
	space, ok := spaceFor(w)
	if !ok {
		return
	}
	if obj := components.Object.Get(e); obj.Object != nil {
		space.Space.Remove(obj.Object)
	}
}

func positionOf(e *donburi.Entry) mgl64.Vec3 {
	if !e.HasComponent(components.Transform) {
		return mgl64.Vec3{}
	}
	return components.Transform.Get(e).Position
}
