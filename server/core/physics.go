package core

import (
	"github.com/automoto/godhand/components"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Physics constants for the sandbox integrator.
const (
	gravityAccel = 9.81
	groundY      = 0.0
	maxFallSpeed = 60.0
)

// updateBodies integrates free bodies and weather objects. Objects a hand
// holds or queues are moved by the hand and skipped here.
func updateBodies(e *ecs.ECS) {
	clockEntry, ok := components.Clock.First(e.World)
	if !ok {
		return
	}
	dt := components.Clock.Get(clockEntry).DeltaTime

	components.Body.Each(e.World, func(entry *donburi.Entry) {
		if isHandOwned(entry) || !entry.HasComponent(components.Transform) {
			return
		}
		stepBody(components.Body.Get(entry), components.Transform.Get(entry), dt)
	})

	components.Weather.Each(e.World, func(entry *donburi.Entry) {
		if isHandOwned(entry) || !entry.HasComponent(components.Transform) {
			return
		}
		tf := components.Transform.Get(entry)
		tf.Position = tf.Position.Add(components.Weather.Get(entry).Velocity.Mul(dt))
	})
}

// stepBody performs one explicit Euler step and stops the body on the ground.
func stepBody(body *components.BodyData, tf *components.TransformData, dt float64) {
	if body.Gravity > 0 {
		vy := body.Velocity.Y() - gravityAccel*body.Gravity*dt
		if vy < -maxFallSpeed {
			vy = -maxFallSpeed
		}
		body.Velocity[1] = vy
	}
	tf.Position = tf.Position.Add(body.Velocity.Mul(dt))

	if tf.Position.Y() <= groundY && body.Velocity.Y() <= 0 {
		tf.Position[1] = groundY
		body.Velocity = mgl64.Vec3{}
	}
}

func isHandOwned(e *donburi.Entry) bool {
	return e.HasComponent(components.Held) || e.HasComponent(components.Queued)
}
