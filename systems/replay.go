package systems

import (
	"github.com/automoto/godhand/components"
	cfg "github.com/automoto/godhand/config"
	"github.com/automoto/godhand/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CaptureHandRecords copies every hand's output for the tick, ordered by
// HandIndex.
func CaptureHandRecords(w donburi.World) []components.HandRecord {
	hands := sortedHands(w)
	records := make([]components.HandRecord, 0, len(hands))
	for _, e := range hands {
		rec := components.HandRecord{
			HandIndex: components.Hand.Get(e).HandIndex,
			State:     components.Hand.Get(e).State,
			Commands:  append([]components.HandCommand(nil), components.HandCommands.Get(e).Commands...),
			Events:    append([]components.HandEvent(nil), components.HandEvents.Get(e).Events...),
			Miracles:  append([]components.MiracleRelease(nil), components.MiracleEvents.Get(e).Events...),
		}
		// Config pointers are rebuilt from the miracle table on playback.
		for i := range rec.Miracles {
			rec.Miracles[i].Source = nil
		}
		records = append(records, rec)
	}
	return records
}

// InjectReplayCommands writes recorded outputs back onto the matching hands
// while the clock is in playback. It returns how many hands were matched.
func InjectReplayCommands(w donburi.World, records []components.HandRecord) int {
	byIndex := make(map[int]components.HandRecord, len(records))
	for _, r := range records {
		byIndex[r.HandIndex] = r
	}

	matched := 0
	for _, e := range sortedHands(w) {
		hand := components.Hand.Get(e)
		r, ok := byIndex[hand.HandIndex]
		if !ok {
			continue
		}
		hand.PreviousState = hand.State
		hand.State = r.State
		components.HandCommands.Get(e).Commands = append(components.HandCommands.Get(e).Commands[:0], r.Commands...)
		components.HandEvents.Get(e).Events = append(components.HandEvents.Get(e).Events[:0], r.Events...)
		miracles := components.MiracleEvents.Get(e)
		miracles.Events = append(miracles.Events[:0], r.Miracles...)
		for i := range miracles.Events {
			miracles.Events[i].Source = cfg.Miracles[miracles.Events[i].Type]
		}
		matched++
	}
	return matched
}

// ApplyReplayCommands moves objects the way the injected commands say the
// hands moved them, so a replayed world follows the recording. Picked and
// held objects are pinned to the recorded position, throws get their
// recorded velocity, and an object a hand still holds but no longer
// mentions was dropped (or consumed, for a token released with a cast).
// Runs only in playback, after InjectReplayCommands.
func ApplyReplayCommands(e *ecs.ECS) {
	clockEntry, ok := components.Clock.First(e.World)
	if !ok || components.Clock.Get(clockEntry).Mode != cfg.ClockPlayback {
		return
	}
	w := e.World
	var buffer StructuralBuffer

	for _, hand := range sortedHands(w) {
		handID := hand.Entity()
		mentioned := map[donburi.Entity]bool{}
		cast := false

		for _, c := range components.HandCommands.Get(hand).Commands {
			if c.Verb == netconfig.VerbCastMiracle {
				cast = true
				continue
			}
			if !w.Valid(c.Target) {
				continue
			}
			obj := w.Entry(c.Target)
			mentioned[c.Target] = true
			switch c.Verb {
			case netconfig.VerbPick, netconfig.VerbHold:
				if !obj.HasComponent(components.Held) {
					buffer.AttachHeld(c.Target, handID)
				}
				setReplayMotion(obj, c.Position, mgl64.Vec3{}, 0)
			case netconfig.VerbQueueThrow:
				buffer.DetachHeld(c.Target)
				buffer.AttachQueued(c.Target, handID)
				setReplayMotion(obj, c.Position, mgl64.Vec3{}, 0)
			case netconfig.VerbThrow:
				buffer.DetachHeld(c.Target)
				buffer.DetachQueued(c.Target)
				setReplayMotion(obj, c.Position, c.Direction.Mul(c.Speed), cfg.Sim.DefaultGravity)
			}
		}

		components.Held.Each(w, func(obj *donburi.Entry) {
			if components.Held.Get(obj).Hand != handID || mentioned[obj.Entity()] {
				return
			}
			switch {
			case cast && obj.HasComponent(components.MiracleToken):
				buffer.Destroy(obj.Entity())
			case obj.HasComponent(components.Queued):
			default:
				buffer.DetachHeld(obj.Entity())
				if obj.HasComponent(components.Body) {
					if body := components.Body.Get(obj); body.Gravity <= 0 {
						body.Gravity = cfg.Sim.DefaultGravity
					}
				}
			}
		})
	}
	buffer.Commit(w)
}

// setReplayMotion places obj and sets its velocity. Weather objects carry
// their own velocity and no gravity.
func setReplayMotion(obj *donburi.Entry, pos, velocity mgl64.Vec3, gravity float64) {
	if obj.HasComponent(components.Transform) {
		components.Transform.Get(obj).Position = pos
	}
	if obj.HasComponent(components.Weather) {
		components.Weather.Get(obj).Velocity = velocity
		return
	}
	if obj.HasComponent(components.Body) {
		body := components.Body.Get(obj)
		body.Velocity = velocity
		body.Gravity = gravity
	}
}
