package systems

import (
	"log"

	"github.com/automoto/godhand/components"
	cfg "github.com/automoto/godhand/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// TelemetrySink receives periodic snapshots of the hand state counters.
type TelemetrySink interface {
	PublishTelemetry(snapshot components.TelemetrySnapshot) error
}

var telemetrySinks []TelemetrySink

// RegisterTelemetrySink adds a sink and returns a func that removes it.
func RegisterTelemetrySink(s TelemetrySink) func() {
	telemetrySinks = append(telemetrySinks, s)
	return func() {
		for i, existing := range telemetrySinks {
			if existing == s {
				telemetrySinks = append(telemetrySinks[:i], telemetrySinks[i+1:]...)
				return
			}
		}
	}
}

// LogSink writes snapshots to the standard logger.
type LogSink struct{}

func (LogSink) PublishTelemetry(s components.TelemetrySnapshot) error {
	log.Printf("[telemetry] tick=%d hands=%d current=%v window=%v", s.Tick, s.Hands, s.Current, s.Window)
	return nil
}

// UpdateHandTelemetry buckets every hand's mirrored display state. It only
// reads the mirrors and never writes back into the hands.
func UpdateHandTelemetry(e *ecs.ECS) {
	clockEntry, ok := components.Clock.First(e.World)
	if !ok {
		return
	}
	clock := components.Clock.Get(clockEntry)
	if !clock.Recording() {
		return
	}
	telEntry, ok := components.HandTelemetry.First(e.World)
	if !ok {
		return
	}
	tel := components.HandTelemetry.Get(telEntry)

	var counts components.StateCounts
	hands := 0
	components.InteractionMirror.Each(e.World, func(entry *donburi.Entry) {
		m := components.InteractionMirror.Get(entry)
		if m.State >= 0 && m.State < cfg.LegacyStateCount {
			counts[m.State]++
		}
		hands++
	})

	tel.Hands = hands
	tel.LastTick = clock.Tick
	tel.Push(counts, cfg.Telemetry.Window)

	every := uint64(cfg.Telemetry.PublishEvery)
	if every == 0 || clock.Tick-tel.LastPublished < every {
		return
	}
	tel.LastPublished = clock.Tick
	snapshot := tel.Snapshot()
	for _, s := range telemetrySinks {
		if err := s.PublishTelemetry(snapshot); err != nil {
			log.Printf("[telemetry] publish failed: %v", err)
		}
	}
}
