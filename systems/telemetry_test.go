package systems

import (
	"errors"
	"testing"

	"github.com/automoto/godhand/components"
	cfg "github.com/automoto/godhand/config"
	"github.com/automoto/godhand/systems/factory"
)

type recordingSink struct {
	snapshots []components.TelemetrySnapshot
	err       error
}

func (s *recordingSink) PublishTelemetry(snapshot components.TelemetrySnapshot) error {
	s.snapshots = append(s.snapshots, snapshot)
	return s.err
}

func withTelemetryConfig(t *testing.T, c cfg.TelemetryConfig) {
	t.Helper()
	saved := cfg.Telemetry
	cfg.Telemetry = c
	t.Cleanup(func() { cfg.Telemetry = saved })
}

func TestTelemetryCountsMirroredStates(t *testing.T) {
	withTelemetryConfig(t, cfg.TelemetryConfig{Window: 2, PublishEvery: 1})
	w := newTestWorld(t, false)
	factory.CreateTelemetry(w.ecs)
	holder := w.addHand(0, 0, 0)
	w.addHand(1, 20, 20)
	w.addPickable(0, 0, "")

	sink := &recordingSink{err: errors.New("sink offline")}
	unregister := RegisterTelemetrySink(sink)
	defer unregister()

	w.pick(t, holder)
	UpdateHandTelemetry(w.ecs)
	if len(sink.snapshots) != 1 {
		t.Fatalf("published %d snapshots, want 1", len(sink.snapshots))
	}
	s := sink.snapshots[0]
	if s.Hands != 2 || s.Current[cfg.LegacyHolding] != 1 || s.Current[cfg.LegacyEmpty] != 1 {
		t.Fatalf("snapshot = %+v", s)
	}

	// Same tick: nothing new to publish.
	UpdateHandTelemetry(w.ecs)
	if len(sink.snapshots) != 1 {
		t.Fatalf("published twice on one tick")
	}

	w.step()
	UpdateHandTelemetry(w.ecs)
	if len(sink.snapshots) != 2 {
		t.Fatalf("published %d snapshots, want 2", len(sink.snapshots))
	}
	s = sink.snapshots[1]
	if s.Window[cfg.LegacyHolding] != 2 || s.Window[cfg.LegacyEmpty] != 2 {
		t.Errorf("window = %v, want the last two ticks", s.Window)
	}
	if s.Totals[cfg.LegacyHolding] != 3 {
		t.Errorf("holding total = %d, want 3", s.Totals[cfg.LegacyHolding])
	}

	unregister()
	w.step()
	UpdateHandTelemetry(w.ecs)
	if len(sink.snapshots) != 2 {
		t.Error("unregistered sink still received snapshots")
	}
}

func TestTelemetryIdleDuringPlayback(t *testing.T) {
	withTelemetryConfig(t, cfg.TelemetryConfig{Window: 4, PublishEvery: 1})
	w := newTestWorld(t, false)
	tel := factory.CreateTelemetry(w.ecs)
	w.addHand(0, 0, 0)

	w.clock().Mode = cfg.ClockPlayback
	AdvanceClock(w.ecs)
	UpdateHandTelemetry(w.ecs)

	if got := components.HandTelemetry.Get(tel).Totals[cfg.LegacyEmpty]; got != 0 {
		t.Errorf("playback counted %d hands", got)
	}
}
