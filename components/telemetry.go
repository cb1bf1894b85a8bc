package components

import (
	"github.com/automoto/godhand/config"
	"github.com/yohamta/donburi"
)

// StateCounts buckets hands by legacy display state.
type StateCounts [config.LegacyStateCount]int

// TelemetrySnapshot is what the aggregator hands to its sinks.
type TelemetrySnapshot struct {
	Tick    uint64
	Hands   int
	Current StateCounts
	Window  StateCounts // rolling sum over the configured window
	Totals  [config.LegacyStateCount]uint64
}

// HandTelemetryData holds rolling counters. Only the telemetry pass writes it.
type HandTelemetryData struct {
	ring   []StateCounts
	next   int
	filled int

	Current StateCounts
	Window  StateCounts
	Totals  [config.LegacyStateCount]uint64
	Hands   int

	LastTick      uint64
	LastPublished uint64
}

// Push records one tick of counts and slides the window.
func (t *HandTelemetryData) Push(counts StateCounts, window int) {
	if window <= 0 {
		window = 1
	}
	if len(t.ring) != window {
		t.ring = make([]StateCounts, window)
		t.next = 0
		t.filled = 0
		t.Window = StateCounts{}
	}
	if t.filled == window {
		evicted := t.ring[t.next]
		for i := range t.Window {
			t.Window[i] -= evicted[i]
		}
	} else {
		t.filled++
	}
	t.ring[t.next] = counts
	t.next = (t.next + 1) % window
	for i, n := range counts {
		t.Window[i] += n
		t.Totals[i] += uint64(n)
	}
	t.Current = counts
}

// Snapshot copies the counters for publishing.
func (t *HandTelemetryData) Snapshot() TelemetrySnapshot {
	return TelemetrySnapshot{
		Tick:    t.LastTick,
		Hands:   t.Hands,
		Current: t.Current,
		Window:  t.Window,
		Totals:  t.Totals,
	}
}

var HandTelemetry = donburi.NewComponentType[HandTelemetryData]()
