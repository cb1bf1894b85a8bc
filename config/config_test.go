package config

import (
	"strings"
	"testing"

	"github.com/automoto/godhand/shared/netconfig"
)

func TestParseTuning(t *testing.T) {
	raw := []byte(`
sim:
  tick_rate: 60
hand:
  capacity: 20
  pickup_radius: 5
miracles:
  heal:
    power: 50
bots:
  Hard:
    charge_seconds: 2
`)
	tuning, err := ParseTuning(raw)
	if err != nil {
		t.Fatalf("ParseTuning: %v", err)
	}
	if tuning.Sim.TickRate != 60 {
		t.Errorf("tick rate = %d, want 60", tuning.Sim.TickRate)
	}
	if tuning.Hand.Capacity != 20 || tuning.Hand.PickupRadius != 5 {
		t.Errorf("hand = %+v", tuning.Hand)
	}
	if tuning.Hand.ThrowImpulse != Hand.ThrowImpulse {
		t.Errorf("unset field lost its default: %v", tuning.Hand.ThrowImpulse)
	}
	if tuning.Spatial != Spatial {
		t.Errorf("absent section changed: %+v", tuning.Spatial)
	}
	if tuning.Miracles["heal"].Power != 50 {
		t.Errorf("miracles = %+v", tuning.Miracles)
	}
}

func TestParseTuningRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bad yaml", "sim: [", "tuning"},
		{"zero tick rate", "sim:\n  tick_rate: 0\n", "tick_rate"},
		{"negative capacity", "hand:\n  capacity: -1\n", "capacity"},
		{"unknown miracle", "miracles:\n  meteor: {}\n", "meteor"},
		{"unknown difficulty", "bots:\n  nightmare: {}\n", "nightmare"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTuning([]byte(tt.raw))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestStateProjections(t *testing.T) {
	tests := []struct {
		state  HandStateID
		legacy LegacyDisplayState
		shared netconfig.HandStateID
	}{
		{HandEmpty, LegacyEmpty, netconfig.HandIdle},
		{HandHolding, LegacyHolding, netconfig.HandCarry},
		{HandDragging, LegacyDragging, netconfig.HandInteract},
		{HandSlingshotAim, LegacySlingshotAim, netconfig.HandAim},
		{HandDumping, LegacyDumping, netconfig.HandInteract},
		{HandCasting, LegacyHolding, netconfig.HandCast},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := LegacyDisplay(tt.state); got != tt.legacy {
				t.Errorf("LegacyDisplay = %v, want %v", got, tt.legacy)
			}
			if got := SharedState(tt.state); got != tt.shared {
				t.Errorf("SharedState = %v, want %v", got, tt.shared)
			}
		})
	}
	if got := SharedState(HandStateID(99)); got != netconfig.HandStateNone {
		t.Errorf("unknown state = %v, want none", got)
	}
}

func TestParseNames(t *testing.T) {
	if got := ParseMiracleType("lightning"); got != MiracleLightning {
		t.Errorf("ParseMiracleType = %v", got)
	}
	if got := ParseMiracleType("meteor"); got != MiracleNone {
		t.Errorf("unknown miracle = %v, want none", got)
	}
	if d, ok := ParseBotDifficulty("HARD"); !ok || d != BotDifficultyHard {
		t.Errorf("ParseBotDifficulty = %v %v", d, ok)
	}
	if _, ok := ParseBotDifficulty("nightmare"); ok {
		t.Error("unknown difficulty parsed")
	}
}
