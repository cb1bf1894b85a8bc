package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning is the on-disk layout of a tuning file. Sections that are absent
// keep their compiled-in defaults.
type Tuning struct {
	Sim       SimConfig                      `yaml:"sim"`
	Hand      HandConfig                     `yaml:"hand"`
	Spatial   SpatialConfig                  `yaml:"spatial"`
	Telemetry TelemetryConfig                `yaml:"telemetry"`
	Miracles  map[string]MiracleConfig       `yaml:"miracles"`
	Bots      map[string]BotDifficultyConfig `yaml:"bots"`
}

// ParseTuning decodes raw YAML on top of the current defaults.
func ParseTuning(raw []byte) (Tuning, error) {
	t := Tuning{
		Sim:       Sim,
		Hand:      Hand,
		Spatial:   Spatial,
		Telemetry: Telemetry,
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning: %w", err)
	}
	if t.Sim.TickRate <= 0 {
		return t, fmt.Errorf("tuning: sim.tick_rate must be positive, got %d", t.Sim.TickRate)
	}
	if t.Hand.Capacity < 0 {
		return t, fmt.Errorf("tuning: hand.capacity must not be negative, got %v", t.Hand.Capacity)
	}
	for name := range t.Miracles {
		if ParseMiracleType(name) == MiracleNone {
			return t, fmt.Errorf("tuning: unknown miracle %q", name)
		}
	}
	for name := range t.Bots {
		if _, ok := ParseBotDifficulty(name); !ok {
			return t, fmt.Errorf("tuning: unknown bot difficulty %q", name)
		}
	}
	return t, nil
}

// LoadTuning reads a tuning file and applies it to the global configuration.
func LoadTuning(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read tuning %s: %w", path, err)
	}
	t, err := ParseTuning(raw)
	if err != nil {
		return err
	}
	t.Apply()
	return nil
}

// Apply copies the tuning into the global configuration.
func (t Tuning) Apply() {
	Sim = t.Sim
	Hand = t.Hand
	Spatial = t.Spatial
	Telemetry = t.Telemetry

	for name, mc := range t.Miracles {
		typ := ParseMiracleType(name)
		mc := mc
		mc.Type = typ
		if mc.Name == "" {
			mc.Name = name
		}
		Miracles[typ] = &mc
	}
	for name, bc := range t.Bots {
		if d, ok := ParseBotDifficulty(name); ok {
			Bot.Difficulties[d] = bc
		}
	}
}
