package config

import "github.com/yohamta/donburi/ecs"

// Default is the only layer the simulation uses.
const Default ecs.LayerID = 0

// Resource type indices. Catalog-resolved types start after ResourceGeneric.
const (
	ResourceNone    = -1 // nothing carried
	ResourceGeneric = 0  // untyped cargo
)

// ClockMode is the global simulation clock mode.
type ClockMode int

const (
	ClockRecording ClockMode = iota // live simulation, hand pass runs
	ClockPlayback                   // replaying recorded commands
	ClockRewind                     // scrubbing backwards
)

func (m ClockMode) String() string {
	switch m {
	case ClockRecording:
		return "recording"
	case ClockPlayback:
		return "playback"
	case ClockRewind:
		return "rewind"
	}
	return "unknown"
}

// HandConfig contains the per-hand tunables. A copy is stored on every hand
// at spawn; the hand pass only reads it.
type HandConfig struct {
	Capacity       float64 `yaml:"capacity"`
	HoldHeight     float64 `yaml:"hold_height"`      // minimum carry height above the ground plane
	HoldFollowLerp float64 `yaml:"hold_follow_lerp"` // 0..1 per tick

	// Charge window (seconds)
	MinChargeSeconds float64 `yaml:"min_charge_seconds"`
	MaxChargeSeconds float64 `yaml:"max_charge_seconds"`

	// Throw
	ThrowImpulse       float64 `yaml:"throw_impulse"`
	ChargeMultiplier   float64 `yaml:"charge_multiplier"`
	CooldownAfterThrow float64 `yaml:"cooldown_after_throw"` // seconds
	MinThrowSpeed      float64 `yaml:"min_throw_speed"`
	MaxThrowSpeed      float64 `yaml:"max_throw_speed"`

	// Pick
	PickupRadius    float64 `yaml:"pickup_radius"`
	MaxGrabDistance float64 `yaml:"max_grab_distance"` // vertical
	AimRange        float64 `yaml:"aim_range"`         // max hover distance, 0 = unbounded

	// Resource verbs (units per second)
	SiphonRate float64 `yaml:"siphon_rate"`
	DumpRate   float64 `yaml:"dump_rate"`

	QueueCapacity int `yaml:"queue_capacity"` // 0 = unbounded
}

// SimConfig contains global simulation settings.
type SimConfig struct {
	TickRate       int     `yaml:"tick_rate"`
	DefaultGravity float64 `yaml:"default_gravity"` // gravity factor restored on thrown bodies
}

// SpatialConfig sizes the resolv space used for pick candidate search.
// World X maps to space X and world Z maps to space Y.
type SpatialConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	CellWidth  int     `yaml:"cell_width"`
	CellHeight int     `yaml:"cell_height"`
	OriginX    float64 `yaml:"origin_x"`
	OriginZ    float64 `yaml:"origin_z"`
	ObjectSize float64 `yaml:"object_size"` // footprint of a pickable in the index
}

// TelemetryConfig contains hand telemetry aggregation settings.
type TelemetryConfig struct {
	Window       int    `yaml:"window"`        // rolling window in ticks
	PublishEvery int    `yaml:"publish_every"` // ticks between sink publishes
	SaveKey      string `yaml:"save_key"`      // gdata item key for lifetime totals
}

// Global configuration instances
var Hand HandConfig
var Sim SimConfig
var Spatial SpatialConfig
var Telemetry TelemetryConfig

func init() {
	Sim = SimConfig{
		TickRate:       30,
		DefaultGravity: 1.0,
	}

	Hand = HandConfig{
		Capacity:       10,
		HoldHeight:     2.5,
		HoldFollowLerp: 0.35,

		MinChargeSeconds: 0.25,
		MaxChargeSeconds: 1.5,

		ThrowImpulse:       12.0,
		ChargeMultiplier:   2.0,
		CooldownAfterThrow: 0.3,
		MinThrowSpeed:      6.0,
		MaxThrowSpeed:      40.0,

		PickupRadius:    3.0,
		MaxGrabDistance: 4.0,
		AimRange:        0,

		SiphonRate: 4.0,
		DumpRate:   6.0,

		QueueCapacity: 8,
	}

	Spatial = SpatialConfig{
		Width:      1024,
		Height:     1024,
		CellWidth:  8,
		CellHeight: 8,
		OriginX:    -512,
		OriginZ:    -512,
		ObjectSize: 1,
	}

	Telemetry = TelemetryConfig{
		Window:       300, // 10 seconds at 30 Hz
		PublishEvery: 30,
		SaveKey:      "hand_telemetry",
	}
}
