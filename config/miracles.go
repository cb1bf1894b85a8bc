package config

// MiracleType identifies a miracle. Effects live in the miracle-resolution
// subsystem; the hand only forwards the type and its config.
type MiracleType int

const (
	MiracleNone MiracleType = iota
	MiracleHeal
	MiracleLightning
	MiracleWater
	MiracleFood
	MiracleWood
	MiracleFireball
	MiracleShield
)

var miracleNames = map[MiracleType]string{
	MiracleNone:      "none",
	MiracleHeal:      "heal",
	MiracleLightning: "lightning",
	MiracleWater:     "water",
	MiracleFood:      "food",
	MiracleWood:      "wood",
	MiracleFireball:  "fireball",
	MiracleShield:    "shield",
}

func (m MiracleType) String() string {
	if name, ok := miracleNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseMiracleType maps a level/tuning name to a MiracleType.
func ParseMiracleType(name string) MiracleType {
	for t, n := range miracleNames {
		if n == name {
			return t
		}
	}
	return MiracleNone
}

// MiracleConfig contains configuration for a specific miracle type. Release
// events carry a pointer to the entry they were cast from.
type MiracleConfig struct {
	Type     MiracleType `yaml:"-"`
	Name     string      `yaml:"name"`
	Radius   float64     `yaml:"radius"`
	Power    float64     `yaml:"power"`
	Duration float64     `yaml:"duration"` // seconds
	Cost     float64     `yaml:"cost"`     // prayer power
}

// Miracles holds one config per miracle type.
var Miracles map[MiracleType]*MiracleConfig

func init() {
	Miracles = map[MiracleType]*MiracleConfig{
		MiracleHeal:      {Type: MiracleHeal, Name: "heal", Radius: 6, Power: 25, Duration: 0, Cost: 20},
		MiracleLightning: {Type: MiracleLightning, Name: "lightning", Radius: 3, Power: 80, Duration: 0.5, Cost: 40},
		MiracleWater:     {Type: MiracleWater, Name: "water", Radius: 8, Power: 10, Duration: 6, Cost: 15},
		MiracleFood:      {Type: MiracleFood, Name: "food", Radius: 4, Power: 30, Duration: 0, Cost: 25},
		MiracleWood:      {Type: MiracleWood, Name: "wood", Radius: 4, Power: 30, Duration: 0, Cost: 25},
		MiracleFireball:  {Type: MiracleFireball, Name: "fireball", Radius: 4, Power: 60, Duration: 2, Cost: 35},
		MiracleShield:    {Type: MiracleShield, Name: "shield", Radius: 10, Power: 0, Duration: 15, Cost: 50},
	}
}
