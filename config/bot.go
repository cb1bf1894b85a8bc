package config

import "strings"

// BotDifficulty affects how quickly an AI hand moves and how hard it throws
type BotDifficulty int

const (
	BotDifficultyEasy BotDifficulty = iota
	BotDifficultyNormal
	BotDifficultyHard
)

var botDifficultyNames = map[string]BotDifficulty{
	"easy":   BotDifficultyEasy,
	"normal": BotDifficultyNormal,
	"hard":   BotDifficultyHard,
}

// ParseBotDifficulty maps a level/tuning name to a difficulty.
func ParseBotDifficulty(name string) (BotDifficulty, bool) {
	d, ok := botDifficultyNames[strings.ToLower(name)]
	return d, ok
}

// BotDifficultyConfig holds tuning values for AI hand behavior at a specific difficulty
type BotDifficultyConfig struct {
	ReactionDelay float64 `yaml:"reaction_delay"` // seconds of dwell at each waypoint
	CursorSpeed   float64 `yaml:"cursor_speed"`   // world units per second along a route leg
	ChargeSeconds float64 `yaml:"charge_seconds"` // how long the trigger is held before a throw
	Ease          string  `yaml:"ease"`           // gween easing name for route legs
}

// BotConfigData holds all bot-related configuration
type BotConfigData struct {
	Difficulties map[BotDifficulty]BotDifficultyConfig
}

// Bot holds bot AI configuration
var Bot BotConfigData

func init() {
	Bot = BotConfigData{
		Difficulties: map[BotDifficulty]BotDifficultyConfig{
			BotDifficultyEasy: {
				ReactionDelay: 0.5,
				CursorSpeed:   6.0,
				ChargeSeconds: 0.3,
				Ease:          "InOutQuad",
			},
			BotDifficultyNormal: {
				ReactionDelay: 0.25,
				CursorSpeed:   10.0,
				ChargeSeconds: 0.8,
				Ease:          "InOutCubic",
			},
			BotDifficultyHard: {
				ReactionDelay: 0.1,
				CursorSpeed:   16.0,
				ChargeSeconds: 1.5,
				Ease:          "OutExpo",
			},
		},
	}
}
