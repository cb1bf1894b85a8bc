// Package leveldata provides TMX level parsing for hand sandboxes.
// It has no dependencies on donburi or resolv, pure data only.
package leveldata

// LevelData holds the spawn layout parsed from a TMX level file. Tiled
// pixel coordinates are converted to world units at one unit per tile, with
// Tiled's Y axis becoming world Z.
type LevelData struct {
	Name          string
	Width         float64
	Depth         float64
	Hands         []HandSpawn
	Pickables     []PickableSpawn
	MiracleTokens []TokenSpawn

	// Distinct resource identifiers in order of first appearance
	Resources []string
}

// HandSpawn places a hand cursor.
type HandSpawn struct {
	Index      int
	X, Z       float64
	Bot        bool
	Difficulty string // "easy", "normal", "hard"
}

// PickableSpawn places a carryable object.
type PickableSpawn struct {
	X, Y, Z      float64
	ResourceType string // "" for untyped objects
	Weather      bool
	CarryLerp    float64
}

// TokenSpawn places a miracle token.
type TokenSpawn struct {
	X, Y, Z float64
	Miracle string
}
