package messages

// SpawnEvent is broadcast when a new entity spawns
type SpawnEvent struct {
	NetworkID  uint   // Assigned NetworkId
	EntityType string // "hand", "pickable", "token"
	X, Y, Z    float64
}

// DespawnEvent is broadcast when an entity is removed
type DespawnEvent struct {
	NetworkID uint
}

// ThrowEvent is broadcast when a hand throws an object, queued or not
type ThrowEvent struct {
	HandNetworkID   uint
	ObjectNetworkID uint
	X, Y, Z         float64
	DirX, DirY      float64 // Normalized direction
	DirZ            float64
	Speed           float64
	ChargeLevel     float64 // 0.0 to 1.0
}

// MiracleCastEvent is broadcast when a hand casts a miracle
type MiracleCastEvent struct {
	HandNetworkID uint
	Miracle       string
	X, Y, Z       float64
	Impulse       float64
}

// HandStateChangeEvent is broadcast when a hand's display state changes
type HandStateChangeEvent struct {
	HandNetworkID uint
	From, To      string
	ResourceType  int
	Amount        float64
}
