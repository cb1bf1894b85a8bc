package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// HandInputData is the per-tick raw input snapshot for one hand. It is written
// by input capture (or the bot driver) before the hand pass runs.
type HandInputData struct {
	RayOrigin    mgl64.Vec3
	RayDirection mgl64.Vec3

	PrimaryHeld       bool // siphon/dump button
	PrimaryReleased   bool
	SecondaryHeld     bool // charge trigger
	SecondaryReleased bool // released this tick

	ModifierHeld bool // queue instead of throw
	ReleaseOne   bool // pop one queued throw
	ReleaseAll   bool // pop every queued throw
}

var HandInput = donburi.NewComponentType[HandInputData]()

// HandHoverData is the best raycast hit under the cursor.
type HandHoverData struct {
	Valid    bool
	Entity   donburi.Entity
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

var HandHover = donburi.NewComponentType[HandHoverData]()

// AffordanceFlags describe which verbs the hovered target allows.
type AffordanceFlags uint32

const (
	AffordSiphon AffordanceFlags = 1 << iota
	AffordDumpStorehouse
	AffordDumpConstruction
	AffordDumpGround
	AffordCastMiracle

	AffordDumpAny = AffordDumpStorehouse | AffordDumpConstruction | AffordDumpGround
)

// Has reports whether any of the given flags is set.
func (f AffordanceFlags) Has(flags AffordanceFlags) bool {
	return f&flags != 0
}

// HandAffordanceData is computed elsewhere from the hover target.
type HandAffordanceData struct {
	Flags        AffordanceFlags
	Target       donburi.Entity
	ResourceType int // config.ResourceNone when the target does not specify one
}

var HandAffordance = donburi.NewComponentType[HandAffordanceData]()

// HandIntentData holds semantic intents derived from raw input and UI
// blocking rules.
type HandIntentData struct {
	StartSelect  bool
	ConfirmPlace bool
	CancelAction bool
}

var HandIntent = donburi.NewComponentType[HandIntentData]()
