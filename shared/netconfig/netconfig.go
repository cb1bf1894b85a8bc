// Package netconfig defines lightweight types shared between the simulation
// and its network clients. It must have zero dependencies on the ECS or any
// graphics library so it can be imported from anywhere.
package netconfig

// HandStateID is the cross-game hand state shared with clients, audio and
// animation. It is a lossy projection of the simulation's own hand state.
type HandStateID int

const HandStateNone HandStateID = -1

const (
	HandIdle HandStateID = iota
	HandCarry
	HandInteract // siphoning or dumping
	HandAim
	HandCast
)

// HandStateToAnimation maps a shared hand state to the animation clip prefix.
var HandStateToAnimation = map[HandStateID]string{
	HandIdle:     "hand_idle",
	HandCarry:    "hand_grab",
	HandInteract: "hand_drag",
	HandAim:      "hand_slingshot",
	HandCast:     "hand_cast",
}

func (s HandStateID) String() string {
	if name, ok := HandStateToAnimation[s]; ok {
		return name
	}
	return "unknown"
}

// CommandVerb identifies a low-level hand command. Values are part of the
// journal format and must not be reordered.
type CommandVerb uint8

const (
	VerbNone CommandVerb = iota
	VerbPick
	VerbHold
	VerbThrow
	VerbQueueThrow
	VerbSiphon
	VerbDump
	VerbCastMiracle
)

var verbNames = [...]string{
	VerbNone:        "none",
	VerbPick:        "pick",
	VerbHold:        "hold",
	VerbThrow:       "throw",
	VerbQueueThrow:  "queue_throw",
	VerbSiphon:      "siphon",
	VerbDump:        "dump",
	VerbCastMiracle: "cast_miracle",
}

func (v CommandVerb) String() string {
	if int(v) < len(verbNames) {
		return verbNames[v]
	}
	return "unknown"
}
