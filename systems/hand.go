package systems

import (
	"sort"

	"github.com/automoto/godhand/components"
	cfg "github.com/automoto/godhand/config"
	"github.com/automoto/godhand/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// handPass is the state shared by every hand during one recorded tick.
type handPass struct {
	world   donburi.World
	tick    uint64
	dt      float64
	catalog *components.ResourceCatalogData
	space   *components.SpaceData
	buffer  StructuralBuffer

	// entity -> hand that claimed it this tick
	claimed map[donburi.Entity]donburi.Entity
}

// handTick is one hand's working set for the current tick.
type handTick struct {
	entry      *donburi.Entry
	hand       *components.HandData
	cfg        *cfg.HandConfig
	input      *components.HandInputData
	hover      *components.HandHoverData
	affordance *components.HandAffordanceData
	intent     *components.HandIntentData
	commands   *components.HandCommandsData
	events     *components.HandEventsData
	miracles   *components.MiracleEventsData
	queue      *components.ThrowQueueData

	aim aimPoint

	charge      float64 // charge timer before this tick's reset
	picked      bool
	released    bool
	miracleCast bool
	wantSiphon  bool
	wantDump    bool
	verb        components.ActiveVerb
}

// aimPoint is where the hand points: the hover hit when there is one in
// range, the ground cursor otherwise.
type aimPoint struct {
	Entity   donburi.Entity
	Position mgl64.Vec3
	Normal   mgl64.Vec3
}

// UpdateHands runs the hand interaction pass. Hands are processed in
// ascending HandIndex; a pickable claimed by one hand is unavailable to the
// rest for the tick. Marker changes are committed after the last hand.
//
// The pass is a no-op unless the clock is recording, so replayed commands
// and events are left exactly as the journal wrote them.
func UpdateHands(ecs *ecs.ECS) {
	clockEntry, ok := components.Clock.First(ecs.World)
	if !ok {
		return
	}
	clock := components.Clock.Get(clockEntry)
	if !clock.Recording() {
		return
	}

	p := &handPass{
		world:   ecs.World,
		tick:    clock.Tick,
		dt:      clock.DeltaTime,
		claimed: make(map[donburi.Entity]donburi.Entity),
	}
	if e, ok := components.ResourceCatalog.First(ecs.World); ok {
		p.catalog = components.ResourceCatalog.Get(e)
	}
	p.space, _ = spaceFor(ecs.World)

	for _, e := range sortedHands(ecs.World) {
		p.updateHand(e)
	}
	p.buffer.Commit(ecs.World)
}

func sortedHands(w donburi.World) []*donburi.Entry {
	var hands []*donburi.Entry
	components.Hand.Each(w, func(e *donburi.Entry) {
		hands = append(hands, e)
	})
	sort.SliceStable(hands, func(i, j int) bool {
		a := components.Hand.Get(hands[i]).HandIndex
		b := components.Hand.Get(hands[j]).HandIndex
		if a != b {
			return a < b
		}
		return hands[i].Entity() < hands[j].Entity()
	})
	return hands
}

func (p *handPass) updateHand(e *donburi.Entry) {
	t := &handTick{
		entry:      e,
		hand:       components.Hand.Get(e),
		cfg:        components.HandConfig.Get(e),
		input:      components.HandInput.Get(e),
		hover:      components.HandHover.Get(e),
		affordance: components.HandAffordance.Get(e),
		intent:     components.HandIntent.Get(e),
		commands:   components.HandCommands.Get(e),
		events:     components.HandEvents.Get(e),
		miracles:   components.MiracleEvents.Get(e),
		queue:      components.ThrowQueue.Get(e),
	}
	t.commands.Commands = t.commands.Commands[:0]
	t.events.Events = t.events.Events[:0]
	t.miracles.Events = t.miracles.Events[:0]

	// The held object was destroyed elsewhere.
	if t.hand.HeldEntity != donburi.Null && !p.world.Valid(t.hand.HeldEntity) {
		p.release(t, releaseDefensive)
	}

	p.updateCursor(t)
	p.updateCharge(t)

	if t.hand.CooldownSeconds > 0 {
		t.hand.CooldownSeconds = max(0, t.hand.CooldownSeconds-p.dt)
	}

	if t.hand.HeldEntity == donburi.Null && t.intent.StartSelect {
		p.tryPick(t)
	}

	if t.hand.HeldEntity != donburi.Null {
		p.carry(t)
		if !t.picked {
			switch {
			case t.intent.CancelAction:
				p.release(t, releaseCancel)
			case t.intent.ConfirmPlace:
				p.release(t, releaseConfirm)
			case t.input.SecondaryReleased:
				p.release(t, releaseTrigger)
			}
		}
		p.emitHold(t)
	}

	if t.input.ReleaseAll || t.input.ReleaseOne {
		p.releaseQueued(t)
	}

	p.updateResourceVerbs(t)

	if !t.released && t.hand.HeldEntity == donburi.Null &&
		t.input.SecondaryReleased && t.affordance.Flags.Has(components.AffordCastMiracle) {
		p.castFromSlot(t)
	}

	p.updateLegacyCommand(t)
	p.resolveState(t)
	components.InteractionMirror.SetValue(e, ProjectMirror(e.Entity(), t.hand, t.verb, t.wantSiphon, t.wantDump, p.tick))
}

// emit appends a command stamped with the current tick.
func (p *handPass) emit(t *handTick, c components.HandCommand) {
	c.Tick = p.tick
	t.commands.Commands = append(t.commands.Commands, c)
	switch c.Verb {
	case netconfig.VerbPick:
		t.verb = components.ActivePick
	case netconfig.VerbHold:
		t.verb = components.ActiveHold
	case netconfig.VerbThrow:
		t.verb = components.ActiveThrow
	case netconfig.VerbQueueThrow:
		t.verb = components.ActiveQueue
	case netconfig.VerbSiphon:
		t.verb = components.ActiveSiphon
	case netconfig.VerbDump:
		t.verb = components.ActiveDump
	case netconfig.VerbCastMiracle:
		t.verb = components.ActiveCast
	}
}
