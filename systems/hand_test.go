package systems

import (
	"reflect"
	"slices"
	"testing"

	"github.com/automoto/godhand/components"
	cfg "github.com/automoto/godhand/config"
	"github.com/automoto/godhand/shared/netconfig"
	"github.com/automoto/godhand/systems/factory"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

func TestPickClaimsNearestAndHolds(t *testing.T) {
	w := newTestWorld(t, false)
	hand := w.addHand(0, 0, 0)
	obj := w.addPickable(0.5, 0, "wood")
	w.addPickable(2, 0, "wood")

	held := w.pick(t, hand)
	if held != obj.Entity() {
		t.Fatalf("picked %v, want nearest %v", held, obj.Entity())
	}

	h := components.Hand.Get(hand)
	if h.HeldAmount != 1 {
		t.Errorf("HeldAmount = %v, want 1", h.HeldAmount)
	}
	if h.ResourceType != w.resource(t, "wood") {
		t.Errorf("ResourceType = %d, want wood", h.ResourceType)
	}
	if h.State != cfg.HandHolding {
		t.Errorf("State = %v, want holding", h.State)
	}
	if !obj.HasComponent(components.Held) || components.Held.Get(obj).Hand != hand.Entity() {
		t.Fatal("held marker not attached to the picking hand")
	}
	body := components.Body.Get(obj)
	if body.Gravity != 0 || h.HeldGravity != 1 {
		t.Errorf("gravity = %v saved = %v, want 0 and 1", body.Gravity, h.HeldGravity)
	}
	if components.HandCommands.Get(hand).Count(netconfig.VerbPick) != 1 {
		t.Errorf("commands = %+v, want one Pick", commands(hand))
	}

	ev := components.HandEvents.Get(hand)
	for _, kind := range []components.HandEventKind{
		components.EventStateChanged, components.EventTypeChanged, components.EventAmountChanged,
	} {
		if !ev.Has(kind) {
			t.Errorf("missing %v event", kind)
		}
	}
	if ev.Events[0].From != cfg.LegacyEmpty || ev.Events[0].To != cfg.LegacyHolding {
		t.Errorf("StateChanged %v -> %v, want Empty -> Holding", ev.Events[0].From, ev.Events[0].To)
	}

	mirror := components.InteractionMirror.Get(hand)
	if mirror.State != cfg.LegacyHolding || mirror.Verb != components.ActivePick || mirror.Hand != hand.Entity() {
		t.Errorf("mirror = %+v", mirror)
	}
}

func TestCarryFollowsHoldPoint(t *testing.T) {
	w := newTestWorld(t, false)
	hand := w.addHand(0, 0, 0)
	obj := w.addPickable(0, 0, "")
	w.pick(t, hand)

	lerp := cfg.Hand.HoldFollowLerp
	height := cfg.Hand.HoldHeight
	y1 := height * lerp
	if got := components.Transform.Get(obj).Position.Y(); !approx(got, y1) {
		t.Fatalf("after pick y = %v, want %v", got, y1)
	}

	w.step()
	y2 := y1 + (height-y1)*lerp
	if got := components.Transform.Get(obj).Position.Y(); !approx(got, y2) {
		t.Errorf("after carry y = %v, want %v", got, y2)
	}
	if components.HandCommands.Get(hand).Count(netconfig.VerbHold) != 1 {
		t.Errorf("commands = %+v, want one Hold", commands(hand))
	}
	if len(events(hand)) != 0 {
		t.Errorf("events = %+v, want none while holding steady", events(hand))
	}
}

func TestHoverTargetPreferred(t *testing.T) {
	w := newTestWorld(t, false)
	hand := w.addHand(0, 0, 0)
	w.addPickable(0, 0, "")
	far := w.addPickable(20, 20, "")

	*components.HandHover.Get(hand) = components.HandHoverData{
		Valid:    true,
		Entity:   far.Entity(),
		Position: mgl64.Vec3{20, 0, 20},
		Normal:   mgl64.Vec3{0, 1, 0},
		Distance: 5,
	}
	if held := w.pick(t, hand); held != far.Entity() {
		t.Fatalf("picked %v, want hovered %v", held, far.Entity())
	}
}

func TestSameTickClaimGoesToLowerIndex(t *testing.T) {
	w := newTestWorld(t, false)
	late := w.addHand(1, 0, 0)
	early := w.addHand(0, 0, 0)
	first := w.addPickable(0, 0, "")
	second := w.addPickable(2, 0, "")

	components.HandIntent.Get(late).StartSelect = true
	components.HandIntent.Get(early).StartSelect = true
	w.step()

	if got := components.Hand.Get(early).HeldEntity; got != first.Entity() {
		t.Errorf("hand 0 holds %v, want %v", got, first.Entity())
	}
	if got := components.Hand.Get(late).HeldEntity; got != second.Entity() {
		t.Errorf("hand 1 holds %v, want %v", got, second.Entity())
	}
	if components.Held.Get(first).Hand != early.Entity() || components.Held.Get(second).Hand != late.Entity() {
		t.Error("held markers point at the wrong hands")
	}
}

func TestPickRefusals(t *testing.T) {
	tests := []struct {
		name     string
		resource string
		setup    func(h *components.HandData, stone int)
		wantPick bool
	}{
		{
			name:     "cooldown",
			setup:    func(h *components.HandData, _ int) { h.CooldownSeconds = 1 },
			wantPick: false,
		},
		{
			name:     "at capacity",
			setup:    func(h *components.HandData, _ int) { h.HeldAmount = h.Capacity },
			wantPick: false,
		},
		{
			name:     "different resource type",
			resource: "wood",
			setup: func(h *components.HandData, stone int) {
				h.ResourceType = stone
				h.HeldAmount = 2
			},
			wantPick: false,
		},
		{
			name:     "same resource type",
			resource: "stone",
			setup: func(h *components.HandData, stone int) {
				h.ResourceType = stone
				h.HeldAmount = 2
			},
			wantPick: true,
		},
		{
			name: "untyped object joins typed cargo",
			setup: func(h *components.HandData, stone int) {
				h.ResourceType = stone
				h.HeldAmount = 2
			},
			wantPick: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, false)
			hand := w.addHand(0, 0, 0)
			w.addPickable(0, 0, tt.resource)
			stone := w.resource(t, "stone")
			tt.setup(components.Hand.Get(hand), stone)

			components.HandIntent.Get(hand).StartSelect = true
			w.step()

			h := components.Hand.Get(hand)
			picked := h.HeldEntity != donburi.Null
			if picked != tt.wantPick {
				t.Fatalf("picked = %v, want %v", picked, tt.wantPick)
			}
			if picked && h.ResourceType != stone {
				t.Errorf("ResourceType = %d, want stone %d", h.ResourceType, stone)
			}
		})
	}
}

func TestUntypedPickIsGeneric(t *testing.T) {
	w := newTestWorld(t, false)
	hand := w.addHand(0, 0, 0)
	w.addPickable(0, 0, "")
	w.pick(t, hand)
	if got := components.Hand.Get(hand).ResourceType; got != cfg.ResourceGeneric {
		t.Errorf("ResourceType = %d, want generic", got)
	}
}

func TestChargedThrow(t *testing.T) {
	w := newTestWorld(t, false)
	hand := w.addHand(0, 0, 0)
	obj := w.addPickable(0, 0, "")
	w.pick(t, hand)

	w.chargeFor(hand, 7)
	if s := components.Hand.Get(hand).State; s != cfg.HandHolding {
		t.Fatalf("state below min charge = %v, want holding", s)
	}
	w.chargeFor(hand, 2)
	if s := components.Hand.Get(hand).State; s != cfg.HandSlingshotAim {
		t.Fatalf("state past min charge = %v, want slingshot_aim", s)
	}

	components.HandInput.Get(hand).RayDirection = mgl64.Vec3{1, -1, 0}
	w.releaseTrigger(hand, false)

	timer := 9 * testDT
	window := cfg.Hand.MaxChargeSeconds
	throwCharge := (timer - cfg.Hand.MinChargeSeconds) / (cfg.Hand.MaxChargeSeconds - cfg.Hand.MinChargeSeconds)
	speed := cfg.Hand.ThrowImpulse * (1 + throwCharge*cfg.Hand.ChargeMultiplier)
	dir := mgl64.Vec3{1, -1, 0}.Normalize()

	cmds := commands(hand)
	if len(cmds) != 1 || cmds[0].Verb != netconfig.VerbThrow {
		t.Fatalf("commands = %+v, want a single Throw", cmds)
	}
	if !approx(cmds[0].Charge, timer/window) {
		t.Errorf("charge = %v, want %v", cmds[0].Charge, timer/window)
	}
	if !approx(cmds[0].Speed, speed) {
		t.Errorf("speed = %v, want %v", cmds[0].Speed, speed)
	}

	body := components.Body.Get(obj)
	if !approxVec(body.Velocity, dir.Mul(speed)) {
		t.Errorf("velocity = %v, want %v", body.Velocity, dir.Mul(speed))
	}
	if body.Gravity != 1 {
		t.Errorf("gravity = %v, want restored 1", body.Gravity)
	}

	h := components.Hand.Get(hand)
	if h.HeldEntity != donburi.Null || h.HeldAmount != 0 || h.ResourceType != cfg.ResourceNone {
		t.Errorf("hand not cleared: %+v", h)
	}
	if h.ChargeSeconds != 0 {
		t.Errorf("charge timer = %v, want 0", h.ChargeSeconds)
	}
	if !approx(h.CooldownSeconds, cfg.Hand.CooldownAfterThrow) {
		t.Errorf("cooldown = %v, want %v", h.CooldownSeconds, cfg.Hand.CooldownAfterThrow)
	}
	if h.State != cfg.HandEmpty {
		t.Errorf("state = %v, want empty", h.State)
	}
	if obj.HasComponent(components.Held) {
		t.Error("held marker still attached after throw")
	}
}

func TestThrowSpeedClamped(t *testing.T) {
	w := newTestWorld(t, false)
	hand := w.addHand(0, 0, 0)
	obj := w.addPickable(0, 0, "")
	components.HandConfig.Get(hand).ThrowImpulse = 1000
	w.pick(t, hand)

	clearInput(hand)
	components.HandIntent.Get(hand).ConfirmPlace = true
	w.step()

	want := mgl64.Vec3{0, -cfg.Hand.MaxThrowSpeed, 0}
	if got := components.Body.Get(obj).Velocity; !approxVec(got, want) {
		t.Errorf("velocity = %v, want %v", got, want)
	}
}

func TestCancelDropsWithoutThrow(t *testing.T) {
	w := newTestWorld(t, false)
	hand := w.addHand(0, 0, 0)
	obj := w.addPickable(0, 0, "")
	w.pick(t, hand)

	clearInput(hand)
	components.HandIntent.Get(hand).CancelAction = true
	w.step()

	if n := len(commands(hand)); n != 0 {
		t.Errorf("commands = %+v, want none", commands(hand))
	}
	body := components.Body.Get(obj)
	if body.Velocity != (mgl64.Vec3{}) || body.Gravity != 1 {
		t.Errorf("body = %+v, want at rest with gravity", body)
	}
	if cd := components.Hand.Get(hand).CooldownSeconds; cd != 0 {
		t.Errorf("cooldown = %v, want 0", cd)
	}
	if obj.HasComponent(components.Held) {
		t.Error("held marker still attached after cancel")
	}
}

func TestVanishedHeldEntityIsCleared(t *testing.T) {
	w := newTestWorld(t, false)
	hand := w.addHand(0, 0, 0)
	obj := w.addPickable(0, 0, "")
	w.pick(t, hand)

	w.world().Remove(obj.Entity())
	components.HandInput.Get(hand).SecondaryReleased = true
	w.step()

	h := components.Hand.Get(hand)
	if h.HeldEntity != donburi.Null || h.HeldAmount != 0 {
		t.Fatalf("hand still holds %v (%v)", h.HeldEntity, h.HeldAmount)
	}
	if components.HandCommands.Get(hand).Count(netconfig.VerbThrow) != 0 {
		t.Error("defensive clear emitted a Throw")
	}
	if h.CooldownSeconds != 0 {
		t.Errorf("cooldown = %v, want 0", h.CooldownSeconds)
	}
	if h.State != cfg.HandEmpty {
		t.Errorf("state = %v, want empty", h.State)
	}
}

func TestQueuedThrowsReleaseInOrder(t *testing.T) {
	w := newTestWorld(t, false)
	hand := w.addHand(0, 0, 0)
	objs := []*donburi.Entry{
		w.addPickable(0, 0, ""),
		w.addPickable(0.5, 0, ""),
		w.addPickable(1, 0, ""),
	}

	for i, obj := range objs {
		if held := w.pick(t, hand); held != obj.Entity() {
			t.Fatalf("pick %d got %v, want %v", i, held, obj.Entity())
		}
		w.releaseTrigger(hand, true)
		if components.HandCommands.Get(hand).Count(netconfig.VerbQueueThrow) != 1 {
			t.Fatalf("queue %d: commands = %+v", i, commands(hand))
		}
	}

	queue := components.ThrowQueue.Get(hand)
	if queue.Len() != 3 {
		t.Fatalf("queue length = %d, want 3", queue.Len())
	}
	for i, obj := range objs {
		if queue.Entries[i].Target != obj.Entity() {
			t.Errorf("queue[%d] = %v, want %v", i, queue.Entries[i].Target, obj.Entity())
		}
		if !obj.HasComponent(components.Queued) || obj.HasComponent(components.Held) {
			t.Errorf("object %d markers wrong", i)
		}
		if b := components.Body.Get(obj); b.Gravity != 0 || b.Velocity != (mgl64.Vec3{}) {
			t.Errorf("object %d not frozen: %+v", i, b)
		}
	}
	if h := components.Hand.Get(hand); h.CooldownSeconds != 0 || h.HeldEntity != donburi.Null {
		t.Errorf("hand after queueing = %+v", h)
	}

	clearInput(hand)
	components.HandInput.Get(hand).ReleaseOne = true
	w.step()

	cmds := commands(hand)
	if len(cmds) != 1 || cmds[0].Verb != netconfig.VerbThrow || cmds[0].Target != objs[0].Entity() {
		t.Fatalf("release one: commands = %+v", cmds)
	}
	if objs[0].HasComponent(components.Queued) || !objs[1].HasComponent(components.Queued) {
		t.Error("release one detached the wrong marker")
	}
	b := components.Body.Get(objs[0])
	if b.Gravity != 1 || !approxVec(b.Velocity, mgl64.Vec3{0, -cfg.Hand.MinThrowSpeed, 0}) {
		t.Errorf("released body = %+v", b)
	}
	if !approx(components.Hand.Get(hand).CooldownSeconds, cfg.Hand.CooldownAfterThrow) {
		t.Error("queued release did not start the cooldown")
	}

	clearInput(hand)
	components.HandInput.Get(hand).ReleaseOne = true
	components.HandInput.Get(hand).ReleaseAll = true
	w.step()

	cmds = commands(hand)
	if len(cmds) != 2 || cmds[0].Target != objs[1].Entity() || cmds[1].Target != objs[2].Entity() {
		t.Fatalf("release all: commands = %+v", cmds)
	}
	if queue.Len() != 0 {
		t.Errorf("queue length = %d, want 0", queue.Len())
	}
}

func TestQueueFullFallsBackToThrow(t *testing.T) {
	w := newTestWorld(t, false)
	hand := w.addHand(0, 0, 0)
	components.HandConfig.Get(hand).QueueCapacity = 1
	w.addPickable(0, 0, "")
	second := w.addPickable(0.5, 0, "")

	w.pick(t, hand)
	w.releaseTrigger(hand, true)
	w.pick(t, hand)
	w.releaseTrigger(hand, true)

	if components.HandCommands.Get(hand).Count(netconfig.VerbThrow) != 1 {
		t.Fatalf("commands = %+v, want a Throw once the queue is full", commands(hand))
	}
	if second.HasComponent(components.Queued) {
		t.Error("object queued past capacity")
	}
}

func TestMiracleTokenRelease(t *testing.T) {
	for _, modifier := range []bool{false, true} {
		w := newTestWorld(t, false)
		hand := w.addHand(0, 0, 0)
		token := factory.CreateMiracleToken(w.ecs, mgl64.Vec3{}, cfg.MiracleLightning).Entity()
		w.pick(t, hand)

		w.releaseTrigger(hand, modifier)

		if w.world().Valid(token) {
			t.Fatalf("modifier=%v: token not consumed", modifier)
		}
		mir := components.MiracleEvents.Get(hand).Events
		if len(mir) != 1 || mir[0].Type != cfg.MiracleLightning || mir[0].Source != cfg.Miracles[cfg.MiracleLightning] {
			t.Fatalf("modifier=%v: miracle events = %+v", modifier, mir)
		}
		cc := components.HandCommands.Get(hand)
		if cc.Count(netconfig.VerbCastMiracle) != 1 || cc.Count(netconfig.VerbThrow) != 0 || cc.Count(netconfig.VerbQueueThrow) != 0 {
			t.Fatalf("modifier=%v: commands = %+v", modifier, cc.Commands)
		}

		h := components.Hand.Get(hand)
		if h.State != cfg.HandCasting {
			t.Errorf("state = %v, want casting", h.State)
		}
		ev := components.HandEvents.Get(hand)
		if ev.Has(components.EventStateChanged) {
			t.Error("casting from holding fired StateChanged")
		}
		if !ev.Has(components.EventAmountChanged) {
			t.Error("token release did not fire AmountChanged")
		}

		w.step()
		h = components.Hand.Get(hand)
		if h.State != cfg.HandEmpty || !components.HandEvents.Get(hand).Has(components.EventStateChanged) {
			t.Errorf("tick after cast: state %v events %+v", h.State, events(hand))
		}
	}
}

func TestSlotMiracleCast(t *testing.T) {
	w := newTestWorld(t, false)
	hand := w.addHand(0, 0, 0)
	factory.AddMiracleCaster(hand, 5,
		components.MiracleSlot{Index: 0, Type: cfg.MiracleWater},
		components.MiracleSlot{Index: 1, Type: cfg.MiracleFireball},
	)
	components.HandAffordance.Get(hand).Flags = components.AffordCastMiracle
	hoverPos := mgl64.Vec3{3, 0, 4}
	*components.HandHover.Get(hand) = components.HandHoverData{
		Valid:    true,
		Entity:   donburi.Null,
		Position: hoverPos,
		Normal:   mgl64.Vec3{0, 1, 0},
	}

	w.releaseTrigger(hand, false)

	mir := components.MiracleEvents.Get(hand).Events
	if len(mir) != 1 {
		t.Fatalf("miracle events = %+v, want one", mir)
	}
	if mir[0].Type != cfg.MiracleWater {
		t.Errorf("type = %v, want fallback to first slot (water)", mir[0].Type)
	}
	if mir[0].TargetPosition != hoverPos {
		t.Errorf("target = %v, want hover point %v", mir[0].TargetPosition, hoverPos)
	}
	if components.Hand.Get(hand).State != cfg.HandCasting {
		t.Errorf("state = %v, want casting", components.Hand.Get(hand).State)
	}
}

func TestSlotMiracleNeedsAffordance(t *testing.T) {
	w := newTestWorld(t, false)
	hand := w.addHand(0, 0, 0)
	factory.AddMiracleCaster(hand, 0, components.MiracleSlot{Index: 0, Type: cfg.MiracleHeal})

	w.releaseTrigger(hand, false)
	if n := len(components.MiracleEvents.Get(hand).Events); n != 0 {
		t.Errorf("cast %d miracles without the cast affordance", n)
	}
}

func TestThrowReleaseNeverCasts(t *testing.T) {
	w := newTestWorld(t, false)
	hand := w.addHand(0, 0, 0)
	factory.AddMiracleCaster(hand, 0, components.MiracleSlot{Index: 0, Type: cfg.MiracleHeal})
	components.HandAffordance.Get(hand).Flags = components.AffordCastMiracle
	w.addPickable(0, 0, "")
	w.pick(t, hand)

	w.releaseTrigger(hand, false)

	cc := components.HandCommands.Get(hand)
	if cc.Count(netconfig.VerbThrow) != 1 || cc.Count(netconfig.VerbCastMiracle) != 0 {
		t.Fatalf("commands = %+v, want exactly one Throw", cc.Commands)
	}
	if n := len(components.MiracleEvents.Get(hand).Events); n != 0 {
		t.Errorf("miracle events = %d, want 0", n)
	}
}

func TestPlaybackLeavesHandsUntouched(t *testing.T) {
	w := newTestWorld(t, false)
	hand := w.addHand(0, 0, 0)
	obj := w.addPickable(0, 0, "")
	w.pick(t, hand)
	w.step()

	w.clock().Mode = cfg.ClockPlayback
	components.HandIntent.Get(hand).CancelAction = true
	in := components.HandInput.Get(hand)
	in.SecondaryHeld = true
	in.ReleaseAll = true
	in.RayOrigin = mgl64.Vec3{5, 10, 5}

	before := *components.Hand.Get(hand)
	cmdsBefore := slices.Clone(commands(hand))
	eventsBefore := slices.Clone(events(hand))
	posBefore := components.Transform.Get(obj).Position

	UpdateHands(w.ecs)

	if after := *components.Hand.Get(hand); !reflect.DeepEqual(before, after) {
		t.Errorf("hand changed during playback:\nbefore %+v\nafter  %+v", before, after)
	}
	if !slices.Equal(cmdsBefore, commands(hand)) {
		t.Error("commands changed during playback")
	}
	if !slices.Equal(eventsBefore, events(hand)) {
		t.Error("events changed during playback")
	}
	if components.Transform.Get(obj).Position != posBefore || !obj.HasComponent(components.Held) {
		t.Error("held object touched during playback")
	}
}

func TestHoldOnlyWhileStillCarrying(t *testing.T) {
	tests := []struct {
		name    string
		set     func(hand *donburi.Entry)
		want    netconfig.CommandVerb
		dropped bool
	}{
		{"carry", func(hand *donburi.Entry) {}, netconfig.VerbHold, false},
		{"cancel", func(hand *donburi.Entry) { components.HandIntent.Get(hand).CancelAction = true }, netconfig.VerbNone, true},
		{"confirm", func(hand *donburi.Entry) { components.HandIntent.Get(hand).ConfirmPlace = true }, netconfig.VerbThrow, true},
		{"trigger", func(hand *donburi.Entry) { components.HandInput.Get(hand).SecondaryReleased = true }, netconfig.VerbThrow, true},
		{"queue", func(hand *donburi.Entry) {
			in := components.HandInput.Get(hand)
			in.SecondaryReleased = true
			in.ModifierHeld = true
		}, netconfig.VerbQueueThrow, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, false)
			hand := w.addHand(0, 0, 0)
			obj := w.addPickable(0, 0, "")
			w.pick(t, hand)

			clearInput(hand)
			tt.set(hand)
			w.step()

			cmds := commands(hand)
			if tt.want == netconfig.VerbNone {
				if len(cmds) != 0 {
					t.Fatalf("commands = %+v, want none", cmds)
				}
			} else if len(cmds) != 1 || cmds[0].Verb != tt.want || cmds[0].Target != obj.Entity() {
				t.Fatalf("commands = %+v, want a single %v for the object", cmds, tt.want)
			}
			if dropped := components.Hand.Get(hand).HeldEntity == donburi.Null; dropped != tt.dropped {
				t.Errorf("dropped = %v, want %v", dropped, tt.dropped)
			}
		})
	}
}
