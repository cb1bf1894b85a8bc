package systems

import (
	"math"
	"testing"

	"github.com/automoto/godhand/components"
	cfg "github.com/automoto/godhand/config"
	"github.com/automoto/godhand/systems/factory"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const testDT = 1.0 / 30.0

type testWorld struct {
	ecs *ecs.ECS
}

func newTestWorld(t *testing.T, indexed bool) *testWorld {
	t.Helper()
	e := ecs.NewECS(donburi.NewWorld())
	factory.CreateClock(e, testDT)
	factory.CreateCatalog(e, "wood", "stone")
	if indexed {
		factory.CreateSpace(e)
	}
	return &testWorld{ecs: e}
}

func (w *testWorld) world() donburi.World { return w.ecs.World }

// step runs one recorded tick of the hand pass.
func (w *testWorld) step() {
	UpdateHands(w.ecs)
	AdvanceClock(w.ecs)
}

func (w *testWorld) clock() *components.ClockData {
	e, _ := components.Clock.First(w.ecs.World)
	return components.Clock.Get(e)
}

func (w *testWorld) resource(t *testing.T, id string) int {
	t.Helper()
	e, _ := components.ResourceCatalog.First(w.ecs.World)
	idx, ok := components.ResourceCatalog.Get(e).Index(id)
	if !ok {
		t.Fatalf("resource %q not registered", id)
	}
	return idx
}

// addHand spawns a hand whose ray points straight down at (x, z).
func (w *testWorld) addHand(index int, x, z float64) *donburi.Entry {
	hand := factory.CreateHand(w.ecs, index, cfg.Hand)
	aimAt(hand, x, z)
	return hand
}

func aimAt(hand *donburi.Entry, x, z float64) {
	in := components.HandInput.Get(hand)
	in.RayOrigin = mgl64.Vec3{x, 10, z}
	in.RayDirection = mgl64.Vec3{0, -1, 0}
}

func (w *testWorld) addPickable(x, z float64, resource string) *donburi.Entry {
	return factory.CreatePickable(w.ecs, mgl64.Vec3{x, 0, z}, resource, 0)
}

// clearInput resets every one-shot input and intent on a hand.
func clearInput(hand *donburi.Entry) {
	in := components.HandInput.Get(hand)
	in.PrimaryHeld = false
	in.PrimaryReleased = false
	in.SecondaryHeld = false
	in.SecondaryReleased = false
	in.ModifierHeld = false
	in.ReleaseOne = false
	in.ReleaseAll = false
	*components.HandIntent.Get(hand) = components.HandIntentData{}
}

// pick runs one tick with StartSelect set and fails if nothing was picked.
func (w *testWorld) pick(t *testing.T, hand *donburi.Entry) donburi.Entity {
	t.Helper()
	clearInput(hand)
	components.HandIntent.Get(hand).StartSelect = true
	w.step()
	clearInput(hand)
	held := components.Hand.Get(hand).HeldEntity
	if held == donburi.Null {
		t.Fatalf("hand %d picked nothing", components.Hand.Get(hand).HandIndex)
	}
	return held
}

// chargeFor holds the trigger for n ticks.
func (w *testWorld) chargeFor(hand *donburi.Entry, n int) {
	for i := 0; i < n; i++ {
		clearInput(hand)
		components.HandInput.Get(hand).SecondaryHeld = true
		w.step()
	}
}

// releaseTrigger runs the tick on which the trigger comes up.
func (w *testWorld) releaseTrigger(hand *donburi.Entry, modifier bool) {
	clearInput(hand)
	in := components.HandInput.Get(hand)
	in.SecondaryReleased = true
	in.ModifierHeld = modifier
	w.step()
}

func commands(hand *donburi.Entry) []components.HandCommand {
	return components.HandCommands.Get(hand).Commands
}

func events(hand *donburi.Entry) []components.HandEvent {
	return components.HandEvents.Get(hand).Events
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func approxVec(a, b mgl64.Vec3) bool {
	return a.ApproxEqualThreshold(b, 1e-9)
}
