package systems

import (
	"testing"

	"github.com/automoto/godhand/components"
	"github.com/automoto/godhand/systems/factory"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

func TestSpatialSearchMatchesScan(t *testing.T) {
	spawns := []mgl64.Vec3{
		{2.5, 0, 2.5}, // outside the pickup radius
		{-1.5, 0, 0.5},
		{1, 0, 0},
		{0.5, 5, 0}, // too far above the cursor
	}
	want := mgl64.Vec3{1, 0, 0}

	for _, indexed := range []bool{false, true} {
		w := newTestWorld(t, indexed)
		hand := w.addHand(0, 0, 0)
		origin := make(map[donburi.Entity]mgl64.Vec3)
		for _, pos := range spawns {
			e := factory.CreatePickable(w.ecs, pos, "", 0)
			origin[e.Entity()] = pos
		}

		held := w.pick(t, hand)
		if origin[held] != want {
			t.Errorf("indexed=%v: picked object spawned at %v, want %v", indexed, origin[held], want)
		}
	}
}

func TestSearchRespectsRadius(t *testing.T) {
	for _, indexed := range []bool{false, true} {
		w := newTestWorld(t, indexed)
		hand := w.addHand(0, 0, 0)
		w.addPickable(2.5, 2.5, "")

		components.HandIntent.Get(hand).StartSelect = true
		w.step()
		if held := components.Hand.Get(hand).HeldEntity; held != donburi.Null {
			t.Errorf("indexed=%v: picked %v outside the radius", indexed, held)
		}
	}
}

func TestSearchTieGoesToLowerEntity(t *testing.T) {
	for _, indexed := range []bool{false, true} {
		w := newTestWorld(t, indexed)
		hand := w.addHand(0, 0, 0)
		first := w.addPickable(1, 0, "")
		w.addPickable(-1, 0, "")

		if held := w.pick(t, hand); held != first.Entity() {
			t.Errorf("indexed=%v: picked %v, want %v", indexed, held, first.Entity())
		}
	}
}

func TestIndexFollowsThrownObject(t *testing.T) {
	w := newTestWorld(t, true)
	hand := w.addHand(0, 0, 0)
	obj := w.addPickable(0, 0, "")
	w.pick(t, hand)
	w.releaseTrigger(hand, false)

	components.Transform.Get(obj).Position = mgl64.Vec3{40, 0, 40}
	UpdateObjects(w.ecs)

	other := w.addHand(1, 40, 40)
	if held := w.pick(t, other); held != obj.Entity() {
		t.Errorf("picked %v at the new position, want %v", held, obj.Entity())
	}
}

func TestSearchBeyondIndexedGrid(t *testing.T) {
	// The default grid spans -512..512 on both axes.
	for _, x := range []float64{600, 511, -513} {
		for _, indexed := range []bool{false, true} {
			w := newTestWorld(t, indexed)
			hand := w.addHand(0, x, 0)
			obj := w.addPickable(x+0.5, 0, "")

			if held := w.pick(t, hand); held != obj.Entity() {
				t.Errorf("x=%v indexed=%v: picked %v, want %v", x, indexed, held, obj.Entity())
			}
		}
	}
}
