package systems

import (
	"testing"

	"github.com/automoto/godhand/components"
)

func TestStructuralBufferCommit(t *testing.T) {
	w := newTestWorld(t, true)
	hand := w.addHand(0, 0, 0)
	a := w.addPickable(0, 0, "")
	b := w.addPickable(1, 0, "")
	gone := w.addPickable(2, 0, "")
	w.world().Remove(gone.Entity())

	var buf StructuralBuffer
	buf.AttachHeld(a.Entity(), hand.Entity())
	buf.AttachQueued(b.Entity(), hand.Entity())
	buf.AttachHeld(gone.Entity(), hand.Entity())
	if a.HasComponent(components.Held) {
		t.Fatal("marker attached before commit")
	}

	if n := buf.Commit(w.world()); n != 2 {
		t.Errorf("applied %d ops, want 2", n)
	}
	if buf.Len() != 0 {
		t.Errorf("buffer kept %d ops", buf.Len())
	}
	if components.Held.Get(a).Hand != hand.Entity() || components.Queued.Get(b).Hand != hand.Entity() {
		t.Error("markers point at the wrong hand")
	}

	buf.DetachHeld(a.Entity())
	buf.DetachQueued(b.Entity())
	buf.Destroy(b.Entity())
	buf.Commit(w.world())
	if a.HasComponent(components.Held) {
		t.Error("held marker survived detach")
	}
	if w.world().Valid(b.Entity()) {
		t.Error("destroyed entity still valid")
	}
	space, _ := spaceFor(w.world())
	for _, obj := range space.Space.Objects() {
		if obj.Data == b {
			t.Error("destroyed entity left in the spatial index")
		}
	}
}
