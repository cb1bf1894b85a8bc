package systems

import (
	"github.com/automoto/godhand/components"
	"github.com/yohamta/donburi"
)

type structuralOp int

const (
	opAttachHeld structuralOp = iota
	opDetachHeld
	opAttachQueued
	opDetachQueued
	opDestroy
)

type pendingOp struct {
	op     structuralOp
	entity donburi.Entity
	hand   donburi.Entity
}

// StructuralBuffer collects marker changes and destroys made while iterating
// hands. Nothing is applied until Commit, so no hand observes another hand's
// structural writes within the same tick.
type StructuralBuffer struct {
	ops []pendingOp
}

func (b *StructuralBuffer) AttachHeld(e, hand donburi.Entity) {
	b.ops = append(b.ops, pendingOp{op: opAttachHeld, entity: e, hand: hand})
}

func (b *StructuralBuffer) DetachHeld(e donburi.Entity) {
	b.ops = append(b.ops, pendingOp{op: opDetachHeld, entity: e})
}

func (b *StructuralBuffer) AttachQueued(e, hand donburi.Entity) {
	b.ops = append(b.ops, pendingOp{op: opAttachQueued, entity: e, hand: hand})
}

func (b *StructuralBuffer) DetachQueued(e donburi.Entity) {
	b.ops = append(b.ops, pendingOp{op: opDetachQueued, entity: e})
}

func (b *StructuralBuffer) Destroy(e donburi.Entity) {
	b.ops = append(b.ops, pendingOp{op: opDestroy, entity: e})
}

func (b *StructuralBuffer) Len() int {
	return len(b.ops)
}

// Commit applies the buffered operations in order and empties the buffer.
// Operations on entities that no longer exist are dropped.
func (b *StructuralBuffer) Commit(w donburi.World) int {
	applied := 0
	for _, p := range b.ops {
		if !w.Valid(p.entity) {
			continue
		}
		entry := w.Entry(p.entity)
		switch p.op {
		case opAttachHeld:
			if entry.HasComponent(components.Held) {
				components.Held.Get(entry).Hand = p.hand
			} else {
				donburi.Add(entry, components.Held, &components.HeldData{Hand: p.hand})
			}
		case opDetachHeld:
			if !entry.HasComponent(components.Held) {
				continue
			}
			entry.RemoveComponent(components.Held)
		case opAttachQueued:
			if entry.HasComponent(components.Queued) {
				components.Queued.Get(entry).Hand = p.hand
			} else {
				donburi.Add(entry, components.Queued, &components.QueuedData{Hand: p.hand})
			}
		case opDetachQueued:
			if !entry.HasComponent(components.Queued) {
				continue
			}
			entry.RemoveComponent(components.Queued)
		case opDestroy:
			removeFromSpace(w, entry)
			w.Remove(p.entity)
		}
		applied++
	}
	b.ops = b.ops[:0]
	return applied
}
