package systems

import (
	"github.com/automoto/godhand/components"
	"github.com/automoto/godhand/shared/gamemath"
	"github.com/automoto/godhand/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// candidateSearch keeps the nearest free pickable seen so far. Equal
// distances go to the lower entity id so results do not depend on
// iteration order.
type candidateSearch struct {
	p        *handPass
	cursor   mgl64.Vec3
	radiusSq float64
	maxDy    float64

	best   donburi.Entity
	bestSq float64
	found  bool
}

func (s *candidateSearch) consider(e *donburi.Entry) {
	if !s.p.isFreePickable(e) || !e.HasComponent(components.Transform) {
		return
	}
	pos := components.Transform.Get(e).Position
	if s.maxDy > 0 && abs(pos.Y()-s.cursor.Y()) > s.maxDy {
		return
	}
	d := gamemath.HorizontalDistSq(pos, s.cursor)
	if d > s.radiusSq {
		return
	}
	id := e.Entity()
	if !s.found || d < s.bestSq || (d == s.bestSq && id < s.best) {
		s.best, s.bestSq, s.found = id, d, true
	}
}

// isFreePickable reports whether e can be claimed by a hand this tick.
func (p *handPass) isFreePickable(e *donburi.Entry) bool {
	if e == nil || !e.Valid() || !e.HasComponent(components.Pickable) {
		return false
	}
	if e.HasComponent(components.Held) || e.HasComponent(components.Queued) {
		return false
	}
	_, taken := p.claimed[e.Entity()]
	return !taken
}

// pickCandidate returns the hover target if it is pickable, otherwise the
// nearest free pickable around the cursor.
func (p *handPass) pickCandidate(t *handTick) (donburi.Entity, bool) {
	if t.hover.Valid && p.world.Valid(t.hover.Entity) {
		if e := p.world.Entry(t.hover.Entity); p.isFreePickable(e) {
			return e.Entity(), true
		}
	}

	s := &candidateSearch{
		p:        p,
		cursor:   t.hand.Cursor,
		radiusSq: t.cfg.PickupRadius * t.cfg.PickupRadius,
		maxDy:    t.cfg.MaxGrabDistance,
	}
	if p.space == nil || !p.searchSpace(s, t.cfg.PickupRadius) {
		components.Pickable.Each(p.world, s.consider)
	}
	return s.best, s.found
}

// searchSpace queries the resolv index with the probe stretched over the
// pickup radius. It returns false without searching when the query reaches
// past the grid, where objects can sit unindexed.
func (p *handPass) searchSpace(s *candidateSearch, radius float64) bool {
	x, y := p.space.ToSpace(s.cursor.X(), s.cursor.Z())
	if !p.space.Covers(x-radius, y-radius, radius*2, radius*2) {
		return false
	}
	probe := p.space.Probe
	probe.X = x - radius
	probe.Y = y - radius
	probe.W = radius * 2
	probe.H = radius * 2
	probe.Update()

	col := probe.Check(0, 0, tags.ResolvPickable)
	if col == nil {
		return true
	}
	for _, obj := range col.Objects {
		e, ok := obj.Data.(*donburi.Entry)
		if !ok {
			continue
		}
		s.consider(e)
	}
	return true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
