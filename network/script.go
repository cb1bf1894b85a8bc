package network

import (
	"math"

	"github.com/automoto/godhand/shared/gamemath"
	"github.com/automoto/godhand/shared/leveldata"
	"github.com/automoto/godhand/shared/messages"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// rayHeight is how far above the cursor the scripted hand casts its ray from.
const rayHeight = 20.0

type scriptPhase int

const (
	phaseMoveToPick scriptPhase = iota
	phaseGrab
	phaseMoveToDrop
	phaseCharge
	phaseRelease
)

// Script produces the input of a hand that walks a level's objects in turn,
// grabs each one and throws it at the next drop point. It only sees the
// level's spawn layout, so an object that moved is simply missed.
type Script struct {
	picks []mgl64.Vec3
	drops []mgl64.Vec3

	CursorSpeed   float64 // world units per second
	ChargeSeconds float64

	Cycles int // completed pick-and-throw rounds

	phase  scriptPhase
	pick   int
	drop   int
	cursor mgl64.Vec3
	from   mgl64.Vec3
	to     mgl64.Vec3
	tween  *gween.Tween
	timer  float64
}

// NewScript builds a script over the non-weather pickables of a level, with
// the level's hand spawns as drop points. The cursor starts on the first
// drop point, or the origin when the level has none.
func NewScript(level *leveldata.LevelData) *Script {
	s := &Script{
		CursorSpeed:   12,
		ChargeSeconds: 0.6,
	}
	for _, p := range level.Pickables {
		if !p.Weather {
			s.picks = append(s.picks, mgl64.Vec3{p.X, 0, p.Z})
		}
	}
	for _, h := range level.Hands {
		s.drops = append(s.drops, mgl64.Vec3{h.X, 0, h.Z})
	}
	if len(s.drops) > 0 {
		s.cursor = s.drops[0]
	}
	s.startLeg(s.currentPick())
	return s
}

// Cursor is the ground point the scripted hand is aiming at.
func (s *Script) Cursor() mgl64.Vec3 {
	return s.cursor
}

// Next advances the script by dt seconds and returns the input to send.
// Release edges are derived by the server from the held buttons.
func (s *Script) Next(dt float64) messages.HandInput {
	var in messages.HandInput

	switch s.phase {
	case phaseMoveToPick:
		if s.advance(dt) {
			s.phase = phaseGrab
		}

	case phaseGrab:
		in.StartSelect = true
		s.startLeg(s.currentDrop())
		s.phase = phaseMoveToDrop

	case phaseMoveToDrop:
		if s.advance(dt) {
			s.phase = phaseCharge
			s.timer = 0
		}

	case phaseCharge:
		in.Secondary = true
		s.timer += dt
		if s.timer >= s.ChargeSeconds {
			s.phase = phaseRelease
		}

	case phaseRelease:
		if len(s.picks) > 0 {
			s.pick = (s.pick + 1) % len(s.picks)
		}
		if len(s.drops) > 0 {
			s.drop = (s.drop + 1) % len(s.drops)
		}
		s.Cycles++
		s.startLeg(s.currentPick())
		s.phase = phaseMoveToPick
	}

	origin := s.cursor.Add(mgl64.Vec3{0, rayHeight, 0})
	in.RayOrigin = [3]float64(origin)
	in.RayDirection = [3]float64(gamemath.Down)
	return in
}

func (s *Script) currentPick() mgl64.Vec3 {
	if len(s.picks) == 0 {
		return s.cursor
	}
	return s.picks[s.pick]
}

func (s *Script) currentDrop() mgl64.Vec3 {
	if len(s.drops) == 0 {
		return s.cursor
	}
	return s.drops[s.drop]
}

func (s *Script) startLeg(to mgl64.Vec3) {
	seconds := 0.05
	if s.CursorSpeed > 0 {
		seconds = max(seconds, math.Sqrt(gamemath.HorizontalDistSq(s.cursor, to))/s.CursorSpeed)
	}
	s.from = s.cursor
	s.to = to
	s.tween = gween.New(0, 1, float32(seconds), ease.InOutQuad)
}

func (s *Script) advance(dt float64) bool {
	if s.tween == nil {
		s.cursor = s.to
		return true
	}
	progress, done := s.tween.Update(float32(dt))
	s.cursor = gamemath.LerpVec(s.from, s.to, float64(progress))
	if done {
		s.cursor = s.to
		s.tween = nil
	}
	return done
}
