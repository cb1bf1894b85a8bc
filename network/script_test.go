package network

import (
	"testing"

	"github.com/automoto/godhand/shared/leveldata"
	"github.com/go-gl/mathgl/mgl64"
)

const dt = 1.0 / 60

func probeLevel() *leveldata.LevelData {
	return &leveldata.LevelData{
		Hands: []leveldata.HandSpawn{{X: 0, Z: 0}, {X: 0, Z: 10}},
		Pickables: []leveldata.PickableSpawn{
			{X: 6, Z: 0},
			{X: 3, Y: 6, Z: 3, Weather: true},
			{X: -4, Z: 2},
		},
	}
}

func TestScriptSkipsWeather(t *testing.T) {
	s := NewScript(probeLevel())
	if len(s.picks) != 2 {
		t.Fatalf("picks = %v, want the two ground objects", s.picks)
	}
	if s.Cursor() != (mgl64.Vec3{}) {
		t.Errorf("cursor starts at %v, want first hand spawn", s.Cursor())
	}
}

func TestScriptRound(t *testing.T) {
	s := NewScript(probeLevel())

	var grabbedAt mgl64.Vec3
	grabs, charged, ticks := 0, 0, 0
	for ; s.Cycles == 0 && ticks < 600; ticks++ {
		in := s.Next(dt)
		if in.StartSelect {
			grabs++
			grabbedAt = mgl64.Vec3{in.RayOrigin[0], 0, in.RayOrigin[2]}
		}
		if in.Secondary {
			charged++
		}
		if in.RayDirection != [3]float64{0, -1, 0} {
			t.Fatalf("ray direction = %v", in.RayDirection)
		}
	}
	if s.Cycles != 1 {
		t.Fatalf("no round completed in %d ticks", ticks)
	}
	if grabs != 1 {
		t.Errorf("grabs = %d, want 1", grabs)
	}
	if !grabbedAt.ApproxEqual(mgl64.Vec3{6, 0, 0}) {
		t.Errorf("grabbed at %v, want the first object", grabbedAt)
	}
	if want := int(s.ChargeSeconds / dt); charged < want-2 || charged > want+2 {
		t.Errorf("charged %d ticks, want about %d", charged, want)
	}

	// The next round heads for the second object and the second drop point.
	if s.pick != 1 || s.drop != 1 {
		t.Errorf("pick=%d drop=%d after one round", s.pick, s.drop)
	}
}

func TestScriptEmptyLevel(t *testing.T) {
	s := NewScript(&leveldata.LevelData{})
	for i := 0; i < 200; i++ {
		s.Next(dt)
	}
	if s.Cursor() != (mgl64.Vec3{}) {
		t.Errorf("cursor wandered to %v on an empty level", s.Cursor())
	}
}
