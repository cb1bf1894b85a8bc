package gamemath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// horizontalEpsilon is the smallest |dir.y| treated as pointing at the ground.
const horizontalEpsilon = 1e-6

var (
	Down = mgl64.Vec3{0, -1, 0}
	Up   = mgl64.Vec3{0, 1, 0}
)

// CursorOnGround intersects the ray with the y=0 plane. Near-horizontal rays
// and hits behind the origin fall back to the ray origin.
func CursorOnGround(origin, dir mgl64.Vec3) mgl64.Vec3 {
	if math.Abs(dir.Y()) <= horizontalEpsilon {
		return origin
	}
	t := -origin.Y() / dir.Y()
	if t <= 0 {
		return origin
	}
	return origin.Add(dir.Mul(t))
}

// AimDirection normalizes dir, pointing straight down when it is degenerate.
func AimDirection(dir mgl64.Vec3) mgl64.Vec3 {
	l := dir.Len()
	if l <= horizontalEpsilon || math.IsNaN(l) || math.IsInf(l, 0) {
		return Down
	}
	return dir.Mul(1 / l)
}

// HorizontalDistSq is the squared distance between a and b on the ground plane.
func HorizontalDistSq(a, b mgl64.Vec3) float64 {
	dx := a.X() - b.X()
	dz := a.Z() - b.Z()
	return dx*dx + dz*dz
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec interpolates between two points.
func LerpVec(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Saturate clamps v to [0, 1].
func Saturate(v float64) float64 {
	return mgl64.Clamp(v, 0, 1)
}
