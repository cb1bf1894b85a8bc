package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// TransformData is an object's world placement.
type TransformData struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

var Transform = donburi.NewComponentType[TransformData]()

// BodyData is the physics state the hand hands objects off to and from.
type BodyData struct {
	Velocity mgl64.Vec3
	Gravity  float64 // gravity factor, 0 = suspended
}

var Body = donburi.NewComponentType[BodyData]()

// WeatherData marks free-falling weather objects (rain clouds, hail) that the
// weather pass moves by velocity alone.
type WeatherData struct {
	Velocity mgl64.Vec3
}

var Weather = donburi.NewComponentType[WeatherData]()
