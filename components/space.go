package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// ObjectData links an entity to its footprint in the spatial index.
// The resolv object's Data field points back at the entity.
type ObjectData struct {
	*resolv.Object
}

var Object = donburi.NewComponentType[ObjectData]()

// SpaceData is the resolv space over the ground plane (world X, world Z)
// plus the probe object used for radius queries.
type SpaceData struct {
	Space      *resolv.Space
	Probe      *resolv.Object
	OriginX    float64
	OriginZ    float64
	Width      float64 // extent in space coordinates
	Height     float64
	ObjectSize float64
}

// ToSpace converts a ground-plane position to space coordinates.
func (s *SpaceData) ToSpace(x, z float64) (float64, float64) {
	return x - s.OriginX, z - s.OriginZ
}

// Covers reports whether the space-coordinate rectangle lies inside the
// grid. Objects outside the grid are never registered in a cell.
func (s *SpaceData) Covers(x, y, w, h float64) bool {
	return x >= 0 && y >= 0 && x+w <= s.Width && y+h <= s.Height
}

var Space = donburi.NewComponentType[SpaceData]()
