package components

import (
	"github.com/automoto/godhand/config"
	"github.com/yohamta/donburi"
)

// ResourceCatalogData maps external resource identifiers to compact indices.
// Index config.ResourceGeneric is reserved for untyped cargo.
type ResourceCatalogData struct {
	indices map[string]int
	names   []string
}

// NewResourceCatalog registers the given identifiers in order.
func NewResourceCatalog(ids ...string) *ResourceCatalogData {
	c := &ResourceCatalogData{
		indices: make(map[string]int, len(ids)),
		names:   []string{"generic"},
	}
	for _, id := range ids {
		c.Register(id)
	}
	return c
}

// Register adds id if it is new and returns its index.
func (c *ResourceCatalogData) Register(id string) int {
	if idx, ok := c.indices[id]; ok {
		return idx
	}
	idx := len(c.names)
	c.indices[id] = idx
	c.names = append(c.names, id)
	return idx
}

// Index resolves an identifier.
func (c *ResourceCatalogData) Index(id string) (int, bool) {
	idx, ok := c.indices[id]
	return idx, ok
}

// Name returns the identifier registered at idx.
func (c *ResourceCatalogData) Name(idx int) string {
	if idx == config.ResourceNone || idx < 0 || idx >= len(c.names) {
		return ""
	}
	return c.names[idx]
}

func (c *ResourceCatalogData) Len() int {
	return len(c.names)
}

var ResourceCatalog = donburi.NewComponentType[ResourceCatalogData]()
