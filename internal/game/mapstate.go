package game

import "fmt"

// RareResourceNode is a deposit placed on a map tile. Buildings whose
// type matches the deposit's bonus target earn extra income when their
// footprint covers it.
type RareResourceNode struct {
	ResourceID string `json:"resourceId"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
}

// GameMap is the playable grid and its rare resource deposits.
// Deposits are keyed by the canonical "x,y" tile key.
type GameMap struct {
	Width         int
	Height        int
	RareResources map[string]*RareResourceNode
}

// TileKey formats a coordinate as the canonical "x,y" lookup key.
func TileKey(x, y int) string {
	return fmt.Sprintf("%d,%d", x, y)
}

// MapManager owns the game map.
type MapManager struct {
	m *GameMap
}

// NewMapManager creates a map of the given dimensions.
func NewMapManager(width, height int) *MapManager {
	return &MapManager{m: &GameMap{
		Width:         max(1, width),
		Height:        max(1, height),
		RareResources: make(map[string]*RareResourceNode),
	}}
}

// MapRef returns the live map. Callers treat it as read-only.
func (mm *MapManager) MapRef() *GameMap {
	return mm.m
}

// InBounds reports whether a w*h footprint at (x, y) fits on the map.
func (mm *MapManager) InBounds(x, y, w, h int) bool {
	return x >= 0 && y >= 0 && x+w <= mm.m.Width && y+h <= mm.m.Height
}

// PlaceRareResource puts a deposit on a tile, replacing any deposit
// already there. Out-of-bounds placements are ignored.
func (mm *MapManager) PlaceRareResource(resourceID string, x, y int) {
	if !mm.InBounds(x, y, 1, 1) {
		return
	}
	mm.m.RareResources[TileKey(x, y)] = &RareResourceNode{ResourceID: resourceID, X: x, Y: y}
}

// RareResourceAt returns the deposit on a tile, or nil.
func (mm *MapManager) RareResourceAt(x, y int) *RareResourceNode {
	return mm.m.RareResources[TileKey(x, y)]
}

func (mm *MapManager) restore(nodes map[string]*RareResourceNode) {
	mm.m.RareResources = make(map[string]*RareResourceNode, len(nodes))
	for _, n := range nodes {
		mm.m.RareResources[TileKey(n.X, n.Y)] = &RareResourceNode{ResourceID: n.ResourceID, X: n.X, Y: n.Y}
	}
}
