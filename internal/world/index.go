// Package world holds the tile map the wizard walks on and the narrow
// query contracts the pathfinder and felling system consume.
package world

import "github.com/vovakirdan/little-wizard/internal/core"

// GridIndex answers walkability questions about cells. Answers must not
// change during a single tick.
type GridIndex interface {
	// IsWalkable reports whether the cell can be stood on.
	IsWalkable(c core.Cell) bool
	// IsObstacle reports whether the cell blocks traversal regardless of
	// what lies beneath it.
	IsObstacle(c core.Cell) bool
}

// Passable reports whether c is walkable and not obstructed.
func Passable(g GridIndex, c core.Cell) bool {
	return g.IsWalkable(c) && !g.IsObstacle(c)
}

// VisualExtent reports how many cells tall the object drawn at a cell is.
type VisualExtent interface {
	HeightOf(c core.Cell) int
}

// SpatialQuery enumerates entities whose centers lie within a radius.
type SpatialQuery interface {
	NeighborsWithinRadius(pos core.Vec2, r float64) []core.Cell
}

// MarkerVisual is the destination marker shown while walking.
// Remove must be safe to call when nothing is placed.
type MarkerVisual interface {
	Place(pos core.Vec2)
	Remove()
}
