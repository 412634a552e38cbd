package world

import (
	"math"
	"sort"

	"github.com/vovakirdan/little-wizard/internal/core"
)

// Sprite is the visual metadata of a tree: its image height in pixels and
// the pixels-per-unit it was authored at.
type Sprite struct {
	PixelHeight   float64
	PixelsPerUnit float64
}

// Cells returns how many grid cells the sprite spans vertically, at least 1.
func (s Sprite) Cells() int {
	if s.PixelsPerUnit <= 0 || s.PixelHeight <= 0 {
		return 1
	}
	n := int(math.Ceil(s.PixelHeight / s.PixelsPerUnit))
	if n < 1 {
		return 1
	}
	return n
}

// TileMap stores ground, obstacle and tree layers of a map. Trees block
// movement. The map is unbounded; only cells with ground are walkable.
type TileMap struct {
	W, H      int
	ground    map[core.Cell]bool
	obstacles map[core.Cell]bool
	trees     map[core.Cell]Sprite
}

// NewTileMap creates an empty map with nominal dimensions used for
// rendering and generation.
func NewTileMap(w, h int) *TileMap {
	return &TileMap{
		W:         w,
		H:         h,
		ground:    make(map[core.Cell]bool),
		obstacles: make(map[core.Cell]bool),
		trees:     make(map[core.Cell]Sprite),
	}
}

// NewOpenField creates a w×h map with ground on every cell.
func NewOpenField(w, h int) *TileMap {
	m := NewTileMap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetGround(core.C(x, y))
		}
	}
	return m
}

// InBounds reports whether c lies inside the nominal dimensions.
func (m *TileMap) InBounds(c core.Cell) bool {
	return c.X >= 0 && c.X < m.W && c.Y >= 0 && c.Y < m.H
}

// SetGround places walkable ground at c.
func (m *TileMap) SetGround(c core.Cell) {
	m.ground[c] = true
}

// ClearGround removes ground from c.
func (m *TileMap) ClearGround(c core.Cell) {
	delete(m.ground, c)
}

// HasGround reports whether c has ground.
func (m *TileMap) HasGround(c core.Cell) bool {
	return m.ground[c]
}

// SetObstacle places a non-tree obstacle (rock, wall) at c.
func (m *TileMap) SetObstacle(c core.Cell) {
	m.obstacles[c] = true
}

// ClearObstacle removes a non-tree obstacle from c.
func (m *TileMap) ClearObstacle(c core.Cell) {
	delete(m.obstacles, c)
}

// PlantTree places a tree at c. Any existing tree is replaced.
func (m *TileMap) PlantTree(c core.Cell, s Sprite) {
	m.trees[c] = s
}

// RemoveTree removes the tree at c, leaving the ground beneath it.
func (m *TileMap) RemoveTree(c core.Cell) bool {
	if _, ok := m.trees[c]; !ok {
		return false
	}
	delete(m.trees, c)
	return true
}

// TreeAt returns the tree sprite at c.
func (m *TileMap) TreeAt(c core.Cell) (Sprite, bool) {
	s, ok := m.trees[c]
	return s, ok
}

// HasTree reports whether a tree stands at c.
func (m *TileMap) HasTree(c core.Cell) bool {
	_, ok := m.trees[c]
	return ok
}

// Trees returns all tree cells ordered by row then column.
func (m *TileMap) Trees() []core.Cell {
	cells := make([]core.Cell, 0, len(m.trees))
	for c := range m.trees {
		cells = append(cells, c)
	}
	sortCells(cells)
	return cells
}

// TreeCount returns the number of standing trees.
func (m *TileMap) TreeCount() int {
	return len(m.trees)
}

// IsWalkable reports whether c has ground and is not obstructed.
func (m *TileMap) IsWalkable(c core.Cell) bool {
	return m.ground[c] && !m.IsObstacle(c)
}

// IsObstacle reports whether c holds a tree or another obstacle.
func (m *TileMap) IsObstacle(c core.Cell) bool {
	if m.obstacles[c] {
		return true
	}
	_, tree := m.trees[c]
	return tree
}

// HeightOf returns the visual height in cells of the tree at c.
func (m *TileMap) HeightOf(c core.Cell) int {
	s, ok := m.trees[c]
	if !ok {
		return 1
	}
	return s.Cells()
}

// NeighborsWithinRadius returns tree cells whose centers lie within r of
// pos, measured in unit-layout world space.
func (m *TileMap) NeighborsWithinRadius(pos core.Vec2, r float64) []core.Cell {
	var out []core.Cell
	for c := range m.trees {
		if UnitLayout.CellToWorld(c).Dist(pos) <= r {
			out = append(out, c)
		}
	}
	sortCells(out)
	return out
}

// Clone returns a deep copy of the map.
func (m *TileMap) Clone() *TileMap {
	out := NewTileMap(m.W, m.H)
	for c := range m.ground {
		out.ground[c] = true
	}
	for c := range m.obstacles {
		out.obstacles[c] = true
	}
	for c, s := range m.trees {
		out.trees[c] = s
	}
	return out
}

func sortCells(cells []core.Cell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
}
