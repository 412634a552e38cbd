package world

import (
	"math"

	"github.com/vovakirdan/little-wizard/internal/core"
)

// Layout converts between grid cells and continuous world positions.
// Cell (x, y) covers [x*size, (x+1)*size) on each axis.
type Layout struct {
	CellSize float64
}

// UnitLayout is a layout with one world unit per cell.
var UnitLayout = Layout{CellSize: 1}

// CellToWorld returns the center of a cell.
func (l Layout) CellToWorld(c core.Cell) core.Vec2 {
	return core.V((float64(c.X)+0.5)*l.CellSize, (float64(c.Y)+0.5)*l.CellSize)
}

// WorldToCell returns the cell containing a world position.
func (l Layout) WorldToCell(p core.Vec2) core.Cell {
	return core.C(int(math.Floor(p.X/l.CellSize)), int(math.Floor(p.Y/l.CellSize)))
}

// IsAtCellCenter reports whether p lies within eps of its cell's center.
func (l Layout) IsAtCellCenter(p core.Vec2, eps float64) bool {
	return p.Dist(l.CellToWorld(l.WorldToCell(p))) < eps
}
