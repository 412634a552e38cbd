package game

import (
	"math"

	"github.com/vovakirdan/little-wizard/internal/core"
)

// Viewport maps between pointer pixels, terminal columns and grid cells.
// Pointer positions are in pixels so the gesture thresholds keep their
// touch-screen meaning; each terminal column and row spans a fixed number
// of pixels.
type Viewport struct {
	OffsetX         int // Column of cell (0,0)
	OffsetY         int // Row of cell (0,0)
	CellWidth       int // Columns per cell
	PixelsPerColumn float64
	PixelsPerRow    float64
}

// ScreenToCell returns the cell under a pointer position.
func (v Viewport) ScreenToCell(p core.Vec2) core.Cell {
	col := int(math.Floor(p.X / v.PixelsPerColumn))
	row := int(math.Floor(p.Y / v.PixelsPerRow))
	return core.C(floorDiv(col-v.OffsetX, v.CellWidth), row-v.OffsetY)
}

// CellToColumn returns the terminal position of a cell's first column.
func (v Viewport) CellToColumn(c core.Cell) (x, y int) {
	return v.OffsetX + c.X*v.CellWidth, v.OffsetY + c.Y
}

// ColumnToPixels returns the pointer position at the center of a
// terminal cell.
func (v Viewport) ColumnToPixels(x, y int) core.Vec2 {
	return core.V((float64(x)+0.5)*v.PixelsPerColumn, (float64(y)+0.5)*v.PixelsPerRow)
}

// CellToPixels returns the pointer position at the center of a grid cell.
func (v Viewport) CellToPixels(c core.Cell) core.Vec2 {
	x, y := v.CellToColumn(c)
	return v.ColumnToPixels(x, y)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
