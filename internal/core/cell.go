package core

import "fmt"

// Cell is an integer coordinate on the tile grid.
// X increases to the right, Y increases downward (screen coordinates).
type Cell struct {
	X int
	Y int
}

// C is a convenience constructor for Cell.
func C(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Cell offset by (dx, dy).
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// AddCell returns the sum of two cells.
func (c Cell) AddCell(other Cell) Cell {
	return Cell{X: c.X + other.X, Y: c.Y + other.Y}
}

// Step returns the cell n steps away in the given direction.
func (c Cell) Step(d Dir, n int) Cell {
	dx, dy := d.Delta()
	return c.Add(dx*n, dy*n)
}

// Manhattan returns the Manhattan distance to another cell.
func (c Cell) Manhattan(other Cell) int {
	return Abs(c.X-other.X) + Abs(c.Y-other.Y)
}

// IsDiagonalTo reports whether other differs from c on both axes.
func (c Cell) IsDiagonalTo(other Cell) bool {
	return c.X != other.X && c.Y != other.Y
}

// Chebyshev returns the king-move distance to another cell.
func (c Cell) Chebyshev(other Cell) int {
	return Max(Abs(c.X-other.X), Abs(c.Y-other.Y))
}
