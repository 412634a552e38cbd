// Package pathfind implements A* search over a world.GridIndex with
// 8-way movement and no corner cutting.
package pathfind

import (
	"strings"

	"github.com/vovakirdan/little-wizard/internal/core"
)

// Step costs. Diagonal moves approximate √2.
const (
	StraightCost = 1.0
	DiagonalCost = 1.4
)

// Path is an ordered list of cells from start to goal, both included.
// An empty path means the goal is unreachable.
type Path []core.Cell

// Empty reports whether the path has no cells.
func (p Path) Empty() bool {
	return len(p) == 0
}

// Start returns the first cell of the path.
func (p Path) Start() (core.Cell, bool) {
	if len(p) == 0 {
		return core.Cell{}, false
	}
	return p[0], true
}

// Goal returns the last cell of the path.
func (p Path) Goal() (core.Cell, bool) {
	if len(p) == 0 {
		return core.Cell{}, false
	}
	return p[len(p)-1], true
}

// Cost sums the per-step costs along the path.
func (p Path) Cost() float64 {
	total := 0.0
	for i := 1; i < len(p); i++ {
		total += StepCost(p[i-1], p[i])
	}
	return total
}

// String renders the path as "(0,0)->(1,1)".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = c.String()
	}
	return strings.Join(parts, "->")
}

// StepCost returns the cost of moving between two adjacent cells.
func StepCost(from, to core.Cell) float64 {
	if from.IsDiagonalTo(to) {
		return DiagonalCost
	}
	return StraightCost
}
