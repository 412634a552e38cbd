package felling

import (
	"github.com/vovakirdan/little-wizard/internal/core"
	"github.com/vovakirdan/little-wizard/internal/world"
)

// Candidate is a cell a falling tree may knock over. A non-None Dir means
// an unmarked tree at Cell adopts that direction.
type Candidate struct {
	Cell core.Cell
	Dir  core.Dir
}

// Propagator decides which cells a fallen tree reaches.
type Propagator interface {
	Spread(fallen Tree) []Candidate
}

// DirectionChain reaches the cells covered by the fallen tree's length
// along its fall direction. Only trees that are already marked topple.
type DirectionChain struct{}

// Spread implements Propagator.
func (DirectionChain) Spread(fallen Tree) []Candidate {
	if fallen.Height <= 1 {
		return nil
	}
	out := make([]Candidate, 0, fallen.Height-1)
	for k := 1; k < fallen.Height; k++ {
		out = append(out, Candidate{Cell: fallen.Cell.Step(fallen.Dir, k)})
	}
	return out
}

// RadiusSpread knocks over every tree within Radius of the fallen tree's
// center, marked or not. Unmarked trees fall the same way.
type RadiusSpread struct {
	Query  world.SpatialQuery
	Radius float64
}

// Spread implements Propagator.
func (r RadiusSpread) Spread(fallen Tree) []Candidate {
	center := world.UnitLayout.CellToWorld(fallen.Cell)
	var out []Candidate
	for _, c := range r.Query.NeighborsWithinRadius(center, r.Radius) {
		if c == fallen.Cell {
			continue
		}
		out = append(out, Candidate{Cell: c, Dir: fallen.Dir})
	}
	return out
}
