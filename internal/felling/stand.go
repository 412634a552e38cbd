package felling

import (
	"github.com/vovakirdan/little-wizard/internal/core"
	"github.com/vovakirdan/little-wizard/internal/sched"
	"github.com/vovakirdan/little-wizard/internal/world"
)

// Distancer measures walking distance between cells.
type Distancer interface {
	Distance(start, goal core.Cell) (float64, bool)
}

// Mover is the entity that walks to a stand tile before marking.
type Mover interface {
	MoveTo(goal core.Cell) error
	IsMoving() bool
	Cell() core.Cell
}

// StandCandidates lists the tiles from which a tree can be pushed toward
// dir: directly behind it, to either side, and diagonally behind on each
// side.
func StandCandidates(tree core.Cell, dir core.Dir) [5]core.Cell {
	back := dir.Opposite()
	side := dir.Perpendicular()
	other := side.Opposite()
	return [5]core.Cell{
		tree.Step(back, 1),
		tree.Step(side, 1),
		tree.Step(side, 1).Step(back, 1),
		tree.Step(other, 1),
		tree.Step(other, 1).Step(back, 1),
	}
}

// StandTile picks the reachable candidate closest to from by path cost.
// Ties go to the earlier candidate.
func (s *System) StandTile(tree core.Cell, dir core.Dir, from core.Cell, pf Distancer) (core.Cell, bool) {
	var (
		best     core.Cell
		bestCost float64
		found    bool
	)
	for _, c := range StandCandidates(tree, dir) {
		if !world.Passable(s.forest, c) {
			continue
		}
		cost, ok := pf.Distance(from, c)
		if !ok {
			continue
		}
		if !found || cost < bestCost {
			best, bestCost, found = c, cost, true
		}
	}
	return best, found
}

type approach struct {
	tree   core.Cell
	stand  core.Cell
	handle *sched.Handle
}

// MarkFromSwipe sends mover to the best stand tile for tree and marks the
// tree once the mover comes to rest exactly there. A newer swipe replaces
// a pending approach. It returns false when the approach cannot start.
func (s *System) MarkFromSwipe(tree core.Cell, dir core.Dir, mover Mover, pf Distancer) bool {
	if dir == core.DirNone || !s.forest.HasTree(tree) || s.IsMarked(tree) {
		return false
	}

	stand, ok := s.StandTile(tree, dir, mover.Cell(), pf)
	if !ok {
		s.logger.Warn("no stand tile", "tree", tree, "dir", dir, "from", mover.Cell())
		s.emit(Event{Kind: EventMarkAborted, Cell: tree, Dir: dir})
		return false
	}

	s.abortApproach()

	if !mover.IsMoving() && mover.Cell() == stand {
		return s.MarkForFelling(tree, dir)
	}
	if err := mover.MoveTo(stand); err != nil {
		s.logger.Warn("cannot reach stand tile", "tree", tree, "stand", stand, "err", err)
		s.emit(Event{Kind: EventMarkAborted, Cell: tree, Dir: dir})
		return false
	}

	a := &approach{tree: tree, stand: stand}
	a.handle = s.sched.Spawn("approach", sched.Until(
		func() bool { return !mover.IsMoving() },
		func() {
			s.approach = nil
			if mover.Cell() != stand || !s.forest.HasTree(tree) {
				s.logger.Debug("approach abandoned", "tree", tree, "stand", stand, "at", mover.Cell())
				s.emit(Event{Kind: EventMarkAborted, Cell: tree, Dir: dir})
				return
			}
			s.MarkForFelling(tree, dir)
		},
	))
	s.approach = a
	s.logger.Debug("approaching", "tree", tree, "stand", stand)
	return true
}

// Approaching returns the tree and stand tile of a pending approach.
func (s *System) Approaching() (tree, stand core.Cell, ok bool) {
	if s.approach == nil {
		return core.Cell{}, core.Cell{}, false
	}
	return s.approach.tree, s.approach.stand, true
}

func (s *System) abortApproach() {
	if s.approach == nil {
		return
	}
	s.approach.handle.Cancel()
	s.emit(Event{Kind: EventMarkAborted, Cell: s.approach.tree})
	s.approach = nil
}
