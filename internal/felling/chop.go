package felling

import "github.com/vovakirdan/little-wizard/internal/core"

// Chop strikes the unmarked tree at c once. It returns the health left and
// whether the tree came down. Marked trees and empty cells are ignored.
func (s *System) Chop(c core.Cell) (remaining int, felled bool) {
	if !s.forest.HasTree(c) || s.IsMarked(c) {
		return 0, false
	}
	hp, ok := s.health[c]
	if !ok {
		hp = s.cfg.ChopHealth
	}
	hp--
	s.emit(Event{Kind: EventChopped, Cell: c, Count: hp})

	if hp > 0 {
		s.health[c] = hp
		return hp, false
	}
	delete(s.health, c)
	s.forest.RemoveTree(c)
	s.visuals.ShowFelled(Tree{Cell: c, Height: 1})
	s.emit(Event{Kind: EventFelled, Cell: c, Height: 1})
	s.logger.Info("chopped down", "cell", c)
	return 0, true
}

// Health returns the chop health left on the tree at c.
func (s *System) Health(c core.Cell) int {
	if !s.forest.HasTree(c) {
		return 0
	}
	if hp, ok := s.health[c]; ok {
		return hp
	}
	return s.cfg.ChopHealth
}
