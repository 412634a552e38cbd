package game

import (
	"time"

	"github.com/vovakirdan/little-wizard/internal/core"
	"github.com/vovakirdan/little-wizard/internal/felling"
)

// fallDuration is how long a felled tree is drawn falling.
const fallDuration = 300 * time.Millisecond

// marker is the destination marker drawn while walking.
type marker struct {
	placed bool
	at     core.Vec2
}

func (m *marker) Place(pos core.Vec2) {
	m.placed = true
	m.at = pos
}

func (m *marker) Remove() {
	m.placed = false
}

// falling is a tree drawn mid-fall.
type falling struct {
	tree felling.Tree
	left time.Duration
}

// treeVisuals tracks what the renderer draws for the felling system.
type treeVisuals struct {
	falling map[core.Cell]*falling
}

func newTreeVisuals() *treeVisuals {
	return &treeVisuals{falling: make(map[core.Cell]*falling)}
}

func (v *treeVisuals) ShowMarked(felling.Tree) {}
func (v *treeVisuals) ClearMarked(core.Cell)   {}
func (v *treeVisuals) ShowFelled(t felling.Tree) {
	v.falling[t.Cell] = &falling{tree: t, left: fallDuration}
}

// advance ages falling trees and forgets finished ones.
func (v *treeVisuals) advance(dt time.Duration) {
	for c, f := range v.falling {
		f.left -= dt
		if f.left <= 0 {
			delete(v.falling, c)
		}
	}
}
