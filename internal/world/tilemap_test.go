package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/little-wizard/internal/core"
)

func TestSpriteCells(t *testing.T) {
	tests := []struct {
		name   string
		sprite Sprite
		want   int
	}{
		{"exact multiple", Sprite{PixelHeight: 64, PixelsPerUnit: 16}, 4},
		{"rounds up", Sprite{PixelHeight: 40, PixelsPerUnit: 16}, 3},
		{"shorter than a cell", Sprite{PixelHeight: 8, PixelsPerUnit: 16}, 1},
		{"missing metadata", Sprite{}, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.sprite.Cells())
		})
	}
}

func TestTileMapWalkability(t *testing.T) {
	m := NewOpenField(4, 4)
	m.SetObstacle(core.C(1, 1))
	m.PlantTree(core.C(2, 2), Sprite{PixelHeight: 48, PixelsPerUnit: 16})
	m.ClearGround(core.C(3, 3))

	assert.True(t, m.IsWalkable(core.C(0, 0)))
	assert.False(t, m.IsWalkable(core.C(1, 1)), "rock blocks")
	assert.True(t, m.IsObstacle(core.C(2, 2)), "trees are obstacles")
	assert.False(t, m.IsWalkable(core.C(2, 2)))
	assert.False(t, m.IsWalkable(core.C(3, 3)), "no ground")
	assert.False(t, m.IsWalkable(core.C(-1, 0)), "outside the painted area")
	assert.True(t, Passable(m, core.C(0, 3)))

	assert.Equal(t, 3, m.HeightOf(core.C(2, 2)))

	require.True(t, m.RemoveTree(core.C(2, 2)))
	assert.True(t, m.IsWalkable(core.C(2, 2)), "ground survives a felled tree")
	assert.False(t, m.RemoveTree(core.C(2, 2)))
}

func TestNeighborsWithinRadius(t *testing.T) {
	m := NewOpenField(5, 5)
	for _, c := range []core.Cell{core.C(2, 2), core.C(3, 2), core.C(3, 3), core.C(4, 4)} {
		m.PlantTree(c, Sprite{})
	}

	got := m.NeighborsWithinRadius(UnitLayout.CellToWorld(core.C(2, 2)), 1.0)
	assert.Equal(t, []core.Cell{core.C(2, 2), core.C(3, 2)}, got)

	got = m.NeighborsWithinRadius(UnitLayout.CellToWorld(core.C(2, 2)), 1.5)
	assert.Equal(t, []core.Cell{core.C(2, 2), core.C(3, 2), core.C(3, 3)}, got)
}

func TestTreesSortedAndClone(t *testing.T) {
	m := NewOpenField(3, 3)
	m.PlantTree(core.C(2, 0), Sprite{})
	m.PlantTree(core.C(0, 1), Sprite{})
	m.PlantTree(core.C(1, 0), Sprite{})

	assert.Equal(t, []core.Cell{core.C(1, 0), core.C(2, 0), core.C(0, 1)}, m.Trees())

	clone := m.Clone()
	m.RemoveTree(core.C(1, 0))
	assert.Equal(t, 3, clone.TreeCount())
	assert.Equal(t, 2, m.TreeCount())
}

func TestLayout(t *testing.T) {
	l := Layout{CellSize: 2}

	assert.Equal(t, core.V(3, 5), l.CellToWorld(core.C(1, 2)))
	assert.Equal(t, core.C(1, 2), l.WorldToCell(core.V(3.9, 4.1)))
	assert.Equal(t, core.C(-1, 0), l.WorldToCell(core.V(-0.5, 0.5)))

	assert.True(t, l.IsAtCellCenter(core.V(3.001, 5), 0.01))
	assert.False(t, l.IsAtCellCenter(core.V(3.5, 5), 0.01))
}
