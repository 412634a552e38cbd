package pathfind

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/little-wizard/internal/core"
	"github.com/vovakirdan/little-wizard/internal/world"
)

// assertValidPath checks endpoints, adjacency, passability and the
// corner rule for every step.
func assertValidPath(t *testing.T, grid world.GridIndex, path Path, start, goal core.Cell) {
	t.Helper()
	require.NotEmpty(t, path)
	assert.Equal(t, start, path[0])
	assert.Equal(t, goal, path[len(path)-1])

	for i := 1; i < len(path); i++ {
		prev, cur := path[i-1], path[i]
		assert.Equal(t, 1, prev.Chebyshev(cur), "step %s->%s is not adjacent", prev, cur)
		assert.True(t, world.Passable(grid, cur), "cell %s is not passable", cur)
		if prev.IsDiagonalTo(cur) {
			assert.True(t, world.Passable(grid, core.C(cur.X, prev.Y)), "corner cut at %s->%s", prev, cur)
			assert.True(t, world.Passable(grid, core.C(prev.X, cur.Y)), "corner cut at %s->%s", prev, cur)
		}
	}
}

func TestFindPathDiagonalOpenField(t *testing.T) {
	grid := world.NewOpenField(5, 5)
	pf := New(grid)

	path := pf.FindPath(core.C(0, 0), core.C(4, 4))

	assertValidPath(t, grid, path, core.C(0, 0), core.C(4, 4))
	assert.Len(t, path, 5)
	assert.InDelta(t, 4*DiagonalCost, path.Cost(), 1e-9)
}

func TestFindPathStraightLine(t *testing.T) {
	grid := world.NewOpenField(6, 3)
	pf := New(grid)

	path := pf.FindPath(core.C(0, 1), core.C(5, 1))

	assertValidPath(t, grid, path, core.C(0, 1), core.C(5, 1))
	assert.InDelta(t, 5.0, path.Cost(), 1e-9)
}

func TestFindPathSameCell(t *testing.T) {
	pf := New(world.NewOpenField(3, 3))

	path := pf.FindPath(core.C(1, 1), core.C(1, 1))

	assert.Equal(t, Path{core.C(1, 1)}, path)
	assert.Zero(t, path.Cost())
}

func TestFindPathNoCornerCutting(t *testing.T) {
	grid := world.NewOpenField(4, 4)
	grid.SetObstacle(core.C(2, 1))
	grid.SetObstacle(core.C(1, 2))
	pf := New(grid)

	path := pf.FindPath(core.C(1, 1), core.C(2, 2))

	assertValidPath(t, grid, path, core.C(1, 1), core.C(2, 2))
	assert.Greater(t, len(path), 2, "diagonal squeeze between obstacles must be rejected")
}

func TestFindPathTreesBlock(t *testing.T) {
	grid := world.NewOpenField(3, 3)
	for y := 0; y < 3; y++ {
		grid.PlantTree(core.C(1, y), world.Sprite{PixelHeight: 32, PixelsPerUnit: 16})
	}
	pf := New(grid)

	path := pf.FindPath(core.C(0, 1), core.C(2, 1))

	assert.True(t, path.Empty())
	_, ok := pf.Distance(core.C(0, 1), core.C(2, 1))
	assert.False(t, ok)
}

func TestFindPathUnwalkableGoal(t *testing.T) {
	grid := world.NewOpenField(3, 3)
	grid.ClearGround(core.C(2, 2))
	pf := New(grid)

	assert.True(t, pf.FindPath(core.C(0, 0), core.C(2, 2)).Empty())
	assert.True(t, pf.FindPath(core.C(0, 0), core.C(10, 10)).Empty())
}

func TestNeighborsOrder(t *testing.T) {
	pf := New(world.NewOpenField(3, 3))

	got := pf.Neighbors(core.C(1, 1))

	want := []core.Cell{
		core.C(2, 1), core.C(0, 1), core.C(1, 2), core.C(1, 0),
		core.C(2, 2), core.C(0, 2), core.C(2, 0), core.C(0, 0),
	}
	assert.Equal(t, want, got)
}

func TestDistance(t *testing.T) {
	pf := New(world.NewOpenField(5, 5))

	d, ok := pf.Distance(core.C(0, 0), core.C(2, 0))
	require.True(t, ok)
	assert.InDelta(t, 2.0, d, 1e-9)

	d, ok = pf.Distance(core.C(3, 3), core.C(3, 3))
	require.True(t, ok)
	assert.Zero(t, d)
}

func TestOnSearchHook(t *testing.T) {
	pf := New(world.NewOpenField(4, 4))
	var seen []SearchStats
	pf.OnSearch = func(s SearchStats) { seen = append(seen, s) }

	pf.FindPath(core.C(0, 0), core.C(3, 0))

	require.Len(t, seen, 1)
	assert.True(t, seen[0].Found)
	assert.Equal(t, 4, seen[0].Length)
	assert.Positive(t, seen[0].Expanded)
}

// reachable floods from start using the same neighbor rule.
func reachable(pf *Pathfinder, start, goal core.Cell) bool {
	seen := map[core.Cell]bool{start: true}
	frontier := []core.Cell{start}
	for len(frontier) > 0 {
		c := frontier[0]
		frontier = frontier[1:]
		if c == goal {
			return true
		}
		for _, n := range pf.Neighbors(c) {
			if !seen[n] {
				seen[n] = true
				frontier = append(frontier, n)
			}
		}
	}
	return false
}

func TestFindPathRandomGrids(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		grid := world.NewOpenField(8, 8)
		for i := 0; i < 18; i++ {
			c := core.C(rng.Intn(8), rng.Intn(8))
			if c != core.C(0, 0) && c != core.C(7, 7) {
				grid.SetObstacle(c)
			}
		}
		pf := New(grid)

		path := pf.FindPath(core.C(0, 0), core.C(7, 7))

		if reachable(pf, core.C(0, 0), core.C(7, 7)) {
			assertValidPath(t, grid, path, core.C(0, 0), core.C(7, 7))
		} else {
			assert.True(t, path.Empty(), "round %d: expected no path", round)
		}
	}
}

func TestPathHelpers(t *testing.T) {
	p := Path{core.C(0, 0), core.C(1, 1), core.C(2, 1)}

	s, ok := p.Start()
	assert.True(t, ok)
	assert.Equal(t, core.C(0, 0), s)
	gl, ok := p.Goal()
	assert.True(t, ok)
	assert.Equal(t, core.C(2, 1), gl)
	assert.Equal(t, "(0,0)->(1,1)->(2,1)", p.String())

	_, ok = Path{}.Goal()
	assert.False(t, ok)
}

func TestStatsAccumulate(t *testing.T) {
	grid := world.NewOpenField(3, 3)
	grid.SetObstacle(core.C(2, 2))
	pf := New(grid)

	pf.FindPath(core.C(0, 0), core.C(2, 0))
	pf.FindPath(core.C(0, 0), core.C(2, 2))

	st := pf.Stats()
	assert.Equal(t, 2, st.Searches)
	assert.Equal(t, 1, st.Failures)
	assert.Positive(t, st.Expanded)
	assert.InDelta(t, 2.0, pf.PathCost(Path{core.C(0, 0), core.C(1, 0), core.C(2, 0)}), 1e-9)
}
