package movement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/little-wizard/internal/core"
	"github.com/vovakirdan/little-wizard/internal/pathfind"
	"github.com/vovakirdan/little-wizard/internal/world"
)

type fakeMarker struct {
	placed bool
	at     core.Vec2
	places int
}

func (m *fakeMarker) Place(pos core.Vec2) {
	m.placed = true
	m.at = pos
	m.places++
}

func (m *fakeMarker) Remove() {
	m.placed = false
}

const frame = 16 * time.Millisecond

func newExecutor(t *testing.T, grid *world.TileMap, start core.Cell) (*Executor, *fakeMarker) {
	t.Helper()
	marker := &fakeMarker{}
	e := New(pathfind.New(grid), grid, world.UnitLayout, marker,
		world.UnitLayout.CellToWorld(start), DefaultConfig())
	return e, marker
}

func runUntilIdle(t *testing.T, e *Executor, limit int) int {
	t.Helper()
	for i := 0; i < limit; i++ {
		if !e.IsMoving() {
			return i
		}
		e.Tick(frame)
	}
	require.FailNow(t, "executor still moving", "after %d ticks", limit)
	return limit
}

func TestMoveToArrives(t *testing.T) {
	grid := world.NewOpenField(6, 6)
	e, marker := newExecutor(t, grid, core.C(0, 0))

	require.NoError(t, e.MoveTo(core.C(3, 2)))
	assert.True(t, e.IsMoving())
	assert.True(t, marker.placed)
	assert.Equal(t, world.UnitLayout.CellToWorld(core.C(3, 2)), marker.at)

	runUntilIdle(t, e, 500)

	assert.Equal(t, core.C(3, 2), e.Cell())
	assert.Equal(t, world.UnitLayout.CellToWorld(core.C(3, 2)), e.Position())
	assert.False(t, marker.placed)
	assert.Empty(t, e.Remaining())
}

func TestMoveToBlockedTargetLeavesStateUntouched(t *testing.T) {
	grid := world.NewOpenField(4, 4)
	grid.SetObstacle(core.C(2, 2))
	e, marker := newExecutor(t, grid, core.C(0, 0))

	err := e.MoveTo(core.C(2, 2))

	assert.ErrorIs(t, err, ErrTargetBlocked)
	assert.False(t, e.IsMoving())
	assert.Zero(t, marker.places)
}

func TestMoveToUnreachable(t *testing.T) {
	grid := world.NewOpenField(5, 3)
	for y := 0; y < 3; y++ {
		grid.SetObstacle(core.C(2, y))
	}
	e, marker := newExecutor(t, grid, core.C(0, 1))

	err := e.MoveTo(core.C(4, 1))

	assert.ErrorIs(t, err, ErrNoPath)
	assert.False(t, e.IsMoving())
	assert.False(t, marker.placed)
}

func TestBeginPathEmptyIsIdle(t *testing.T) {
	grid := world.NewOpenField(3, 3)
	e, marker := newExecutor(t, grid, core.C(0, 0))

	e.BeginPath(pathfind.Path{})

	assert.False(t, e.IsMoving())
	assert.False(t, marker.placed)
}

func TestOneWaypointPerTick(t *testing.T) {
	grid := world.NewOpenField(4, 1)
	e, _ := newExecutor(t, grid, core.C(0, 0))

	e.BeginPath(pathfind.Path{core.C(0, 0), core.C(1, 0)})
	require.Len(t, e.Remaining(), 2)

	// Already standing on the first waypoint: popped on the first tick only.
	e.Tick(time.Second)
	assert.Equal(t, []core.Cell{core.C(1, 0)}, e.Remaining())
	assert.Equal(t, world.UnitLayout.CellToWorld(core.C(0, 0)), e.Position())

	e.Tick(time.Second)
	assert.False(t, e.IsMoving())
	assert.Equal(t, core.C(1, 0), e.Cell())
}

func TestInterruptMidCellSkipsBacktrack(t *testing.T) {
	grid := world.NewOpenField(8, 3)
	e, marker := newExecutor(t, grid, core.C(0, 1))

	require.NoError(t, e.MoveTo(core.C(6, 1)))
	// Consume the start waypoint, then move part of the way toward (1,1).
	e.Tick(frame)
	e.Tick(50 * time.Millisecond)
	require.False(t, world.UnitLayout.IsAtCellCenter(e.Position(), DefaultConfig().Epsilon))
	current := e.Cell()

	require.NoError(t, e.MoveTo(core.C(current.X, 0)))

	remaining := e.Remaining()
	require.NotEmpty(t, remaining)
	assert.Equal(t, core.C(current.X, 0), remaining[len(remaining)-1])
	assert.Len(t, remaining, 1, "the off-center start waypoint is dropped")
	assert.True(t, marker.placed)

	runUntilIdle(t, e, 500)
	assert.Equal(t, core.C(current.X, 0), e.Cell())
}

func TestInterruptAtCenterKeepsStartWaypoint(t *testing.T) {
	grid := world.NewOpenField(5, 5)
	e, _ := newExecutor(t, grid, core.C(2, 2))
	require.NoError(t, e.MoveTo(core.C(4, 2)))

	require.NoError(t, e.InterruptTo(core.C(2, 4)))

	assert.Equal(t, []core.Cell{core.C(2, 2), core.C(2, 3), core.C(2, 4)}, e.Remaining())
}

func TestInterruptFailedReplanStops(t *testing.T) {
	grid := world.NewOpenField(5, 3)
	for y := 0; y < 3; y++ {
		grid.SetObstacle(core.C(3, y))
	}
	e, marker := newExecutor(t, grid, core.C(0, 0))
	require.NoError(t, e.MoveTo(core.C(2, 2)))

	err := e.InterruptTo(core.C(4, 1))

	assert.ErrorIs(t, err, ErrNoPath)
	assert.False(t, e.IsMoving())
	assert.False(t, marker.placed)
}

func TestStopAndTeleport(t *testing.T) {
	grid := world.NewOpenField(5, 5)
	e, marker := newExecutor(t, grid, core.C(0, 0))
	require.NoError(t, e.MoveTo(core.C(4, 4)))

	e.Stop()
	assert.False(t, e.IsMoving())
	assert.False(t, marker.placed)

	e.Teleport(core.C(3, 1))
	assert.Equal(t, core.C(3, 1), e.Cell())
	_, ok := e.Goal()
	assert.False(t, ok)
}
