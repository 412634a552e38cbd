package pathfind

import (
	"time"

	g "github.com/zyedidia/generic"
	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/little-wizard/internal/core"
	"github.com/vovakirdan/little-wizard/internal/world"
)

// Neighbor offsets: straight moves first so ties resolve toward them.
var (
	straightOffsets = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonalOffsets = [4][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
)

// SearchStats describes one FindPath call.
type SearchStats struct {
	Expanded int
	Found    bool
	Length   int
	Elapsed  time.Duration
}

// Stats accumulates counters across searches.
type Stats struct {
	Searches int
	Expanded int
	Failures int
}

// Pathfinder runs A* searches against a grid.
type Pathfinder struct {
	grid  world.GridIndex
	stats Stats

	// OnSearch, when set, is called after every search.
	OnSearch func(SearchStats)
}

// New creates a pathfinder over the given grid.
func New(grid world.GridIndex) *Pathfinder {
	return &Pathfinder{grid: grid}
}

// openEntry is one open-set record. seq orders entries with equal f so
// the earliest discovered cell wins.
type openEntry struct {
	cell core.Cell
	f    float64
	seq  int
}

func lessEntry(a, b openEntry) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	return a.seq < b.seq
}

// FindPath returns the cheapest path found from start to goal, or an
// empty path when the goal cannot be reached.
func (p *Pathfinder) FindPath(start, goal core.Cell) Path {
	began := time.Now()
	path, expanded := p.search(start, goal)
	p.stats.Searches++
	p.stats.Expanded += expanded
	if len(path) == 0 {
		p.stats.Failures++
	}
	if p.OnSearch != nil {
		p.OnSearch(SearchStats{
			Expanded: expanded,
			Found:    len(path) > 0,
			Length:   len(path),
			Elapsed:  time.Since(began),
		})
	}
	return path
}

func (p *Pathfinder) search(start, goal core.Cell) (Path, int) {
	if start == goal {
		return Path{start}, 0
	}

	var less g.LessFn[openEntry] = lessEntry
	open := heap.New(less)
	closed := mapset.New[core.Cell]()
	gScore := map[core.Cell]float64{start: 0}
	fScore := map[core.Cell]float64{start: heuristic(start, goal)}
	cameFrom := make(map[core.Cell]core.Cell)

	seq := 0
	open.Push(openEntry{cell: start, f: fScore[start], seq: seq})
	expanded := 0

	for open.Size() > 0 {
		entry, _ := open.Pop()
		current := entry.cell

		// Stale entry left behind by a later improvement.
		if closed.Has(current) || entry.f != fScore[current] {
			continue
		}
		if current == goal {
			return reconstruct(cameFrom, current), expanded
		}

		closed.Put(current)
		expanded++

		for _, next := range p.Neighbors(current) {
			if closed.Has(next) {
				continue
			}
			tentative := gScore[current] + StepCost(current, next)
			if old, seen := gScore[next]; seen && tentative >= old {
				continue
			}
			cameFrom[next] = current
			gScore[next] = tentative
			fScore[next] = tentative + heuristic(next, goal)
			seq++
			open.Push(openEntry{cell: next, f: fScore[next], seq: seq})
		}
	}

	return Path{}, expanded
}

// Neighbors returns the traversable neighbors of c: straight moves first,
// then diagonals whose two corner cells are both passable.
func (p *Pathfinder) Neighbors(c core.Cell) []core.Cell {
	out := make([]core.Cell, 0, 8)
	for _, d := range straightOffsets {
		n := c.Add(d[0], d[1])
		if world.Passable(p.grid, n) {
			out = append(out, n)
		}
	}
	for _, d := range diagonalOffsets {
		n := c.Add(d[0], d[1])
		if world.Passable(p.grid, n) &&
			world.Passable(p.grid, c.Add(d[0], 0)) &&
			world.Passable(p.grid, c.Add(0, d[1])) {
			out = append(out, n)
		}
	}
	return out
}

// Distance returns the path cost between two cells and whether any path
// exists.
func (p *Pathfinder) Distance(start, goal core.Cell) (float64, bool) {
	path := p.FindPath(start, goal)
	if path.Empty() {
		return 0, false
	}
	return path.Cost(), true
}

// PathCost returns the total step cost of a path.
func (p *Pathfinder) PathCost(path Path) float64 {
	return path.Cost()
}

// Stats returns counters accumulated since creation.
func (p *Pathfinder) Stats() Stats {
	return p.stats
}

// heuristic is the Manhattan distance. It overestimates diagonal-heavy
// routes, trading strict optimality for fewer expansions.
func heuristic(a, b core.Cell) float64 {
	return float64(a.Manhattan(b))
}

func reconstruct(cameFrom map[core.Cell]core.Cell, current core.Cell) Path {
	path := Path{current}
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
