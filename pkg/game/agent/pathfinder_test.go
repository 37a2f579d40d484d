package agent

import (
	"reflect"
	"testing"

	"github.com/minh11221/Chip-Challenge/pkg/engine/world"
)

// parseGrid builds a grid from map lines using the level rune set.
// Unlike the level parser it has no start marker; tests pick positions directly.
func parseGrid(t *testing.T, lines ...string) *world.Grid {
	t.Helper()
	grid := world.NewGrid(len(lines), len(lines[0]))
	for row, line := range lines {
		for col, r := range line {
			s, ok := world.StatusForRune(r)
			if !ok {
				t.Fatalf("unknown tile %q at (%d,%d)", r, row, col)
			}
			grid.SetTile(world.Pos(row, col), s)
		}
	}
	return grid
}

// noKeys is a passability oracle with an empty inventory and chips remaining
func noKeys(s world.TileStatus) bool {
	return Passable(s, world.NewKeySet(), 1)
}

// bfsDistance is the reference shortest-path length, or -1 when unreachable
func bfsDistance(grid *world.Grid, start, goal world.Position, passable func(world.TileStatus) bool) int {
	dist := map[world.Position]int{start: 0}
	queue := []world.Position{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if p == goal {
			return dist[p]
		}
		for _, n := range grid.NeighborPositions(p) {
			if _, seen := dist[n]; seen {
				continue
			}
			s, _ := grid.TileAt(n)
			if !passable(s) {
				continue
			}
			dist[n] = dist[p] + 1
			queue = append(queue, n)
		}
	}
	return -1
}

// walkPath follows a move sequence from start, failing on any impassable step
func walkPath(t *testing.T, grid *world.Grid, start world.Position,
	path []world.Direction, passable func(world.TileStatus) bool) world.Position {
	t.Helper()
	pos := start
	for i, dir := range path {
		pos = pos.Translate(dir)
		s, ok := grid.TileAt(pos)
		if !ok {
			t.Fatalf("step %d leaves the grid at %v", i, pos)
		}
		if !passable(s) {
			t.Fatalf("step %d enters impassable %v at %v", i, s, pos)
		}
	}
	return pos
}

func TestFindPath_MatchesBFSOnAllPairs(t *testing.T) {
	maps := [][]string{
		{
			"....",
			".##.",
			".#..",
			"....",
		},
		{
			".#.",
			".#.",
			"...",
		},
		{
			"..~..",
			".~~~.",
			".....",
		},
	}

	for mi, lines := range maps {
		grid := parseGrid(t, lines...)

		var cells []world.Position
		grid.ForEachTile(func(p world.Position, s world.TileStatus) {
			if noKeys(s) {
				cells = append(cells, p)
			}
		})

		for _, start := range cells {
			for _, goal := range cells {
				want := bfsDistance(grid, start, goal, noKeys)
				path := FindPath(start, goal, grid.NeighborPositions, grid.Snapshot(), noKeys)

				if want < 0 {
					if path != nil {
						t.Errorf("map %d: FindPath(%v, %v) found a path to an unreachable goal", mi, start, goal)
					}
					continue
				}
				if path == nil {
					t.Errorf("map %d: FindPath(%v, %v) = nil, want length %d", mi, start, goal, want)
					continue
				}
				if len(path) != want {
					t.Errorf("map %d: FindPath(%v, %v) length = %d, want %d", mi, start, goal, len(path), want)
				}
				if end := walkPath(t, grid, start, path, noKeys); end != goal {
					t.Errorf("map %d: path from %v ends at %v, want %v", mi, start, end, goal)
				}
			}
		}
	}
}

func TestFindPath_StartEqualsGoal(t *testing.T) {
	grid := parseGrid(t, "...")
	path := FindPath(world.Pos(0, 1), world.Pos(0, 1), grid.NeighborPositions, grid.Snapshot(), noKeys)
	if path == nil {
		t.Fatal("FindPath(p, p) = nil, want empty path")
	}
	if len(path) != 0 {
		t.Errorf("FindPath(p, p) length = %d, want 0", len(path))
	}
}

func TestFindPath_EnclosedGoal(t *testing.T) {
	grid := parseGrid(t,
		".....",
		".###.",
		".#.#.",
		".###.",
	)
	path := FindPath(world.Pos(0, 0), world.Pos(2, 2), grid.NeighborPositions, grid.Snapshot(), noKeys)
	if path != nil {
		t.Errorf("FindPath to enclosed goal = %v, want nil", path)
	}
}

func TestFindPath_DoorGating(t *testing.T) {
	grid := parseGrid(t, "..B..")
	start, goal := world.Pos(0, 0), world.Pos(0, 4)

	without := FindPath(start, goal, grid.NeighborPositions, grid.Snapshot(), noKeys)
	if without != nil {
		t.Errorf("path through blue door without key = %v, want nil", without)
	}

	held := world.NewKeySet()
	held.Put(world.KeyBlue)
	withKey := func(s world.TileStatus) bool { return Passable(s, held, 1) }
	path := FindPath(start, goal, grid.NeighborPositions, grid.Snapshot(), withKey)
	if len(path) != 4 {
		t.Errorf("path through blue door with key length = %d, want 4", len(path))
	}
}

// Cells absent from the tile knowledge are assumed passable.
func TestFindPath_OptimisticAboutUnknown(t *testing.T) {
	grid := parseGrid(t, ".....")
	tiles := map[world.Position]world.TileStatus{
		world.Pos(0, 0): world.Blank,
	}

	path := FindPath(world.Pos(0, 0), world.Pos(0, 4), grid.NeighborPositions, tiles, noKeys)
	if len(path) != 4 {
		t.Errorf("path across unknown tiles length = %d, want 4", len(path))
	}
}

// A known wall beats optimism even when the rest of the map is unknown.
func TestFindPath_KnownWallInUnknownTerrain(t *testing.T) {
	grid := parseGrid(t,
		"...",
		"...",
	)
	tiles := map[world.Position]world.TileStatus{
		world.Pos(0, 1): world.Wall,
	}

	path := FindPath(world.Pos(0, 0), world.Pos(0, 2), grid.NeighborPositions, tiles, noKeys)
	if len(path) != 4 {
		t.Errorf("detour around known wall length = %d, want 4", len(path))
	}
}

func TestFindPath_ExpansionCap(t *testing.T) {
	// An unbounded open plane: the goal is reachable in principle but far
	// enough that the search gives up at the expansion cap.
	unbounded := func(p world.Position) map[world.Direction]world.Position {
		nbrs := make(map[world.Direction]world.Position, 4)
		for _, dir := range world.AllDirections() {
			nbrs[dir] = p.Translate(dir)
		}
		return nbrs
	}

	path := FindPath(world.Pos(0, 0), world.Pos(60, 60), unbounded,
		map[world.Position]world.TileStatus{}, noKeys)
	if path != nil {
		t.Errorf("FindPath past the expansion cap = length %d, want nil", len(path))
	}
}

func TestFindPath_Deterministic(t *testing.T) {
	// Many equal-length routes exist on an open grid; the choice must be stable.
	grid := parseGrid(t,
		".....",
		".....",
		".....",
	)
	start, goal := world.Pos(0, 0), world.Pos(2, 4)

	first := FindPath(start, goal, grid.NeighborPositions, grid.Snapshot(), noKeys)
	for i := 0; i < 5; i++ {
		again := FindPath(start, goal, grid.NeighborPositions, grid.Snapshot(), noKeys)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d returned %v, first run returned %v", i, again, first)
		}
	}
}

func TestNearestReachable(t *testing.T) {
	grid := parseGrid(t,
		".....",
		".###.",
		".....",
	)
	start := world.Pos(0, 0)
	far := world.Pos(2, 4)
	near := world.Pos(0, 3)
	enclosed := world.Pos(1, 2)

	target, path, ok := nearestReachable(start,
		[]world.Position{far, enclosed, near},
		grid.NeighborPositions, grid.Snapshot(), noKeys)
	if !ok {
		t.Fatal("nearestReachable found nothing")
	}
	if target != near {
		t.Errorf("target = %v, want %v", target, near)
	}
	if len(path) != 3 {
		t.Errorf("path length = %d, want 3", len(path))
	}

	_, _, ok = nearestReachable(start, []world.Position{enclosed},
		grid.NeighborPositions, grid.Snapshot(), noKeys)
	if ok {
		t.Error("nearestReachable(unreachable only) ok = true, want false")
	}
}

// A candidate the robot is already standing on yields a zero-length path and
// must not be treated as reachable progress.
func TestNearestReachable_SkipsCurrentCell(t *testing.T) {
	grid := parseGrid(t, "...")
	start := world.Pos(0, 0)

	target, path, ok := nearestReachable(start,
		[]world.Position{start, world.Pos(0, 2)},
		grid.NeighborPositions, grid.Snapshot(), noKeys)
	if !ok {
		t.Fatal("nearestReachable found nothing")
	}
	if target != world.Pos(0, 2) {
		t.Errorf("target = %v, want (0,2)", target)
	}
	if len(path) != 2 {
		t.Errorf("path length = %d, want 2", len(path))
	}
}
