package agent

import (
	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"

	"github.com/minh11221/Chip-Challenge/pkg/engine/world"
)

// maxExpansions caps one A* run. Exceeding it means no-path, not an error;
// it only guards against runaway search on very large open maps.
const maxExpansions = 1000

// NeighborFunc enumerates the in-bounds neighbors of a position. The
// environment's NeighborPositions satisfies it directly.
type NeighborFunc func(world.Position) map[world.Direction]world.Position

// pathNode lives only for one FindPath call. The arena map owns all nodes;
// parents form a back-pointer chain used for reconstruction.
type pathNode struct {
	pos    world.Position
	parent *pathNode
	dir    world.Direction
	g      int
	f      int
	seq    int
}

// FindPath runs A* from start to goal over the given tile knowledge and
// returns the shortest move sequence, or nil when no path exists within the
// expansion cap. Unobserved tiles are assumed passable, so the search will
// happily cross unexplored territory; callers recover from wrong guesses by
// replanning. A nil return and an empty return both mean "nothing to do";
// callers distinguish start==goal by comparing positions first.
func FindPath(start, goal world.Position, neighbors NeighborFunc,
	tiles map[world.Position]world.TileStatus, passable func(world.TileStatus) bool) []world.Direction {

	open := heap.New[*pathNode](func(a, b *pathNode) bool {
		if a.f != b.f {
			return a.f < b.f
		}
		// FIFO on ties keeps expansion order deterministic.
		return a.seq < b.seq
	})
	arena := make(map[world.Position]*pathNode)
	closed := mapset.New[world.Position]()

	seq := 0
	startNode := &pathNode{pos: start, g: 0, f: start.Manhattan(goal), seq: seq}
	arena[start] = startNode
	open.Push(startNode)

	expansions := 0
	for open.Size() > 0 && expansions < maxExpansions {
		current, _ := open.Pop()

		// Reinserted duplicates surface here after a better route closed
		// the cell; skip them.
		if closed.Has(current.pos) {
			continue
		}

		if current.pos == goal {
			return reconstruct(current)
		}

		closed.Put(current.pos)
		expansions++

		nbrs := neighbors(current.pos)
		for _, dir := range world.AllDirections() {
			next, ok := nbrs[dir]
			if !ok || closed.Has(next) {
				continue
			}

			status, known := tiles[next]
			if !known {
				status = world.Blank
			}
			if !passable(status) {
				continue
			}

			tentative := current.g + 1
			node, seen := arena[next]
			if seen && tentative >= node.g {
				continue
			}

			if !seen {
				node = &pathNode{pos: next}
				arena[next] = node
			}
			node.parent = current
			node.dir = dir
			node.g = tentative
			node.f = tentative + next.Manhattan(goal)
			seq++
			node.seq = seq
			open.Push(node)
		}
	}

	return nil
}

// reconstruct walks back-pointers from the goal node and emits the moves in
// start-to-goal order.
func reconstruct(goalNode *pathNode) []world.Direction {
	length := 0
	for n := goalNode; n.parent != nil; n = n.parent {
		length++
	}

	path := make([]world.Direction, length)
	i := length - 1
	for n := goalNode; n.parent != nil; n = n.parent {
		path[i] = n.dir
		i--
	}
	return path
}
