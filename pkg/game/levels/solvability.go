package levels

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/minh11221/Chip-Challenge/pkg/engine/world"
)

// reachableFrom returns every position reachable from start by BFS given the
// keys held. Walls and water block; colored doors block without the matching
// key; the goal door blocks unless allowGoal is set.
func reachableFrom(grid *world.Grid, start world.Position, held world.KeySet, allowGoal bool) mapset.Set[world.Position] {
	reachable := mapset.New[world.Position]()
	queue := []world.Position{start}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		if reachable.Has(p) {
			continue
		}
		status, ok := grid.TileAt(p)
		if !ok {
			continue
		}

		switch {
		case status == world.Wall || status == world.Water:
			continue
		case status == world.DoorGoal:
			if !allowGoal {
				continue
			}
		default:
			if key, isDoor := status.KeyForDoor(); isDoor && !held.Has(key) {
				continue
			}
		}

		reachable.Put(p)
		for _, n := range grid.NeighborPositions(p) {
			if !reachable.Has(n) {
				queue = append(queue, n)
			}
		}
	}

	return reachable
}

// Solvable reports whether a level can be completed at all: grow the
// reachable region round by round, collecting every reachable key, until
// either every chip is reachable and the goal door can be entered, or a
// round makes no progress.
func Solvable(lvl *Level) bool {
	byStatus := lvl.Grid.PositionsByStatus()
	chips := byStatus[world.Chip]
	goals := byStatus[world.DoorGoal]
	if len(goals) == 0 {
		return false
	}

	held := world.NewKeySet()
	for {
		reach := reachableFrom(lvl.Grid, lvl.Start, held, false)

		progress := false
		for _, key := range world.AllKeys() {
			if held.Has(key) {
				continue
			}
			for _, p := range byStatus[key] {
				if reach.Has(p) {
					held.Put(key)
					progress = true
					break
				}
			}
		}

		allChips := true
		for _, chip := range chips {
			if !reach.Has(chip) {
				allChips = false
				break
			}
		}
		if allChips {
			final := reachableFrom(lvl.Grid, lvl.Start, held, true)
			if final.Has(goals[0]) {
				return true
			}
		}

		if !progress {
			return false
		}
	}
}
