// Package agent implements the planning robot: incremental world knowledge,
// A* pathfinding over partially observed terrain, goal prioritization, and
// stuck recovery. One robot owns one environment run; nothing here is shared
// across goroutines.
package agent

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/minh11221/Chip-Challenge/pkg/engine/world"
)

// Knowledge accumulates everything the robot has observed: tile statuses,
// cells physically visited, per-cell visit counts, and the mirrored key
// inventory. All growth is monotonic within a run.
type Knowledge struct {
	tiles       map[world.Position]world.TileStatus
	visited     mapset.Set[world.Position]
	visitCounts map[world.Position]int
	holdings    world.KeySet
}

// NewKnowledge creates an empty knowledge store
func NewKnowledge() *Knowledge {
	return &Knowledge{
		tiles:       make(map[world.Position]world.TileStatus),
		visited:     mapset.New[world.Position](),
		visitCounts: make(map[world.Position]int),
		holdings:    world.NewKeySet(),
	}
}

// Observe folds one tick's local view into the store: the current cell is
// marked visited, each reported neighbor tile is recorded, and the key
// inventory is mirrored. Calling Observe twice with identical input changes
// nothing the second time.
func (k *Knowledge) Observe(current world.Position,
	neighbors map[world.Direction]world.Position,
	neighborTiles map[world.Direction]world.TileStatus,
	holdings []world.TileStatus) {

	k.visited.Put(current)

	for dir, p := range neighbors {
		status, ok := neighborTiles[dir]
		if !ok {
			// No tile reported for this direction; skip, don't guess.
			continue
		}
		k.tiles[p] = status
	}

	for _, key := range holdings {
		k.holdings.Put(key)
	}
}

// CountVisit increments the visit counter for a cell. Kept separate from
// Observe so repeated observations stay idempotent while each tick still
// counts exactly one visit.
func (k *Knowledge) CountVisit(p world.Position) {
	k.visitCounts[p]++
}

// TileAt returns the recorded status of a cell.
// The second return is false for never-observed cells.
func (k *Knowledge) TileAt(p world.Position) (world.TileStatus, bool) {
	s, ok := k.tiles[p]
	return s, ok
}

// Visited returns true if the robot has physically stood on the cell
func (k *Knowledge) Visited(p world.Position) bool {
	return k.visited.Has(p)
}

// VisitCount returns how many ticks the robot has spent on the cell
func (k *Knowledge) VisitCount(p world.Position) int {
	return k.visitCounts[p]
}

// Holdings returns the mirrored key inventory
func (k *Knowledge) Holdings() world.KeySet {
	return k.holdings
}

// KnownCount returns the number of cells with a recorded status
func (k *Knowledge) KnownCount() int {
	return len(k.tiles)
}

// TilesSnapshot returns a copy of the recorded tile map, safe for callers to
// overlay fuller data onto.
func (k *Knowledge) TilesSnapshot() map[world.Position]world.TileStatus {
	tiles := make(map[world.Position]world.TileStatus, len(k.tiles))
	for p, s := range k.tiles {
		tiles[p] = s
	}
	return tiles
}
