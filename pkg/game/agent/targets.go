package agent

import (
	"sort"

	"github.com/minh11221/Chip-Challenge/pkg/engine/world"
)

// nearestReachable plans to every candidate and returns the one with the
// shortest found path, along with that path. Candidates with no path are
// discarded; ties go to the earliest candidate in slice order. The second
// return is false when no candidate is reachable.
//
// Cost is k pathfinding runs for k candidates, which is fine: chips and keys
// per map are few compared to map size.
func nearestReachable(start world.Position, candidates []world.Position,
	neighbors NeighborFunc, tiles map[world.Position]world.TileStatus,
	passable func(world.TileStatus) bool) (world.Position, []world.Direction, bool) {

	var best world.Position
	var bestPath []world.Direction

	for _, candidate := range candidates {
		path := FindPath(start, candidate, neighbors, tiles, passable)
		if len(path) == 0 {
			continue
		}
		if bestPath == nil || len(path) < len(bestPath) {
			best = candidate
			bestPath = path
		}
	}

	if bestPath == nil {
		return world.Position{}, nil, false
	}
	return best, bestPath, true
}

// sortedPositions returns a tile map's keys in row-major order, so scans
// over knowledge are deterministic.
func sortedPositions(tiles map[world.Position]world.TileStatus) []world.Position {
	positions := make([]world.Position, 0, len(tiles))
	for p := range tiles {
		positions = append(positions, p)
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].Row != positions[j].Row {
			return positions[i].Row < positions[j].Row
		}
		return positions[i].Col < positions[j].Col
	})
	return positions
}
