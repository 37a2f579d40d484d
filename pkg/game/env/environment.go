// Package env simulates the chip-collection grid world: tile storage,
// move legality, item pickup, and the read-only queries agents plan against.
package env

import (
	"github.com/minh11221/Chip-Challenge/pkg/engine/world"
)

// Environment owns the true world state for one run. Agents never mutate it
// directly; they submit one Action per tick through Step.
type Environment struct {
	grid     *world.Grid
	robotPos world.Position
	holdings world.KeySet

	remainingChips int
	moves          int
	done           bool

	// When false, Tiles() reports nothing and agents must rely on local
	// observation alone.
	fullMapVisible bool
}

// New creates an environment from a grid and a robot start position.
// The remaining-chip count is taken from the grid contents.
func New(grid *world.Grid, start world.Position) *Environment {
	return &Environment{
		grid:           grid,
		robotPos:       start,
		holdings:       world.NewKeySet(),
		remainingChips: grid.Count(world.Chip),
		fullMapVisible: true,
	}
}

// SetFullMapVisible controls whether Tiles() exposes the whole map.
// Disabling it forces agents into purely incremental exploration.
func (e *Environment) SetFullMapVisible(visible bool) {
	e.fullMapVisible = visible
}

// Bounds returns the grid dimensions
func (e *Environment) Bounds() (rows, cols int) {
	return e.grid.Rows(), e.grid.Cols()
}

// RobotPosition returns the robot's current position
func (e *Environment) RobotPosition() world.Position {
	return e.robotPos
}

// NeighborPositions returns the in-bounds neighbors of a position keyed by direction
func (e *Environment) NeighborPositions(p world.Position) map[world.Direction]world.Position {
	return e.grid.NeighborPositions(p)
}

// NeighborTiles returns the tile statuses adjacent to the robot keyed by
// direction. Off-grid directions are absent.
func (e *Environment) NeighborTiles() map[world.Direction]world.TileStatus {
	tiles := make(map[world.Direction]world.TileStatus, 4)
	for dir, p := range e.grid.NeighborPositions(e.robotPos) {
		if s, ok := e.grid.TileAt(p); ok {
			tiles[dir] = s
		}
	}
	return tiles
}

// Tiles returns a snapshot of the full tile map, or nil when the map is not
// visible. Callers must treat nil as "no information", not an error.
func (e *Environment) Tiles() map[world.Position]world.TileStatus {
	if !e.fullMapVisible {
		return nil
	}
	return e.grid.Snapshot()
}

// PositionsByStatus groups tile positions by status, sorted row-major
func (e *Environment) PositionsByStatus() map[world.TileStatus][]world.Position {
	return e.grid.PositionsByStatus()
}

// NumRemainingChips returns the number of chips not yet collected
func (e *Environment) NumRemainingChips() int {
	return e.remainingChips
}

// RobotHoldings returns the keys currently held, in the fixed key order
func (e *Environment) RobotHoldings() []world.TileStatus {
	held := make([]world.TileStatus, 0, e.holdings.Size())
	for _, key := range world.AllKeys() {
		if e.holdings.Has(key) {
			held = append(held, key)
		}
	}
	return held
}

// GoalPosition returns the goal door's position.
// The second return is false when the map has no goal door.
func (e *Environment) GoalPosition() (world.Position, bool) {
	goals := e.grid.PositionsByStatus()[world.DoorGoal]
	if len(goals) == 0 {
		return world.Position{}, false
	}
	return goals[0], true
}

// Moves returns the number of successful moves so far
func (e *Environment) Moves() int {
	return e.moves
}

// Done returns true once the robot has entered the goal door
func (e *Environment) Done() bool {
	return e.done
}

// Step applies one action. Illegal moves leave the robot in place and return
// false; the environment never errors on an agent's choice.
func (e *Environment) Step(a Action) bool {
	dir, ok := a.Direction()
	if !ok {
		return false
	}

	dest := e.robotPos.Translate(dir)
	status, inBounds := e.grid.TileAt(dest)
	if !inBounds || !e.canEnter(status) {
		return false
	}

	e.robotPos = dest
	e.moves++
	e.collect(dest, status)
	return true
}

// canEnter enforces move legality against the true world state
func (e *Environment) canEnter(status world.TileStatus) bool {
	switch {
	case status == world.Wall || status == world.Water:
		return false
	case status == world.DoorGoal:
		return e.remainingChips == 0
	default:
		if key, isDoor := status.KeyForDoor(); isDoor {
			return e.holdings.Has(key)
		}
		return true
	}
}

// collect applies the side effects of entering a tile. Chips and keys leave
// the floor; colored doors open permanently without consuming the key.
func (e *Environment) collect(p world.Position, status world.TileStatus) {
	switch {
	case status == world.Chip:
		e.remainingChips--
		e.grid.SetTile(p, world.Blank)
	case status.IsKey():
		e.holdings.Put(status)
		e.grid.SetTile(p, world.Blank)
	case status.IsColorDoor():
		e.grid.SetTile(p, world.Blank)
	case status == world.DoorGoal:
		// The goal tile keeps its status so map queries stay stable; the
		// run is simply over.
		e.done = true
	}
}
