package agent

import (
	"github.com/minh11221/Chip-Challenge/pkg/engine/world"
)

// Passable decides whether a tile with a known status may be entered, given
// the keys held and the number of chips still uncollected. Rules in priority
// order: walls and water never; colored doors only with the matching key; the
// goal door only once every chip is collected; everything else always.
//
// Unknown tiles are deliberately not handled here. Callers that reason about
// unexplored cells apply their own optimistic default.
func Passable(status world.TileStatus, holdings world.KeySet, remainingChips int) bool {
	if status == world.Wall || status == world.Water {
		return false
	}

	if key, isDoor := status.KeyForDoor(); isDoor {
		return holdings.Has(key)
	}

	if status == world.DoorGoal {
		return remainingChips == 0
	}

	return true
}
