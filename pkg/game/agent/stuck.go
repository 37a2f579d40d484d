package agent

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/minh11221/Chip-Challenge/pkg/engine/world"
)

const (
	// windowCap bounds the recent-position history
	windowCap = 10
	// stuckSpan is how many trailing positions the oscillation check inspects
	stuckSpan = 6
	// distinctLimit: at most this many distinct cells over stuckSpan means stuck
	distinctLimit = 2
	// revisitLimit: the current cell appearing this often in the window means looping
	revisitLimit = 3
)

// RecentWindow is a bounded history of the robot's last positions, used only
// for loop and stuck diagnosis. Oldest entries are evicted on overflow.
type RecentWindow struct {
	positions []world.Position
}

// NewRecentWindow creates an empty window
func NewRecentWindow() *RecentWindow {
	return &RecentWindow{positions: make([]world.Position, 0, windowCap)}
}

// Record appends a position, evicting the oldest entry when full
func (w *RecentWindow) Record(p world.Position) {
	w.positions = append(w.positions, p)
	if len(w.positions) > windowCap {
		w.positions = w.positions[1:]
	}
}

// Len returns the current window length
func (w *RecentWindow) Len() int {
	return len(w.positions)
}

// Oscillating reports tight oscillation: the last stuckSpan positions cover
// at most distinctLimit distinct cells. Never fires before the window has
// stuckSpan entries.
func (w *RecentWindow) Oscillating() bool {
	if len(w.positions) < stuckSpan {
		return false
	}

	distinct := mapset.New[world.Position]()
	for _, p := range w.positions[len(w.positions)-stuckSpan:] {
		distinct.Put(p)
	}
	return distinct.Size() <= distinctLimit
}

// Revisiting reports direct re-visitation: the given cell appears at least
// revisitLimit times anywhere in the window.
func (w *RecentWindow) Revisiting(p world.Position) bool {
	count := 0
	for _, q := range w.positions {
		if q == p {
			count++
		}
	}
	return count >= revisitLimit
}

// SeenWithin returns true if the cell appears among the last n entries
func (w *RecentWindow) SeenWithin(p world.Position, n int) bool {
	start := len(w.positions) - n
	if start < 0 {
		start = 0
	}
	for _, q := range w.positions[start:] {
		if q == p {
			return true
		}
	}
	return false
}
