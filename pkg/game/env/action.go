package env

import "github.com/minh11221/Chip-Challenge/pkg/engine/world"

// Action is the single-step move vocabulary the environment accepts
type Action int

// Actions
const (
	DoNothing Action = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case DoNothing:
		return "DoNothing"
	case MoveUp:
		return "MoveUp"
	case MoveDown:
		return "MoveDown"
	case MoveLeft:
		return "MoveLeft"
	case MoveRight:
		return "MoveRight"
	default:
		return "Unknown"
	}
}

// ActionForDirection maps a movement direction to its action.
// Invalid directions map to DoNothing.
func ActionForDirection(d world.Direction) Action {
	if !d.IsValid() {
		return DoNothing
	}
	switch d {
	case world.Up:
		return MoveUp
	case world.Down:
		return MoveDown
	case world.Left:
		return MoveLeft
	default:
		return MoveRight
	}
}

// Direction returns the movement direction of an action.
// The second return is false for DoNothing.
func (a Action) Direction() (world.Direction, bool) {
	switch a {
	case MoveUp:
		return world.Up, true
	case MoveDown:
		return world.Down, true
	case MoveLeft:
		return world.Left, true
	case MoveRight:
		return world.Right, true
	default:
		return world.Up, false
	}
}
