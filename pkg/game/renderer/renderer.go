// Package renderer defines the run-watching surfaces: what a frame of the
// simulation looks like and the icons shared by every frontend.
package renderer

import (
	"github.com/minh11221/Chip-Challenge/pkg/engine/world"
	"github.com/minh11221/Chip-Challenge/pkg/game/agent"
	"github.com/minh11221/Chip-Challenge/pkg/game/env"
)

// Frame is one tick's worth of drawable state
type Frame struct {
	Env        *env.Environment
	Robot      *agent.Robot
	Tick       int
	LastAction env.Action
}

// Renderer draws simulation frames. Implementations must tolerate being
// called once per tick at arbitrary speed.
type Renderer interface {
	Init()
	Draw(f Frame)
}

// RobotIcon marks the agent on every frontend
const RobotIcon = "@"

// tile icons, shared so the TUI and tests agree on the map's look
var tileIcons = map[world.TileStatus]string{
	world.Blank:      "·",
	world.Wall:       "▒",
	world.Water:      "≈",
	world.Chip:       "¤",
	world.KeyBlue:    "⚷",
	world.KeyGreen:   "⚷",
	world.KeyRed:     "⚷",
	world.KeyYellow:  "⚷",
	world.DoorBlue:   "▣",
	world.DoorGreen:  "▣",
	world.DoorRed:    "▣",
	world.DoorYellow: "▣",
	world.DoorGoal:   "▲",
}

// IconForStatus returns the display icon for a tile status
func IconForStatus(s world.TileStatus) string {
	if icon, ok := tileIcons[s]; ok {
		return icon
	}
	return "?"
}
