package renderer

import (
	"testing"

	"github.com/minh11221/Chip-Challenge/pkg/engine/world"
)

func TestIconForStatus_AllStatusesCovered(t *testing.T) {
	statuses := []world.TileStatus{
		world.Blank, world.Wall, world.Water, world.Chip,
		world.KeyBlue, world.KeyGreen, world.KeyRed, world.KeyYellow,
		world.DoorBlue, world.DoorGreen, world.DoorRed, world.DoorYellow,
		world.DoorGoal,
	}
	for _, s := range statuses {
		if icon := IconForStatus(s); icon == "?" {
			t.Errorf("IconForStatus(%v) = %q, want a dedicated icon", s, icon)
		}
	}
}

func TestIconForStatus_Unknown(t *testing.T) {
	if icon := IconForStatus(world.TileStatus(99)); icon != "?" {
		t.Errorf("IconForStatus(unknown) = %q, want %q", icon, "?")
	}
}
