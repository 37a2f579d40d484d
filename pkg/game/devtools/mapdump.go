// Package devtools provides developer tools for inspecting levels.
package devtools

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minh11221/Chip-Challenge/pkg/engine/world"
	"github.com/minh11221/Chip-Challenge/pkg/game/levels"
)

const mapDumpFilename = "map.txt"

// DumpLevel renders a full debug dump of a level: metadata, legend, map
// text, and per-category position lists. Format is human- and LLM-readable
// (sections, key: value, consistent structure). The map text round-trips
// through the level parser.
func DumpLevel(lvl *levels.Level) string {
	var sb strings.Builder

	rows := lvl.Grid.Rows()
	cols := lvl.Grid.Cols()
	byStatus := lvl.Grid.PositionsByStatus()

	sb.WriteString("=== LEVEL DUMP (layout and subgoals) ===\n\n")

	sb.WriteString("--- Metadata ---\n")
	fmt.Fprintf(&sb, "name: %s\n", lvl.Name)
	fmt.Fprintf(&sb, "grid_rows: %d\n", rows)
	fmt.Fprintf(&sb, "grid_cols: %d\n", cols)
	sb.WriteString("coordinate_system: row,col (0-based, row=vertical, col=horizontal)\n")
	fmt.Fprintf(&sb, "start_cell: %d,%d\n", lvl.Start.Row, lvl.Start.Col)
	fmt.Fprintf(&sb, "chips: %d\n", lvl.Grid.Count(world.Chip))
	fmt.Fprintf(&sb, "solvable: %v\n", levels.Solvable(lvl))
	sb.WriteString("\n")

	sb.WriteString("--- Legend (cell symbols) ---\n")
	sb.WriteString(". = blank  # = wall  ~ = water  * = chip  bgry = keys  BGRY = doors  X = goal door  @ = start\n\n")

	sb.WriteString("--- Map ---\n")
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			p := world.Pos(row, col)
			if p == lvl.Start {
				sb.WriteByte('@')
				continue
			}
			s, _ := lvl.Grid.TileAt(p)
			sb.WriteRune(s.Rune())
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString("--- Subgoals (all with row,col) ---\n")
	writePositions(&sb, "Chips", byStatus[world.Chip])
	for _, key := range world.AllKeys() {
		writePositions(&sb, key.String(), byStatus[key])
	}
	for _, door := range world.AllColorDoors() {
		writePositions(&sb, door.String(), byStatus[door])
	}
	writePositions(&sb, "Goal", byStatus[world.DoorGoal])

	sb.WriteString("\n=== END LEVEL DUMP ===\n")
	return sb.String()
}

// writePositions writes one labeled position list section
func writePositions(sb *strings.Builder, label string, positions []world.Position) {
	fmt.Fprintf(sb, "%s:\n", label)
	if len(positions) == 0 {
		sb.WriteString("  (none)\n")
		return
	}
	for _, p := range positions {
		fmt.Fprintf(sb, "  row: %d col: %d\n", p.Row, p.Col)
	}
}

// DumpLevelToFile writes the dump to map.txt in the working directory and
// returns the absolute path.
func DumpLevelToFile(lvl *levels.Level) (string, error) {
	absPath, err := filepath.Abs(mapDumpFilename)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(absPath, []byte(DumpLevel(lvl)), 0o644); err != nil {
		return "", err
	}
	return absPath, nil
}
