// Package tui renders simulation frames to the terminal.
package tui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"github.com/minh11221/Chip-Challenge/pkg/engine/terminal"
	"github.com/minh11221/Chip-Challenge/pkg/engine/world"
	"github.com/minh11221/Chip-Challenge/pkg/game/renderer"
)

// TUIRenderer draws the grid, the agent, and a status pane each tick.
// With fog enabled it draws only what the agent has observed, which makes
// the knowledge build-up visible while watching a run.
type TUIRenderer struct {
	fog bool

	colorWall   color.Style
	colorWater  color.Style
	colorChip   color.Style
	colorRobot  color.Style
	colorGoal   color.Style
	colorSubtle color.Style
	colorLabel  color.Style

	keyColors  map[world.TileStatus]color.Style
	doorColors map[world.TileStatus]color.Style
}

// New creates a TUI renderer. fog hides tiles the agent has not observed.
func New(fog bool) *TUIRenderer {
	return &TUIRenderer{fog: fog}
}

// Init initializes the color styles
func (t *TUIRenderer) Init() {
	t.colorWall = color.Style{color.FgGray}
	t.colorWater = color.Style{color.FgCyan}
	t.colorChip = color.Style{color.FgWhite, color.OpBold}
	t.colorRobot = color.Style{color.FgGreen, color.OpBold}
	t.colorGoal = color.Style{color.FgMagenta, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray}
	t.colorLabel = color.Style{color.FgBlue}

	t.keyColors = map[world.TileStatus]color.Style{
		world.KeyBlue:   {color.FgBlue, color.OpBold},
		world.KeyGreen:  {color.FgGreen, color.OpBold},
		world.KeyRed:    {color.FgRed, color.OpBold},
		world.KeyYellow: {color.FgYellow, color.OpBold},
	}
	t.doorColors = map[world.TileStatus]color.Style{
		world.DoorBlue:   {color.FgBlue},
		world.DoorGreen:  {color.FgGreen},
		world.DoorRed:    {color.FgRed},
		world.DoorYellow: {color.FgYellow},
	}
}

// Draw renders one frame
func (t *TUIRenderer) Draw(f renderer.Frame) {
	t.clear()

	robotPos := f.Env.RobotPosition()
	tiles := f.Env.Tiles()
	if tiles == nil {
		// Map withheld by the environment: draw from the agent's knowledge.
		tiles = f.Robot.Knowledge().TilesSnapshot()
	}

	var sb strings.Builder
	rows, cols := gridBounds(tiles)
	termWidth, termHeight := terminal.GetSize()
	rows, cols = clampView(rows, cols, termWidth, termHeight)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			p := world.Pos(row, col)
			if p == robotPos {
				sb.WriteString(t.colorRobot.Sprint(renderer.RobotIcon))
				continue
			}
			if t.fog {
				if _, known := f.Robot.Knowledge().TileAt(p); !known {
					sb.WriteString(" ")
					continue
				}
			}
			sb.WriteString(t.styledTile(tiles[p]))
		}
		sb.WriteString("\n")
	}

	fmt.Print(sb.String())
	t.printStatus(f)
}

// styledTile returns the colored icon for a tile
func (t *TUIRenderer) styledTile(s world.TileStatus) string {
	icon := renderer.IconForStatus(s)
	switch {
	case s == world.Wall:
		return t.colorWall.Sprint(icon)
	case s == world.Water:
		return t.colorWater.Sprint(icon)
	case s == world.Chip:
		return t.colorChip.Sprint(icon)
	case s == world.DoorGoal:
		return t.colorGoal.Sprint(icon)
	case s.IsKey():
		return t.keyColors[s].Sprint(icon)
	case s.IsColorDoor():
		return t.doorColors[s].Sprint(icon)
	default:
		return t.colorSubtle.Sprint(icon)
	}
}

// printStatus prints the tick, chip, inventory, and knowledge summary lines
func (t *TUIRenderer) printStatus(f renderer.Frame) {
	fmt.Println()
	t.colorLabel.Printf("%s: %d  ", gotext.Get("Tick"), f.Tick)
	t.colorLabel.Printf("%s: %s  ", gotext.Get("Action"), f.LastAction)
	t.colorLabel.Printf("%s: %d\n", gotext.Get("Chips left"), f.Env.NumRemainingChips())

	held := f.Env.RobotHoldings()
	if len(held) == 0 {
		fmt.Printf("%s: %s\n", gotext.Get("Keys"), gotext.Get("none"))
	} else {
		names := make([]string, 0, len(held))
		for _, key := range held {
			names = append(names, t.keyColors[key].Sprint(key.String()))
		}
		fmt.Printf("%s: %s\n", gotext.Get("Keys"), strings.Join(names, " "))
	}

	fmt.Printf("%s: %d %s, %d %s\n",
		gotext.Get("Knowledge"),
		f.Robot.Knowledge().KnownCount(), gotext.Get("tiles"),
		f.Env.Moves(), gotext.Get("moves"))
}

// clear clears the terminal screen when attached to one
func (t *TUIRenderer) clear() {
	if !terminal.IsInteractive() {
		fmt.Println()
		return
	}
	c := exec.Command("clear")
	c.Stdout = os.Stdout
	c.Run()
}

// statusLines is the number of lines printStatus appends below the map
const statusLines = 4

// clampView fits the drawn map to the terminal, keeping room for the status
// pane. Oversized maps are cropped at the bottom and right edges.
func clampView(rows, cols, termWidth, termHeight int) (viewRows, viewCols int) {
	viewRows, viewCols = rows, cols
	if maxRows := termHeight - statusLines; maxRows > 0 && viewRows > maxRows {
		viewRows = maxRows
	}
	if termWidth > 0 && viewCols > termWidth {
		viewCols = termWidth
	}
	return viewRows, viewCols
}

// gridBounds recovers the rectangle covered by a tile snapshot
func gridBounds(tiles map[world.Position]world.TileStatus) (rows, cols int) {
	for p := range tiles {
		if p.Row >= rows {
			rows = p.Row + 1
		}
		if p.Col >= cols {
			cols = p.Col + 1
		}
	}
	return rows, cols
}
