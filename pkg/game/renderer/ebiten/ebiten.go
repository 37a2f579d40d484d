// Package ebiten renders a running simulation in a window. Unlike the TUI,
// the game loop belongs to ebiten here, so the Watcher owns the tick
// stepping as well as the drawing.
package ebiten

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"

	"github.com/minh11221/Chip-Challenge/pkg/engine/world"
	"github.com/minh11221/Chip-Challenge/pkg/game/agent"
	"github.com/minh11221/Chip-Challenge/pkg/game/env"
)

const (
	cellSize  = 24
	hudHeight = 40
)

// tile fill colors
var tileColors = map[world.TileStatus]color.RGBA{
	world.Blank:      {R: 0x20, G: 0x20, B: 0x24, A: 0xff},
	world.Wall:       {R: 0x60, G: 0x60, B: 0x68, A: 0xff},
	world.Water:      {R: 0x20, G: 0x50, B: 0xa0, A: 0xff},
	world.Chip:       {R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff},
	world.KeyBlue:    {R: 0x40, G: 0x80, B: 0xff, A: 0xff},
	world.KeyGreen:   {R: 0x40, G: 0xd0, B: 0x40, A: 0xff},
	world.KeyRed:     {R: 0xe0, G: 0x40, B: 0x40, A: 0xff},
	world.KeyYellow:  {R: 0xe0, G: 0xd0, B: 0x40, A: 0xff},
	world.DoorBlue:   {R: 0x20, G: 0x40, B: 0x90, A: 0xff},
	world.DoorGreen:  {R: 0x20, G: 0x70, B: 0x20, A: 0xff},
	world.DoorRed:    {R: 0x80, G: 0x20, B: 0x20, A: 0xff},
	world.DoorYellow: {R: 0x80, G: 0x70, B: 0x20, A: 0xff},
	world.DoorGoal:   {R: 0xb0, G: 0x40, B: 0xc0, A: 0xff},
}

var robotColor = color.RGBA{R: 0x40, G: 0xff, B: 0x80, A: 0xff}

// Watcher steps and draws one simulation. It implements ebiten.Game.
type Watcher struct {
	env   *env.Environment
	robot *agent.Robot

	maxTicks      int
	framesPerTick int

	frame int
	tick  int
	last  env.Action
}

// NewWatcher creates a watcher that advances the simulation every
// framesPerTick frames, up to maxTicks ticks.
func NewWatcher(e *env.Environment, r *agent.Robot, maxTicks, framesPerTick int) *Watcher {
	if framesPerTick < 1 {
		framesPerTick = 1
	}
	return &Watcher{env: e, robot: r, maxTicks: maxTicks, framesPerTick: framesPerTick}
}

// Tick returns the number of ticks simulated so far
func (w *Watcher) Tick() int {
	return w.tick
}

// Update advances the simulation on its tick schedule
func (w *Watcher) Update() error {
	if w.env.Done() || w.tick >= w.maxTicks {
		return nil
	}

	w.frame++
	if w.frame < w.framesPerTick {
		return nil
	}
	w.frame = 0

	w.last = w.robot.NextAction()
	w.env.Step(w.last)
	w.tick++
	return nil
}

// Draw renders the grid, the agent, and the HUD line
func (w *Watcher) Draw(screen *ebiten.Image) {
	tiles := w.env.Tiles()
	if tiles == nil {
		tiles = w.robot.Knowledge().TilesSnapshot()
	}

	rows, cols := w.env.Bounds()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			status := tiles[world.Pos(row, col)]
			fill, ok := tileColors[status]
			if !ok {
				fill = tileColors[world.Blank]
			}
			vector.DrawFilledRect(screen,
				float32(col*cellSize), float32(row*cellSize),
				cellSize-1, cellSize-1, fill, false)
		}
	}

	pos := w.env.RobotPosition()
	vector.DrawFilledCircle(screen,
		float32(pos.Col*cellSize+cellSize/2), float32(pos.Row*cellSize+cellSize/2),
		cellSize/3, robotColor, true)

	hud := fmt.Sprintf("%s %d  %s %s  %s %d",
		gotext.Get("Tick"), w.tick,
		gotext.Get("Action"), w.last,
		gotext.Get("Chips left"), w.env.NumRemainingChips())
	if w.env.Done() {
		hud += "  " + gotext.Get("GOAL REACHED")
	}
	ebitenutil.DebugPrintAt(screen, hud, 4, rows*cellSize+4)
}

// Layout reports the window size in logical pixels
func (w *Watcher) Layout(outsideWidth, outsideHeight int) (int, int) {
	rows, cols := w.env.Bounds()
	return cols * cellSize, rows*cellSize + hudHeight
}

// Run opens the window and drives the watcher until it is closed
func Run(w *Watcher) error {
	rows, cols := w.env.Bounds()
	ebiten.SetWindowSize(cols*cellSize*2, (rows*cellSize+hudHeight)*2)
	ebiten.SetWindowTitle(gotext.Get("Chip Challenge"))
	return ebiten.RunGame(w)
}
