package levels

import (
	"fmt"
	"math/rand"

	"github.com/minh11221/Chip-Challenge/pkg/engine/world"
)

// Constants for BSP generation
const (
	minNodeSize    = 6 // minimum size of a BSP node
	minRoomSize    = 3 // minimum size of a room
	roomPadding    = 1 // padding between room and node edge
	doorPlaceTries = 8 // placement attempts per locked door
)

// bspNode represents a node in the BSP tree
type bspNode struct {
	row, col    int
	rows, cols  int
	left, right *bspNode
	room        *bspRoom
}

// bspRoom represents a room within a BSP leaf node
type bspRoom struct {
	row, col   int
	rows, cols int
}

// Generate creates a random solvable level using a BSP layout: rooms joined
// by L-shaped corridors, chips scattered through them, the goal door at the
// cell furthest from the start, and locked doors that are only kept when a
// matching key remains collectible. size (1..8) scales dimensions and
// subgoal count.
func Generate(size int, rng *rand.Rand) (*Level, error) {
	if size < 1 {
		size = 1
	}
	if size > 8 {
		size = 8
	}

	rows := 10 + size*2
	cols := 18 + size*3

	grid := world.NewGrid(rows, cols)
	grid.ForEachTile(func(p world.Position, _ world.TileStatus) {
		grid.SetTile(p, world.Wall)
	})

	// Leave a one-cell border for the perimeter wall.
	root := &bspNode{row: 1, col: 1, rows: rows - 2, cols: cols - 2}
	splitNode(root, minNodeSize, rng)
	makeRooms(root, rng)
	carveRooms(grid, root)
	connectRooms(grid, root, rng)

	rooms := collectRooms(root)
	if len(rooms) == 0 {
		return nil, fmt.Errorf("generator produced no rooms for size %d", size)
	}

	startRoom := rooms[rng.Intn(len(rooms))]
	start := world.Pos(startRoom.row+startRoom.rows/2, startRoom.col+startRoom.cols/2)

	lvl := &Level{
		Name:  fmt.Sprintf("generated-%d", size),
		Grid:  grid,
		Start: start,
	}

	grid.SetTile(furthestCell(grid, start), world.DoorGoal)
	placeChips(lvl, size+1, rng)
	placeLockedDoors(lvl, size/2, rng)

	if !Solvable(lvl) {
		// Doors are only committed when they keep the level solvable, so
		// this indicates a generator bug, not bad luck.
		return nil, fmt.Errorf("generated level %q is unsolvable", lvl.Name)
	}
	return lvl, nil
}

// splitNode recursively splits a BSP node
func splitNode(node *bspNode, minSize int, rng *rand.Rand) {
	var horizontal bool
	switch {
	case node.cols > node.rows && node.cols >= minSize*2:
		horizontal = false
	case node.rows > node.cols && node.rows >= minSize*2:
		horizontal = true
	case node.cols >= minSize*2 && node.rows >= minSize*2:
		horizontal = rng.Intn(2) == 0
	case node.cols >= minSize*2:
		horizontal = false
	case node.rows >= minSize*2:
		horizontal = true
	default:
		return
	}

	if horizontal {
		at := minSize + rng.Intn(node.rows-minSize*2+1)
		node.left = &bspNode{row: node.row, col: node.col, rows: at, cols: node.cols}
		node.right = &bspNode{row: node.row + at, col: node.col, rows: node.rows - at, cols: node.cols}
	} else {
		at := minSize + rng.Intn(node.cols-minSize*2+1)
		node.left = &bspNode{row: node.row, col: node.col, rows: node.rows, cols: at}
		node.right = &bspNode{row: node.row, col: node.col + at, rows: node.rows, cols: node.cols - at}
	}

	splitNode(node.left, minSize, rng)
	splitNode(node.right, minSize, rng)
}

// makeRooms creates a room in every leaf node
func makeRooms(node *bspNode, rng *rand.Rand) {
	if node.left != nil || node.right != nil {
		if node.left != nil {
			makeRooms(node.left, rng)
		}
		if node.right != nil {
			makeRooms(node.right, rng)
		}
		return
	}

	roomRows := minRoomSize + rng.Intn(node.rows-minRoomSize-roomPadding+1)
	roomCols := minRoomSize + rng.Intn(node.cols-minRoomSize-roomPadding+1)
	if roomRows > node.rows-roomPadding {
		roomRows = node.rows - roomPadding
	}
	if roomCols > node.cols-roomPadding {
		roomCols = node.cols - roomPadding
	}

	node.room = &bspRoom{
		row:  node.row + rng.Intn(node.rows-roomRows+1),
		col:  node.col + rng.Intn(node.cols-roomCols+1),
		rows: roomRows,
		cols: roomCols,
	}
}

// carveRooms opens room cells in the wall-filled grid
func carveRooms(grid *world.Grid, node *bspNode) {
	if node.room != nil {
		for row := node.room.row; row < node.room.row+node.room.rows; row++ {
			for col := node.room.col; col < node.room.col+node.room.cols; col++ {
				grid.SetTile(world.Pos(row, col), world.Blank)
			}
		}
	}
	if node.left != nil {
		carveRooms(grid, node.left)
	}
	if node.right != nil {
		carveRooms(grid, node.right)
	}
}

// connectRooms joins the two subtrees of every split with an L-shaped corridor
func connectRooms(grid *world.Grid, node *bspNode, rng *rand.Rand) {
	if node.left == nil || node.right == nil {
		return
	}

	leftRoom := pickRoom(node.left, rng)
	rightRoom := pickRoom(node.right, rng)
	if leftRoom != nil && rightRoom != nil {
		leftRow := leftRoom.row + leftRoom.rows/2
		leftCol := leftRoom.col + leftRoom.cols/2
		rightRow := rightRoom.row + rightRoom.rows/2
		rightCol := rightRoom.col + rightRoom.cols/2

		if rng.Intn(2) == 0 {
			carveCorridorHorizontal(grid, leftRow, leftCol, rightCol)
			carveCorridorVertical(grid, rightCol, leftRow, rightRow)
		} else {
			carveCorridorVertical(grid, leftCol, leftRow, rightRow)
			carveCorridorHorizontal(grid, rightRow, leftCol, rightCol)
		}
	}

	connectRooms(grid, node.left, rng)
	connectRooms(grid, node.right, rng)
}

// carveCorridorHorizontal opens a horizontal corridor
func carveCorridorHorizontal(grid *world.Grid, row, startCol, endCol int) {
	if startCol > endCol {
		startCol, endCol = endCol, startCol
	}
	for col := startCol; col <= endCol; col++ {
		grid.SetTile(world.Pos(row, col), world.Blank)
	}
}

// carveCorridorVertical opens a vertical corridor
func carveCorridorVertical(grid *world.Grid, col, startRow, endRow int) {
	if startRow > endRow {
		startRow, endRow = endRow, startRow
	}
	for row := startRow; row <= endRow; row++ {
		grid.SetTile(world.Pos(row, col), world.Blank)
	}
}

// pickRoom returns a room from a subtree, picking randomly at forks
func pickRoom(node *bspNode, rng *rand.Rand) *bspRoom {
	if node.room != nil {
		return node.room
	}

	var left, right *bspRoom
	if node.left != nil {
		left = pickRoom(node.left, rng)
	}
	if node.right != nil {
		right = pickRoom(node.right, rng)
	}

	switch {
	case left != nil && right != nil:
		if rng.Intn(2) == 0 {
			return left
		}
		return right
	case left != nil:
		return left
	default:
		return right
	}
}

// collectRooms gathers every room in the BSP tree
func collectRooms(node *bspNode) []*bspRoom {
	var rooms []*bspRoom
	if node.room != nil {
		rooms = append(rooms, node.room)
	}
	if node.left != nil {
		rooms = append(rooms, collectRooms(node.left)...)
	}
	if node.right != nil {
		rooms = append(rooms, collectRooms(node.right)...)
	}
	return rooms
}

// furthestCell runs BFS over the carved cells and returns the one with the
// longest path distance from start, a natural spot for the goal door.
func furthestCell(grid *world.Grid, start world.Position) world.Position {
	dist := map[world.Position]int{start: 0}
	queue := []world.Position{start}
	best := start

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if dist[p] > dist[best] {
			best = p
		}

		nbrs := grid.NeighborPositions(p)
		for _, dir := range world.AllDirections() {
			n, ok := nbrs[dir]
			if !ok {
				continue
			}
			if _, seen := dist[n]; seen {
				continue
			}
			if s, _ := grid.TileAt(n); s != world.Blank {
				continue
			}
			dist[n] = dist[p] + 1
			queue = append(queue, n)
		}
	}

	return best
}

// openCells lists the blank cells a subgoal may be placed on, excluding the
// start cell, in row-major order.
func openCells(lvl *Level) []world.Position {
	blanks := lvl.Grid.PositionsByStatus()[world.Blank]
	open := make([]world.Position, 0, len(blanks))
	for _, p := range blanks {
		if p != lvl.Start {
			open = append(open, p)
		}
	}
	return open
}

// placeChips scatters count chips over the open cells
func placeChips(lvl *Level, count int, rng *rand.Rand) {
	open := openCells(lvl)
	rng.Shuffle(len(open), func(i, j int) {
		open[i], open[j] = open[j], open[i]
	})
	if count > len(open) {
		count = len(open)
	}
	for i := 0; i < count; i++ {
		lvl.Grid.SetTile(open[i], world.Chip)
	}
}

// placeLockedDoors adds up to count door/key pairs, one color each. A
// placement that would make the level unsolvable is reverted and retried.
func placeLockedDoors(lvl *Level, count int, rng *rand.Rand) {
	doors := world.AllColorDoors()
	if count > len(doors) {
		count = len(doors)
	}

	for i := 0; i < count; i++ {
		door := doors[i]
		key, _ := door.KeyForDoor()

		for try := 0; try < doorPlaceTries; try++ {
			open := openCells(lvl)
			if len(open) < 2 {
				return
			}
			doorPos := open[rng.Intn(len(open))]
			keyPos := open[rng.Intn(len(open))]
			if doorPos == keyPos {
				continue
			}

			lvl.Grid.SetTile(doorPos, door)
			lvl.Grid.SetTile(keyPos, key)
			if Solvable(lvl) {
				break
			}
			lvl.Grid.SetTile(doorPos, world.Blank)
			lvl.Grid.SetTile(keyPos, world.Blank)
		}
	}
}
