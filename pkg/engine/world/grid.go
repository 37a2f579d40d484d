package world

import "sort"

// Grid represents a rectangular tile map with encapsulated tile storage
type Grid struct {
	tiles map[Position]TileStatus
	rows  int
	cols  int
}

// NewGrid creates a grid of the given dimensions with every tile Blank
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		panic("Grid dimensions must be positive")
	}

	g := &Grid{
		tiles: make(map[Position]TileStatus, rows*cols),
		rows:  rows,
		cols:  cols,
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			g.tiles[Pos(row, col)] = Blank
		}
	}
	return g
}

// Rows returns the number of rows in the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns in the grid
func (g *Grid) Cols() int {
	return g.cols
}

// IsValidPosition checks if a position is within grid bounds
func (g *Grid) IsValidPosition(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// TileAt returns the tile status at the given position.
// The second return is false when the position is out of bounds.
func (g *Grid) TileAt(p Position) (TileStatus, bool) {
	s, ok := g.tiles[p]
	return s, ok
}

// SetTile records a tile status. Out-of-bounds positions are ignored.
func (g *Grid) SetTile(p Position, s TileStatus) {
	if !g.IsValidPosition(p) {
		return
	}
	g.tiles[p] = s
}

// NeighborPositions returns the in-bounds neighbors of a position keyed by
// direction. Off-grid directions are absent from the result.
func (g *Grid) NeighborPositions(p Position) map[Direction]Position {
	neighbors := make(map[Direction]Position, 4)
	for _, dir := range AllDirections() {
		n := p.Translate(dir)
		if g.IsValidPosition(n) {
			neighbors[dir] = n
		}
	}
	return neighbors
}

// ForEachTile iterates over all tiles in row-major order
func (g *Grid) ForEachTile(fn func(p Position, s TileStatus)) {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			p := Pos(row, col)
			fn(p, g.tiles[p])
		}
	}
}

// PositionsByStatus groups every tile position by its status. The slices are
// sorted row-major so enumeration order is deterministic.
func (g *Grid) PositionsByStatus() map[TileStatus][]Position {
	grouped := make(map[TileStatus][]Position)
	for p, s := range g.tiles {
		grouped[s] = append(grouped[s], p)
	}
	for _, positions := range grouped {
		sort.Slice(positions, func(i, j int) bool {
			if positions[i].Row != positions[j].Row {
				return positions[i].Row < positions[j].Row
			}
			return positions[i].Col < positions[j].Col
		})
	}
	return grouped
}

// Count returns the number of tiles with the given status
func (g *Grid) Count(s TileStatus) int {
	n := 0
	for _, status := range g.tiles {
		if status == s {
			n++
		}
	}
	return n
}

// Snapshot returns a copy of the full tile map. Mutating the copy does not
// affect the grid.
func (g *Grid) Snapshot() map[Position]TileStatus {
	tiles := make(map[Position]TileStatus, len(g.tiles))
	for p, s := range g.tiles {
		tiles[p] = s
	}
	return tiles
}
